package services

import (
	"testing"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestComputePoints(t *testing.T) {
	cases := []struct {
		quantity  float64
		unitPrice float64
		want      int
	}{
		{10, 2, 20},
		{2.5, 4, 10},
		{3.3, 3, 9},   // 9.9 floors to 9
		{0.4, 2, 0},   // 0.8 floors to 0
		{5, 0, 0},
		{0, 10, 0},
		{1, -5, 0},    // never negative
	}

	for _, c := range cases {
		if got := ComputePoints(c.quantity, c.unitPrice); got != c.want {
			t.Errorf("ComputePoints(%v, %v) = %d, want %d", c.quantity, c.unitPrice, got, c.want)
		}
	}
}

func TestAccrueIdempotent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 3.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err = svc.ApplyStatus(trx.ID, models.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	first, err := svc.Rewards.Accrue(trx.ID)
	assert.NoError(t, err)
	assert.Equal(t, 12, first.Points)

	second, err := svc.Rewards.Accrue(trx.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	testDB.Model(&models.Reward{}).Where("transaction_id = ?", trx.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAccrueRequiresCompleted(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 3.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 4})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.Rewards.Accrue(trx.ID)
	assert.True(t, common.IsKind(err, common.KindConflict))

	_, err = svc.Rewards.Accrue(999999)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestAdjustPoints(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	wasteTypes := NewWasteTypeService(testDB)
	rewards := NewRewardService(testDB, wasteTypes)

	reward, err := rewards.CreateManual(ManualRewardDTO{UserId: 101, Points: 50})
	if err != nil {
		t.Fatalf("CreateManual failed: %v", err)
	}

	updated, err := rewards.AdjustPoints(reward.ID, 75)
	assert.NoError(t, err)
	assert.Equal(t, 75, updated.Points)

	_, err = rewards.AdjustPoints(reward.ID, -1)
	assert.True(t, common.IsKind(err, common.KindValidation))

	_, err = rewards.AdjustPoints(999999, 10)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestListUserRewardsAndTotals(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	trx, _ := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 10})
	svc.ApplyStatus(trx.ID, models.StatusCompleted)
	svc.Rewards.CreateManual(ManualRewardDTO{UserId: 101, Points: 5})

	total, err := svc.Rewards.TotalPoints(101)
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)

	result, err := svc.Rewards.ListUserRewards(ListUserRewardsDTO{UserId: 101})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.Count)

	payload := result.Data.(map[string]interface{})
	assert.Equal(t, int64(25), payload["total_points"])
	items := payload["rewards"].([]UserRewardItem)
	sources := []string{items[0].Source, items[1].Source}
	assert.Contains(t, sources, "Test Plastic")
	assert.Contains(t, sources, "Manual Reward")
}

func TestClampRankingLimit(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 10},
		{-5, 10},
		{1, 1},
		{10, 10},
		{common.MaxPageSize, common.MaxPageSize},
		{common.MaxPageSize + 1, common.MaxPageSize},
		{500, common.MaxPageSize},
	}

	for _, c := range cases {
		if got := clampRankingLimit(c.in); got != c.want {
			t.Errorf("clampRankingLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestRankings(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	testDB.Create(&models.User{Username: "alpha", FullName: "Alpha"})
	testDB.Create(&models.User{Username: "beta", FullName: "Beta"})

	var users []models.User
	testDB.Order("user_id").Find(&users)

	wasteTypes := NewWasteTypeService(testDB)
	rewards := NewRewardService(testDB, wasteTypes)
	rewards.CreateManual(ManualRewardDTO{UserId: users[0].ID, Points: 10})
	rewards.CreateManual(ManualRewardDTO{UserId: users[1].ID, Points: 30})

	entries, err := rewards.Rankings(10)
	assert.NoError(t, err)
	if assert.Len(t, entries, 2) {
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, "beta", entries[0].Username)
		assert.Equal(t, int64(30), entries[0].TotalPoints)
		assert.Equal(t, 2, entries[1].Rank)
	}
}
