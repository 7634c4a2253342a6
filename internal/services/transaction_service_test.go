package services

import (
	"testing"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestCreateTransactionWritesPendingHistory(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{
		UserId:            101,
		CollectionPointId: cpId,
		WasteTypeId:       wtId,
		Quantity:          5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	assert.Equal(t, models.StatusPending, trx.Status)
	assert.Equal(t, "kg", trx.Unit)

	history, err := svc.ListHistory(trx.ID)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	assert.Len(t, history, 1)
	assert.Equal(t, models.StatusPending, history[0].Status)
}

func TestCreateTransactionRejectsBadReferences(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	_, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 0})
	assert.True(t, common.IsKind(err, common.KindValidation))

	_, err = svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: 999999, WasteTypeId: wtId, Quantity: 1})
	assert.True(t, common.IsKind(err, common.KindNotFound))

	_, err = svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: 999999, Quantity: 1})
	assert.True(t, common.IsKind(err, common.KindNotFound))

	// Inactive collection points do not accept drop-offs
	inactive := models.CollectionPoint{Name: "Closed Depot", Status: models.CollectionPointInactive}
	testDB.Create(&inactive)
	_, err = svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: inactive.ID, WasteTypeId: wtId, Quantity: 1})
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestApplyStatusLifecycle(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 10})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	trx, err = svc.ApplyStatus(trx.ID, models.StatusVerified)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	assert.Equal(t, models.StatusVerified, trx.Status)

	// Re-applying the current status is a no-op and writes no history
	trx, err = svc.ApplyStatus(trx.ID, models.StatusVerified)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusVerified, trx.Status)

	history, _ := svc.ListHistory(trx.ID)
	assert.Len(t, history, 2)

	trx, err = svc.ApplyStatus(trx.ID, models.StatusCompleted)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	assert.Equal(t, models.StatusCompleted, trx.Status)

	// Terminal states admit no further transitions
	_, err = svc.ApplyStatus(trx.ID, models.StatusRejected)
	assert.True(t, common.IsKind(err, common.KindConflict))
	_, err = svc.ApplyStatus(trx.ID, models.StatusPending)
	assert.True(t, common.IsKind(err, common.KindConflict))

	history, _ = svc.ListHistory(trx.ID)
	assert.Len(t, history, 3)
	assert.Equal(t, models.StatusPending, history[0].Status)
	assert.Equal(t, models.StatusVerified, history[1].Status)
	assert.Equal(t, models.StatusCompleted, history[2].Status)
}

func TestApplyStatusRejectsInvalidInput(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newTestTransactionService()

	_, err := svc.ApplyStatus(1, "archived")
	assert.True(t, common.IsKind(err, common.KindValidation))

	_, err = svc.ApplyStatus(999999, models.StatusVerified)
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestCompletionAccruesPoints(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 10})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err = svc.ApplyStatus(trx.ID, models.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	var reward models.Reward
	if err := testDB.Where("transaction_id = ?", trx.ID).First(&reward).Error; err != nil {
		t.Fatalf("expected reward row: %v", err)
	}
	assert.Equal(t, 20, reward.Points)
	assert.Equal(t, 101, reward.UserId)

	// Reprocessing after success changes nothing
	again, err := svc.Rewards.Reprocess(trx.ID)
	assert.NoError(t, err)
	assert.Equal(t, reward.ID, again.ID)

	var count int64
	testDB.Model(&models.Reward{}).Where("transaction_id = ?", trx.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateContentGuards(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Only the owner may edit
	qty := 7.5
	_, err = svc.UpdateContent(trx.ID, 202, UpdateTransactionDTO{Quantity: &qty})
	assert.True(t, common.IsKind(err, common.KindAuthorization))

	updated, err := svc.UpdateContent(trx.ID, 101, UpdateTransactionDTO{Quantity: &qty})
	assert.NoError(t, err)
	assert.Equal(t, 7.5, updated.Quantity)

	// Once verified the content is frozen
	if _, err = svc.ApplyStatus(trx.ID, models.StatusVerified); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	_, err = svc.UpdateContent(trx.ID, 101, UpdateTransactionDTO{Quantity: &qty})
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestDeleteOnlyPending(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	trx, err := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = svc.Delete(trx.ID, 202)
	assert.True(t, common.IsKind(err, common.KindAuthorization))

	assert.NoError(t, svc.Delete(trx.ID, 101))

	_, err = svc.Get(trx.ID)
	assert.True(t, common.IsKind(err, common.KindNotFound))

	var histCount int64
	testDB.Model(&models.TransactionHistory{}).Where("transaction_id = ?", trx.ID).Count(&histCount)
	assert.Equal(t, int64(0), histCount)

	// Verified transactions are immutable
	trx2, _ := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 5})
	svc.ApplyStatus(trx2.ID, models.StatusVerified)
	err = svc.Delete(trx2.ID, 101)
	assert.True(t, common.IsKind(err, common.KindConflict))
}

func TestListTransactionsFilters(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	svc := newTestTransactionService()

	a, _ := svc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 1})
	svc.Create(CreateTransactionDTO{UserId: 102, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 2})
	svc.ApplyStatus(a.ID, models.StatusVerified)

	result, err := svc.List(ListTransactionsDTO{UserId: 101})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)

	result, err = svc.List(ListTransactionsDTO{Status: models.StatusVerified})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Count)

	_, err = svc.List(ListTransactionsDTO{Status: "archived"})
	assert.True(t, common.IsKind(err, common.KindValidation))
}
