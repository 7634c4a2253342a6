package services

import (
	"errors"
	"math"
	"time"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardService struct {
	DB         *gorm.DB
	WasteTypes WasteTypeResolver
}

func NewRewardService(db *gorm.DB, wasteTypes WasteTypeResolver) *RewardService {
	return &RewardService{DB: db, WasteTypes: wasteTypes}
}

// ComputePoints derives the point value of a drop-off:
// floor(quantity * unit_price), clamped at zero.
func ComputePoints(quantity, unitPrice float64) int {
	points := int(math.Floor(quantity * unitPrice))
	if points < 0 {
		return 0
	}
	return points
}

// Accrue creates the reward for a completed transaction, at most once.
// The row lock on the transaction serializes the check-and-insert, so two
// concurrent completions of the same id cannot both grant. If a reward
// already exists it is returned unchanged.
func (s *RewardService) Accrue(transactionId int) (models.Reward, error) {
	var reward models.Reward

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trx, "transaction_id = ?", transactionId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("transaction not found")
			}
			return common.NewTransientError("failed to load transaction", err)
		}

		var existing models.Reward
		err := tx.Where("transaction_id = ?", transactionId).First(&existing).Error
		if err == nil {
			reward = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewTransientError("failed to check existing reward", err)
		}

		if trx.Status != models.StatusCompleted {
			return common.NewConflictError("transaction is not completed")
		}

		wt, err := s.WasteTypes.ResolveWasteType(trx.WasteTypeId)
		if err != nil {
			return err
		}

		refId := trx.ID
		reward = models.Reward{
			UserId:        trx.UserId,
			TransactionId: &refId,
			Points:        ComputePoints(trx.Quantity, wt.UnitPrice),
		}
		if err := tx.Create(&reward).Error; err != nil {
			return common.NewTransientError("failed to create reward", err)
		}
		return nil
	})
	if err != nil {
		return models.Reward{}, err
	}
	return reward, nil
}

// Reprocess re-runs accrual for a transaction whose reward creation failed
// after the completion transition committed. Same idempotence guarantee as
// Accrue.
func (s *RewardService) Reprocess(transactionId int) (models.Reward, error) {
	return s.Accrue(transactionId)
}

// AdjustPoints overwrites a reward's point value. No recomputation.
func (s *RewardService) AdjustPoints(rewardId, points int) (models.Reward, error) {
	if points < 0 {
		return models.Reward{}, common.NewValidationError("points must not be negative")
	}

	var reward models.Reward
	if err := s.DB.First(&reward, "reward_id = ?", rewardId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reward{}, common.NewNotFoundError("reward not found")
		}
		return models.Reward{}, common.NewTransientError("failed to load reward", err)
	}

	if err := s.DB.Model(&reward).Update("points", points).Error; err != nil {
		return models.Reward{}, common.NewTransientError("failed to update reward", err)
	}
	reward.Points = points
	return reward, nil
}

type ManualRewardDTO struct {
	UserId        int
	Points        int
	TransactionId *int
}

// CreateManual grants points outside the accrual flow (admin correction,
// campaign bonus). A transaction reference is optional and not checked for
// uniqueness here; accrued rewards stay single-per-transaction because the
// accrual path holds the lock.
func (s *RewardService) CreateManual(data ManualRewardDTO) (models.Reward, error) {
	if data.Points < 0 {
		return models.Reward{}, common.NewValidationError("points must not be negative")
	}

	reward := models.Reward{
		UserId:        data.UserId,
		TransactionId: data.TransactionId,
		Points:        data.Points,
	}
	if err := s.DB.Create(&reward).Error; err != nil {
		return models.Reward{}, common.NewTransientError("failed to create reward", err)
	}
	return reward, nil
}

func (s *RewardService) Delete(rewardId int) error {
	var reward models.Reward
	if err := s.DB.First(&reward, "reward_id = ?", rewardId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("reward not found")
		}
		return common.NewTransientError("failed to load reward", err)
	}
	if err := s.DB.Delete(&reward).Error; err != nil {
		return common.NewTransientError("failed to delete reward", err)
	}
	return nil
}

// RewardDetail is a reward joined with its source transaction, when one
// exists. The pointer fields are nil for manual grants.
type RewardDetail struct {
	RewardId        int        `json:"reward_id"`
	UserId          int        `json:"user_id"`
	TransactionId   *int       `json:"transaction_id"`
	Points          int        `json:"points"`
	EarnedDate      time.Time  `json:"earned_date"`
	TransactionDate *time.Time `json:"transaction_date"`
	Quantity        *float64   `json:"quantity"`
	Unit            *string    `json:"unit"`
	WasteTypeName   *string    `json:"waste_type_name"`
	UnitPrice       *float64   `json:"unit_price"`
}

func (s *RewardService) Get(rewardId int) (RewardDetail, error) {
	var detail RewardDetail
	err := s.DB.Table("rewards r").
		Select("r.reward_id, r.user_id, r.transaction_id, r.points, r.earned_date, "+
			"t.transaction_date, t.quantity, t.unit, wt.name AS waste_type_name, wt.unit_price").
		Joins("LEFT JOIN transactions t ON t.transaction_id = r.transaction_id").
		Joins("LEFT JOIN waste_types wt ON wt.waste_type_id = t.waste_type_id").
		Where("r.reward_id = ?", rewardId).
		Scan(&detail).Error
	if err != nil {
		return RewardDetail{}, common.NewTransientError("failed to load reward", err)
	}
	if detail.RewardId == 0 {
		return RewardDetail{}, common.NewNotFoundError("reward not found")
	}
	return detail, nil
}

type UserRewardItem struct {
	RewardId        int       `json:"reward_id"`
	Points          int       `json:"points"`
	EarnedDate      time.Time `json:"earned_date"`
	TransactionDate time.Time `json:"transaction_date"`
	Source          string    `json:"source"`
}

type ListUserRewardsDTO struct {
	UserId   int
	Page     int
	Limit    int
	FromDate string
	ToDate   string
}

// ListUserRewards returns a user's rewards newest first, with the waste
// type as source ("Manual Reward" for admin grants) and the running total.
func (s *RewardService) ListUserRewards(data ListUserRewardsDTO) (common.PaginationResult, error) {
	page, limit := common.SanitizePagination(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Table("rewards r").Where("r.user_id = ?", data.UserId)
	if data.FromDate != "" {
		query = query.Where("r.earned_date >= ?", data.FromDate)
	}
	if data.ToDate != "" {
		query = query.Where("r.earned_date <= ?", data.ToDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewTransientError("failed to count rewards", err)
	}

	var items []UserRewardItem
	err := query.
		Select("r.reward_id, r.points, r.earned_date, "+
			"COALESCE(t.transaction_date, r.earned_date) AS transaction_date, "+
			"COALESCE(wt.name, 'Manual Reward') AS source").
		Joins("LEFT JOIN transactions t ON t.transaction_id = r.transaction_id").
		Joins("LEFT JOIN waste_types wt ON wt.waste_type_id = t.waste_type_id").
		Order("r.earned_date DESC").
		Limit(limit).Offset(offset).
		Scan(&items).Error
	if err != nil {
		return common.PaginationResult{}, common.NewTransientError("failed to list rewards", err)
	}

	totalPoints, err := s.TotalPoints(data.UserId)
	if err != nil {
		return common.PaginationResult{}, err
	}

	payload := map[string]interface{}{
		"rewards":      items,
		"total_points": totalPoints,
	}
	return common.PaginateResponse(payload, total, page, limit, "rewards fetched"), nil
}

func (s *RewardService) TotalPoints(userId int) (int64, error) {
	var total int64
	err := s.DB.Model(&models.Reward{}).
		Where("user_id = ?", userId).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, common.NewTransientError("failed to sum points", err)
	}
	return total, nil
}

type RankingEntry struct {
	Rank        int    `json:"rank" gorm:"-"`
	UserId      int    `json:"user_id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	TotalPoints int64  `json:"total_points"`
}

// clampRankingLimit bounds the leaderboard size the same way paginated
// endpoints bound their page size.
func clampRankingLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > common.MaxPageSize {
		return common.MaxPageSize
	}
	return limit
}

func (s *RewardService) Rankings(limit int) ([]RankingEntry, error) {
	limit = clampRankingLimit(limit)

	var entries []RankingEntry
	err := s.DB.Table("users u").
		Select("u.user_id, u.username, u.full_name, COALESCE(SUM(r.points), 0) AS total_points").
		Joins("LEFT JOIN rewards r ON r.user_id = u.user_id").
		Group("u.user_id, u.username, u.full_name").
		Order("total_points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, common.NewTransientError("failed to load rankings", err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

type RewardBucket struct {
	Period      string `json:"period"`
	TotalPoints int64  `json:"total_points"`
	RewardCount int64  `json:"reward_count"`
}

// Statistics buckets a user's earned points by period. Empty result sets
// come back as an empty slice.
func (s *RewardService) Statistics(userId int, period string) ([]RewardBucket, error) {
	format, err := common.PeriodFormat(period)
	if err != nil {
		return nil, err
	}

	buckets := []RewardBucket{}
	err = s.DB.Table("rewards").
		Select("DATE_FORMAT(earned_date, ?) AS period, COALESCE(SUM(points), 0) AS total_points, COUNT(*) AS reward_count", format).
		Where("user_id = ?", userId).
		Group("period").
		Order("MIN(earned_date) DESC").
		Limit(12).
		Scan(&buckets).Error
	if err != nil {
		return nil, common.NewTransientError("failed to load reward statistics", err)
	}
	return buckets, nil
}
