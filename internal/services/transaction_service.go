package services

import (
	"errors"
	"fmt"
	"log"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionPointResolver checks that a drop-off location exists and is
// accepting material.
type CollectionPointResolver interface {
	ResolveActiveCollectionPoint(id int) (models.CollectionPoint, error)
}

// WasteTypeResolver loads the waste type referenced by a transaction.
type WasteTypeResolver interface {
	ResolveWasteType(id int) (models.WasteType, error)
}

// AccrualEnqueuer schedules a background retry for reward accrual when the
// inline attempt after a completion fails.
type AccrualEnqueuer interface {
	EnqueueAccrual(transactionId int) error
}

type TransactionService struct {
	DB               *gorm.DB
	CollectionPoints CollectionPointResolver
	WasteTypes       WasteTypeResolver
	Rewards          *RewardService
	Accruals         AccrualEnqueuer
}

func NewTransactionService(db *gorm.DB, cps CollectionPointResolver, wts WasteTypeResolver, rewards *RewardService, accruals AccrualEnqueuer) *TransactionService {
	return &TransactionService{
		DB:               db,
		CollectionPoints: cps,
		WasteTypes:       wts,
		Rewards:          rewards,
		Accruals:         accruals,
	}
}

type CreateTransactionDTO struct {
	UserId            int
	CollectionPointId int
	WasteTypeId       int
	Quantity          float64
	Unit              string
	ProofImageUrl     *string
}

// Create records a new drop-off. The transaction starts in pending and its
// first history row is written in the same database transaction, so a
// ledger row without an opening history entry cannot exist.
func (s *TransactionService) Create(data CreateTransactionDTO) (models.Transaction, error) {
	if data.Quantity <= 0 {
		return models.Transaction{}, common.NewValidationError("quantity must be greater than zero")
	}

	if _, err := s.CollectionPoints.ResolveActiveCollectionPoint(data.CollectionPointId); err != nil {
		return models.Transaction{}, err
	}
	if _, err := s.WasteTypes.ResolveWasteType(data.WasteTypeId); err != nil {
		return models.Transaction{}, err
	}

	unit := data.Unit
	if unit == "" {
		unit = "kg"
	}

	trx := models.Transaction{
		UserId:            data.UserId,
		CollectionPointId: data.CollectionPointId,
		WasteTypeId:       data.WasteTypeId,
		Quantity:          data.Quantity,
		Unit:              unit,
		Status:            models.StatusPending,
		ProofImageUrl:     data.ProofImageUrl,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trx).Error; err != nil {
			return common.NewTransientError("failed to create transaction", err)
		}
		history := models.TransactionHistory{
			TransactionId: trx.ID,
			Status:        models.StatusPending,
		}
		if err := tx.Create(&history).Error; err != nil {
			return common.NewTransientError("failed to record transaction history", err)
		}
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return trx, nil
}

func (s *TransactionService) Get(id int) (models.Transaction, error) {
	var trx models.Transaction
	if err := s.DB.First(&trx, "transaction_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Transaction{}, common.NewNotFoundError("transaction not found")
		}
		return models.Transaction{}, common.NewTransientError("failed to load transaction", err)
	}
	return trx, nil
}

// TransactionDetail is the transaction flattened with its directory names
// for read endpoints.
type TransactionDetail struct {
	TransactionId       int     `json:"transaction_id"`
	UserId              int     `json:"user_id"`
	UserName            string  `json:"user_name"`
	CollectionPointId   int     `json:"collection_point_id"`
	CollectionPointName string  `json:"collection_point_name"`
	WasteTypeId         int     `json:"waste_type_id"`
	WasteTypeName       string  `json:"waste_type_name"`
	Quantity            float64 `json:"quantity"`
	Unit                string  `json:"unit"`
	Status              string  `json:"status"`
	ProofImageUrl       *string `json:"proof_image_url"`
	TransactionDate     string  `json:"transaction_date"`
}

func (s *TransactionService) GetDetail(id int) (TransactionDetail, error) {
	var detail TransactionDetail
	err := s.DB.Table("transactions t").
		Select("t.transaction_id, t.user_id, COALESCE(u.full_name, '') AS user_name, "+
			"t.collection_point_id, COALESCE(cp.name, '') AS collection_point_name, "+
			"t.waste_type_id, COALESCE(wt.name, '') AS waste_type_name, "+
			"t.quantity, t.unit, t.status, t.proof_image_url, t.transaction_date").
		Joins("LEFT JOIN users u ON u.user_id = t.user_id").
		Joins("LEFT JOIN collection_points cp ON cp.collection_point_id = t.collection_point_id").
		Joins("LEFT JOIN waste_types wt ON wt.waste_type_id = t.waste_type_id").
		Where("t.transaction_id = ?", id).
		Scan(&detail).Error
	if err != nil {
		return TransactionDetail{}, common.NewTransientError("failed to load transaction", err)
	}
	if detail.TransactionId == 0 {
		return TransactionDetail{}, common.NewNotFoundError("transaction not found")
	}
	return detail, nil
}

type UpdateTransactionDTO struct {
	CollectionPointId *int
	WasteTypeId       *int
	Quantity          *float64
	Unit              *string
	ProofImageUrl     *string
}

// UpdateContent edits a pending transaction's recorded facts. Only the
// owner may edit, and only while the transaction is still pending. Status
// never changes here; that is ApplyStatus's job.
func (s *TransactionService) UpdateContent(id, ownerId int, data UpdateTransactionDTO) (models.Transaction, error) {
	if data.Quantity != nil && *data.Quantity <= 0 {
		return models.Transaction{}, common.NewValidationError("quantity must be greater than zero")
	}

	var trx models.Transaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trx, "transaction_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("transaction not found")
			}
			return common.NewTransientError("failed to load transaction", err)
		}

		if trx.UserId != ownerId {
			return common.NewAuthorizationError("transaction belongs to another user")
		}
		if trx.Status != models.StatusPending {
			return common.NewConflictError("transaction is not pending")
		}

		if data.CollectionPointId != nil && *data.CollectionPointId != trx.CollectionPointId {
			if _, err := s.CollectionPoints.ResolveActiveCollectionPoint(*data.CollectionPointId); err != nil {
				return err
			}
		}
		if data.WasteTypeId != nil && *data.WasteTypeId != trx.WasteTypeId {
			if _, err := s.WasteTypes.ResolveWasteType(*data.WasteTypeId); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if data.CollectionPointId != nil {
			updates["collection_point_id"] = *data.CollectionPointId
		}
		if data.WasteTypeId != nil {
			updates["waste_type_id"] = *data.WasteTypeId
		}
		if data.Quantity != nil {
			updates["quantity"] = *data.Quantity
		}
		if data.Unit != nil && *data.Unit != "" {
			updates["unit"] = *data.Unit
		}
		if data.ProofImageUrl != nil {
			updates["proof_image_url"] = *data.ProofImageUrl
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&trx).Updates(updates).Error; err != nil {
			return common.NewTransientError("failed to update transaction", err)
		}
		return tx.First(&trx, "transaction_id = ?", id).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return trx, nil
}

// Delete removes a pending transaction together with its history. Verified
// and terminal transactions are immutable.
func (s *TransactionService) Delete(id, ownerId int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trx, "transaction_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("transaction not found")
			}
			return common.NewTransientError("failed to load transaction", err)
		}

		if trx.UserId != ownerId {
			return common.NewAuthorizationError("transaction belongs to another user")
		}
		if trx.Status != models.StatusPending {
			return common.NewConflictError("transaction is not pending")
		}

		if err := tx.Where("transaction_id = ?", id).Delete(&models.TransactionHistory{}).Error; err != nil {
			return common.NewTransientError("failed to delete transaction history", err)
		}
		if err := tx.Delete(&trx).Error; err != nil {
			return common.NewTransientError("failed to delete transaction", err)
		}
		return nil
	})
}

// ListHistory returns the full status trail oldest first.
func (s *TransactionService) ListHistory(id int) ([]models.TransactionHistory, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	var history []models.TransactionHistory
	err := s.DB.Where("transaction_id = ?", id).
		Order("changed_at ASC, history_id ASC").
		Find(&history).Error
	if err != nil {
		return nil, common.NewTransientError("failed to load transaction history", err)
	}
	return history, nil
}

type ListTransactionsDTO struct {
	Status            string
	UserId            int
	CollectionPointId int
	WasteTypeId       int
	DateFrom          string
	DateTo            string
	Page              int
	Limit             int
}

// List filters the ledger. All supplied filters apply together; results
// come back newest first.
func (s *TransactionService) List(data ListTransactionsDTO) (common.PaginationResult, error) {
	if data.Status != "" && !models.ValidStatus(data.Status) {
		return common.PaginationResult{}, common.NewValidationError("invalid status filter")
	}

	page, limit := common.SanitizePagination(data.Page, data.Limit)
	offset := (page - 1) * limit

	query := s.DB.Model(&models.Transaction{})
	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.UserId > 0 {
		query = query.Where("user_id = ?", data.UserId)
	}
	if data.CollectionPointId > 0 {
		query = query.Where("collection_point_id = ?", data.CollectionPointId)
	}
	if data.WasteTypeId > 0 {
		query = query.Where("waste_type_id = ?", data.WasteTypeId)
	}
	if data.DateFrom != "" {
		query = query.Where("transaction_date >= ?", data.DateFrom)
	}
	if data.DateTo != "" {
		query = query.Where("transaction_date <= ?", data.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, common.NewTransientError("failed to count transactions", err)
	}

	var transactions []models.Transaction
	err := query.Order("transaction_date DESC, transaction_id DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error
	if err != nil {
		return common.PaginationResult{}, common.NewTransientError("failed to list transactions", err)
	}

	return common.PaginateResponse(transactions, total, page, limit, "transactions fetched"), nil
}

// ApplyStatus drives the transaction lifecycle. Legal moves are
// pending -> verified|completed|rejected and verified -> completed|rejected;
// completed and rejected are terminal. Re-applying the current status is a
// no-op that returns the row unchanged and writes no history. The status
// update and its history row commit atomically under a row lock, so
// concurrent transitions on the same id serialize and at most one racer
// wins.
//
// Reward accrual for a newly completed transaction runs after commit. If
// it fails the transition stands; the accrual is retried in the background
// and remains reachable through Reprocess.
func (s *TransactionService) ApplyStatus(id int, newStatus string) (models.Transaction, error) {
	if !models.ValidStatus(newStatus) {
		return models.Transaction{}, common.NewValidationError(fmt.Sprintf("invalid status %q", newStatus))
	}

	var trx models.Transaction
	transitioned := false

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trx, "transaction_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("transaction not found")
			}
			return common.NewTransientError("failed to load transaction", err)
		}

		if trx.Status == newStatus {
			return nil
		}
		if !models.CanTransition(trx.Status, newStatus) {
			return common.NewConflictError(fmt.Sprintf("cannot transition from %s to %s", trx.Status, newStatus))
		}

		if err := tx.Model(&trx).Update("status", newStatus).Error; err != nil {
			return common.NewTransientError("failed to update transaction status", err)
		}
		history := models.TransactionHistory{
			TransactionId: trx.ID,
			Status:        newStatus,
		}
		if err := tx.Create(&history).Error; err != nil {
			return common.NewTransientError("failed to record transaction history", err)
		}

		trx.Status = newStatus
		transitioned = true
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}

	if transitioned && newStatus == models.StatusCompleted {
		if _, err := s.Rewards.Accrue(trx.ID); err != nil {
			log.Printf("reward accrual failed for transaction %d: %v", trx.ID, err)
			if s.Accruals != nil {
				if enqErr := s.Accruals.EnqueueAccrual(trx.ID); enqErr != nil {
					log.Printf("failed to enqueue accrual retry for transaction %d: %v", trx.ID, enqErr)
				}
			}
		}
	}

	return trx, nil
}
