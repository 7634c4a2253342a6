package services

import (
	"errors"
	"fmt"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecyclingService struct {
	DB         *gorm.DB
	WasteTypes WasteTypeResolver
}

func NewRecyclingService(db *gorm.DB, wasteTypes WasteTypeResolver) *RecyclingService {
	return &RecyclingService{DB: db, WasteTypes: wasteTypes}
}

type CreateProcessDTO struct {
	TransactionId int
	Facility      string
	Notes         string
}

// Create opens a recycling process for a completed transaction. Only
// recyclable material enters processing, and a transaction gets at most
// one process.
func (s *RecyclingService) Create(data CreateProcessDTO) (models.RecyclingProcess, error) {
	var process models.RecyclingProcess

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var trx models.Transaction
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&trx, "transaction_id = ?", data.TransactionId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("transaction not found")
			}
			return common.NewTransientError("failed to load transaction", err)
		}

		if trx.Status != models.StatusCompleted {
			return common.NewConflictError("transaction is not completed")
		}

		wt, err := s.WasteTypes.ResolveWasteType(trx.WasteTypeId)
		if err != nil {
			return err
		}
		if !wt.Recyclable {
			return common.NewValidationError("waste type is not recyclable")
		}

		var count int64
		if err := tx.Model(&models.RecyclingProcess{}).
			Where("transaction_id = ?", data.TransactionId).
			Count(&count).Error; err != nil {
			return common.NewTransientError("failed to check existing process", err)
		}
		if count > 0 {
			return common.NewConflictError("transaction already has a recycling process")
		}

		process = models.RecyclingProcess{
			TransactionId: data.TransactionId,
			Status:        models.ProcessReceived,
			Facility:      data.Facility,
			Notes:         data.Notes,
		}
		if err := tx.Create(&process).Error; err != nil {
			return common.NewTransientError("failed to create recycling process", err)
		}
		return nil
	})
	if err != nil {
		return models.RecyclingProcess{}, err
	}
	return process, nil
}

func (s *RecyclingService) Get(id int) (models.RecyclingProcess, error) {
	var process models.RecyclingProcess
	if err := s.DB.First(&process, "process_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RecyclingProcess{}, common.NewNotFoundError("recycling process not found")
		}
		return models.RecyclingProcess{}, common.NewTransientError("failed to load recycling process", err)
	}
	return process, nil
}

type UpdateProcessDTO struct {
	Status            string
	ProcessedQuantity *float64
	Notes             *string
}

// UpdateStatus moves a process forward: received -> processing -> processed,
// with received -> processed allowed for single-step facilities. Re-applying
// the current status is a no-op.
func (s *RecyclingService) UpdateStatus(id int, data UpdateProcessDTO) (models.RecyclingProcess, error) {
	if data.Status != "" && !models.ValidProcessStatus(data.Status) {
		return models.RecyclingProcess{}, common.NewValidationError(fmt.Sprintf("invalid process status %q", data.Status))
	}
	if data.ProcessedQuantity != nil && *data.ProcessedQuantity < 0 {
		return models.RecyclingProcess{}, common.NewValidationError("processed quantity must not be negative")
	}

	var process models.RecyclingProcess
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&process, "process_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("recycling process not found")
			}
			return common.NewTransientError("failed to load recycling process", err)
		}

		updates := map[string]interface{}{}
		if data.Status != "" && data.Status != process.Status {
			if !models.CanTransitionProcess(process.Status, data.Status) {
				return common.NewConflictError(fmt.Sprintf("cannot transition process from %s to %s", process.Status, data.Status))
			}
			updates["status"] = data.Status
		}
		if data.ProcessedQuantity != nil {
			updates["processed_quantity"] = *data.ProcessedQuantity
		}
		if data.Notes != nil {
			updates["notes"] = *data.Notes
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&process).Updates(updates).Error; err != nil {
			return common.NewTransientError("failed to update recycling process", err)
		}
		return tx.First(&process, "process_id = ?", id).Error
	})
	if err != nil {
		return models.RecyclingProcess{}, err
	}
	return process, nil
}

type ProcessDetail struct {
	ProcessId         int     `json:"process_id"`
	TransactionId     int     `json:"transaction_id"`
	Status            string  `json:"status"`
	ProcessedQuantity float64 `json:"processed_quantity"`
	Facility          string  `json:"facility"`
	Notes             string  `json:"notes"`
	StartedAt         string  `json:"started_at"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit"`
	WasteTypeName     string  `json:"waste_type_name"`
	UserId            int     `json:"user_id"`
}

func (s *RecyclingService) ListByUser(userId int) ([]ProcessDetail, error) {
	details := []ProcessDetail{}
	err := s.DB.Table("recycling_processes p").
		Select("p.process_id, p.transaction_id, p.status, p.processed_quantity, p.facility, p.notes, p.started_at, " +
			"t.quantity, t.unit, COALESCE(wt.name, '') AS waste_type_name, t.user_id").
		Joins("JOIN transactions t ON t.transaction_id = p.transaction_id").
		Joins("LEFT JOIN waste_types wt ON wt.waste_type_id = t.waste_type_id").
		Where("t.user_id = ?", userId).
		Order("p.started_at DESC").
		Scan(&details).Error
	if err != nil {
		return nil, common.NewTransientError("failed to list recycling processes", err)
	}
	return details, nil
}

type ProcessReportRow struct {
	WasteTypeName     string  `json:"waste_type_name"`
	ProcessCount      int64   `json:"process_count"`
	ReceivedQuantity  float64 `json:"received_quantity"`
	ProcessedQuantity float64 `json:"processed_quantity"`
}

// Report summarizes processing throughput per waste type over a date range.
func (s *RecyclingService) Report(dateFrom, dateTo string) ([]ProcessReportRow, error) {
	rows := []ProcessReportRow{}
	query := s.DB.Table("recycling_processes p").
		Select("COALESCE(wt.name, '') AS waste_type_name, COUNT(*) AS process_count, " +
			"COALESCE(SUM(t.quantity), 0) AS received_quantity, " +
			"COALESCE(SUM(p.processed_quantity), 0) AS processed_quantity").
		Joins("JOIN transactions t ON t.transaction_id = p.transaction_id").
		Joins("LEFT JOIN waste_types wt ON wt.waste_type_id = t.waste_type_id")
	if dateFrom != "" {
		query = query.Where("p.started_at >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("p.started_at <= ?", dateTo)
	}
	err := query.Group("wt.name").
		Order("process_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, common.NewTransientError("failed to build recycling report", err)
	}
	return rows, nil
}
