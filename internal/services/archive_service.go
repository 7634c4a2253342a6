package services

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"recycle-service/internal/models"

	"gorm.io/gorm"
)

type ArchiveService struct {
	DB *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{DB: db}
}

// ArchiveTransactions moves terminal transactions older than 4 months to the
// archive table. The status history is snapshotted into the archive row as
// JSON before the live history rows are removed, so the audit trail
// survives the move. Pending and verified transactions are never archived.
func (s *ArchiveService) ArchiveTransactions() {
	log.Println("Starting transaction archive process...")

	cutoff := time.Now().AddDate(0, -4, 0)

	var oldTransactions []models.Transaction
	err := s.DB.
		Where("status IN ?", []string{models.StatusCompleted, models.StatusRejected}).
		Where("transaction_date < ?", cutoff).
		Find(&oldTransactions).Error
	if err != nil {
		log.Printf("Error finding old transactions: %v", err)
		return
	}

	if len(oldTransactions) == 0 {
		log.Println("No transactions to archive")
		return
	}

	log.Printf("Found %d transactions to archive", len(oldTransactions))

	archivedData := make([]models.ArchivedTransaction, 0, len(oldTransactions))
	ids := make([]int, 0, len(oldTransactions))
	for _, trx := range oldTransactions {
		var history []models.TransactionHistory
		if err := s.DB.Where("transaction_id = ?", trx.ID).
			Order("changed_at ASC, history_id ASC").
			Find(&history).Error; err != nil {
			log.Printf("Error loading history for transaction %d: %v", trx.ID, err)
			return
		}
		historyJson, err := json.Marshal(history)
		if err != nil {
			log.Printf("Error encoding history for transaction %d: %v", trx.ID, err)
			return
		}

		archivedData = append(archivedData, models.ArchivedTransaction{
			TransactionId:     trx.ID,
			UserId:            trx.UserId,
			CollectionPointId: trx.CollectionPointId,
			WasteTypeId:       trx.WasteTypeId,
			Quantity:          trx.Quantity,
			Unit:              trx.Unit,
			Status:            trx.Status,
			ProofImageUrl:     trx.ProofImageUrl,
			TransactionDate:   trx.TransactionDate,
			HistoryJson:       string(historyJson),
		})
		ids = append(ids, trx.ID)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archivedData).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id IN ?", ids).Delete(&models.TransactionHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Transaction{}, ids).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		log.Printf("Error during transaction archiving: %v", err)
	} else {
		log.Printf("Archived and removed %d transactions.", len(oldTransactions))
	}
}

// StartScheduler runs the archiver on a cron schedule, daily at 03:00 by
// default. Override with ARCHIVE_CRON.
func (s *ArchiveService) StartScheduler() {
	spec := os.Getenv("ARCHIVE_CRON")
	if spec == "" {
		spec = "0 3 * * *"
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		log.Println("Running scheduled transaction archive task...")
		s.ArchiveTransactions()
	})
	if err != nil {
		log.Printf("Error scheduling archive task: %v", err)
		return
	}
	c.Start()
	log.Printf("Transaction Archive Scheduler started (%s)", spec)
}
