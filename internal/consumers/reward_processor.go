package consumers

import (
	"log"

	"recycle-service/internal/services"
	"recycle-service/pkg/common"

	"gorm.io/gorm"
)

type RewardProcessor struct {
	DB      *gorm.DB
	Rewards *services.RewardService
}

func NewRewardProcessor(db *gorm.DB, rewards *services.RewardService) *RewardProcessor {
	return &RewardProcessor{
		DB:      db,
		Rewards: rewards,
	}
}

type RewardAccrualDTO struct {
	TransactionId int
}

// ProcessAccrual retries reward accrual for a completed transaction whose
// inline accrual failed. Transient failures are returned so asynq retries
// the task; anything else (transaction gone, already rewarded via the
// idempotent path, bad state) is final and logged.
func (p *RewardProcessor) ProcessAccrual(data RewardAccrualDTO) error {
	reward, err := p.Rewards.Reprocess(data.TransactionId)
	if err != nil {
		if common.IsKind(err, common.KindTransient) {
			return err
		}
		log.Printf("reward accrual for transaction %d not retryable: %v", data.TransactionId, err)
		return nil
	}

	log.Printf("reward accrual recovered for transaction %d: reward %d, %d points",
		data.TransactionId, reward.ID, reward.Points)
	return nil
}
