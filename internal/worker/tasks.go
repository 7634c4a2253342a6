package worker

import (
	"encoding/json"
	"fmt"

	"recycle-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeRewardAccrual = "reward-accrual"
)

// Task Creators

func NewRewardAccrualTask(payload consumers.RewardAccrualDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRewardAccrual, data), nil
}

// Enqueuer schedules background jobs from the API process. The TaskID keyed
// on the transaction id dedupes retries already sitting in the queue.
type Enqueuer struct {
	Client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{Client: client}
}

func (e *Enqueuer) EnqueueAccrual(transactionId int) error {
	task, err := NewRewardAccrualTask(consumers.RewardAccrualDTO{TransactionId: transactionId})
	if err != nil {
		return err
	}
	_, err = e.Client.Enqueue(task,
		asynq.TaskID(fmt.Sprintf("reward-accrual:%d", transactionId)),
		asynq.Queue("low"),
	)
	return err
}
