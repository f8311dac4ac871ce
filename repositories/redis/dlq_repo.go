package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// Local Packages
	models "fraudwatch/models"

	// External Packages
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const failedPredictionsList = "failed-predictions"

type failedRecord struct {
	Key      string    `json:"key"`
	Value    string    `json:"value"`
	Topic    string    `json:"topic"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

type failedPrediction struct {
	ID       string                 `json:"id"`
	Input    models.PredictionInput `json:"input"`
	Cause    string                 `json:"cause"`
	FailedAt time.Time              `json:"failed_at"`
}

// DeadLetterQueue keeps inputs that could not be scored so operators can inspect them.
type DeadLetterQueue struct {
	client    redis.Cmdable
	logger    *zap.Logger
	keyPrefix string
	listName  string
	now       func() time.Time
}

func NewDeadLetterQueue(client redis.Cmdable, logger *zap.Logger, keyPrefix string) *DeadLetterQueue {
	return &DeadLetterQueue{
		client:    client,
		logger:    logger,
		keyPrefix: keyPrefix,
		listName:  failedPredictionsList,
		now:       time.Now,
	}
}

// Send stores each failed stream record under "<prefix>:<record key>".
// Records without a key get a generated one.
func (q *DeadLetterQueue) Send(ctx context.Context, records []models.Record, reason error) error {
	if len(records) == 0 {
		return nil
	}

	successCount := 0
	for _, record := range records {
		key := string(record.Key)
		if key == "" {
			key = uuid.NewString()
		}
		payload, err := json.Marshal(failedRecord{
			Key:      key,
			Value:    string(record.Value),
			Topic:    record.Topic,
			Reason:   reason.Error(),
			FailedAt: q.now().UTC(),
		})
		if err != nil {
			q.logger.Error("failed to marshal record", zap.Error(err))
			continue
		}

		redisKey := fmt.Sprintf("%s:%s", q.keyPrefix, key)
		if err = q.client.Set(ctx, redisKey, payload, 0).Err(); err != nil {
			q.logger.Error("failed to store record", zap.String("key", redisKey), zap.Error(err))
			continue
		}
		successCount++
	}

	if successCount > 0 {
		q.logger.Info("sent records to dead letter queue", zap.Int("count", successCount))
	}
	if successCount < len(records) {
		return fmt.Errorf("stored %d of %d failed records", successCount, len(records))
	}
	return nil
}

// SendFailedPrediction appends a dashboard input whose inference failed to the failed-predictions list.
func (q *DeadLetterQueue) SendFailedPrediction(ctx context.Context, in models.PredictionInput, cause error) error {
	payload, err := json.Marshal(failedPrediction{
		ID:       uuid.NewString(),
		Input:    in,
		Cause:    cause.Error(),
		FailedAt: q.now().UTC(),
	})
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, q.listName, payload).Err()
}
