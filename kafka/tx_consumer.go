package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"time"

	// Local Packages
	models "fraudwatch/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type TxProcessor interface {
	ProcessRecords(ctx context.Context, records []models.Record) error
}

const defaultRetryBackoff = time.Second

type Consumer struct {
	Client       *kgo.Client
	Config       *models.ConsumerConfig
	Processor    TxProcessor
	Logger       *zap.Logger
	RetryBackoff time.Duration
}

// NewTxConsumer creates a consumer group member for the transactions topic
// (PS: Must call Poll to start consuming the records)
func NewTxConsumer(conf *models.ConsumerConfig, processor TxProcessor, metrics *kprom.Metrics, logger *zap.Logger) (*Consumer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ConsumerGroup(conf.Name),
		kgo.ConsumeTopics(conf.Topic),
		kgo.DisableAutoCommit(),
		kgo.BlockRebalanceOnPoll(),
	}
	if metrics != nil {
		opts = append(opts, kgo.WithHooks(metrics))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		Client:       client,
		Config:       conf,
		Processor:    processor,
		Logger:       logger,
		RetryBackoff: defaultRetryBackoff,
	}, nil
}

// firstOffsets maps every topic partition in records to its lowest offset.
func firstOffsets(records []*kgo.Record) map[string]map[int32]kgo.EpochOffset {
	offsets := make(map[string]map[int32]kgo.EpochOffset)
	for _, r := range records {
		partitions, ok := offsets[r.Topic]
		if !ok {
			partitions = make(map[int32]kgo.EpochOffset)
			offsets[r.Topic] = partitions
		}
		if cur, seen := partitions[r.Partition]; !seen || r.Offset < cur.Offset {
			partitions[r.Partition] = kgo.EpochOffset{Epoch: r.LeaderEpoch, Offset: r.Offset}
		}
	}
	return offsets
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Poll fetches records until ctx is canceled. A batch is committed only
// after the processor accepted it; a rejected batch is fetched again from its
// first offsets after RetryBackoff.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()

	for {
		if ctx.Err() != nil {
			c.Logger.Warn("polling stopped: context canceled")
			return nil
		}

		fetches := c.Client.PollRecords(ctx, c.Config.RecordsPerPoll)
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}
		if errors.Is(fetches.Err0(), context.Canceled) {
			return nil
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			c.Logger.Error("fetch error", zap.String("topic", topic), zap.Int32("partition", partition), zap.Error(err))
		})

		polled := fetches.Records()
		if len(polled) > 0 {
			records := make([]models.Record, len(polled))
			for idx, record := range polled {
				records[idx] = models.Record{
					Key:   record.Key,
					Value: record.Value,
					Topic: record.Topic,
				}
			}

			if err := c.Processor.ProcessRecords(ctx, records); err != nil {
				rewind := firstOffsets(polled)
				c.Logger.Error("failed to process records, rewinding batch",
					zap.Int("records", len(polled)), zap.Any("offsets", rewind), zap.Error(err))
				c.Client.SetOffsets(rewind)
				c.Client.AllowRebalance()
				if !sleep(ctx, c.RetryBackoff) {
					return nil
				}
				continue
			}

			if err := c.Client.CommitRecords(ctx, polled...); err != nil {
				c.Logger.Error("failed to commit records", zap.Error(err))
			}
		}
		c.Client.AllowRebalance()
	}
}
