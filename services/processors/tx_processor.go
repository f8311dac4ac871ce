package processors

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
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_processors.go -package=mocks -source=tx_processor.go

type Scorer interface {
	Record(in models.PredictionInput) (models.TransactionRecord, error)
	Score(ctx context.Context, rec models.TransactionRecord) (models.PredictionResult, error)
}

type ScoresRepository interface {
	InsertScores(ctx context.Context, scores []models.ScoredTransaction) error
}

type DeadLetterQueue interface {
	Send(ctx context.Context, records []models.Record, reason error) error
}

type TxProcessor struct {
	Logger     *zap.Logger
	Scorer     Scorer
	ScoresRepo ScoresRepository
	DLQ        DeadLetterQueue
	Now        func() time.Time
}

func NewTxProcessor(logger *zap.Logger, scorer Scorer, scoresRepo ScoresRepository, dlq DeadLetterQueue) *TxProcessor {
	return &TxProcessor{Logger: logger, Scorer: scorer, ScoresRepo: scoresRepo, DLQ: dlq, Now: time.Now}
}

// ProcessRecords scores every record of a poll and stores the verdicts in one
// batch. Records that cannot be decoded, validated or scored go to the
// dead letter queue and do not fail the batch; a failed insert does.
func (p *TxProcessor) ProcessRecords(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	scores := make([]models.ScoredTransaction, 0, len(records))
	for _, record := range records {
		scored, err := p.score(ctx, record)
		if err != nil {
			p.Logger.Warn("cannot score record", zap.ByteString("key", record.Key), zap.Error(err))
			p.deadLetter(ctx, record, err)
			continue
		}
		scores = append(scores, scored)
	}

	if err := p.ScoresRepo.InsertScores(ctx, scores); err != nil {
		return fmt.Errorf("failed to insert scores: %w", err)
	}

	fraud := 0
	for _, s := range scores {
		if s.Result.IsFraud {
			fraud++
		}
	}
	p.Logger.Info("processed records",
		zap.Int("records", len(records)), zap.Int("scored", len(scores)), zap.Int("fraud", fraud))
	return nil
}

func (p *TxProcessor) score(ctx context.Context, record models.Record) (models.ScoredTransaction, error) {
	var in models.PredictionInput
	if err := json.Unmarshal(record.Value, &in); err != nil {
		return models.ScoredTransaction{}, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	rec, err := p.Scorer.Record(in)
	if err != nil {
		return models.ScoredTransaction{}, err
	}
	res, err := p.Scorer.Score(ctx, rec)
	if err != nil {
		return models.ScoredTransaction{}, err
	}

	return models.ScoredTransaction{
		PredictionID: uuid.NewString(),
		SourceKey:    string(record.Key),
		Record:       rec,
		Result:       res,
		ScoredAt:     p.Now().UTC(),
	}, nil
}

func (p *TxProcessor) deadLetter(ctx context.Context, record models.Record, reason error) {
	if p.DLQ == nil {
		return
	}
	if err := p.DLQ.Send(ctx, []models.Record{record}, reason); err != nil {
		p.Logger.Error("cannot send record to dead letter queue", zap.Error(err))
	}
}
