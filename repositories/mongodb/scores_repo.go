package mongodb

import (
	// Go Internal Packages
	"context"

	// Local Packages
	models "fraudwatch/models"

	// External Packages
	"go.mongodb.org/mongo-driver/mongo"
)

// ScoresRepo stores the stream scorer's verdicts.
type ScoresRepo struct {
	collection *mongo.Collection
}

func NewScoresRepo(client *mongo.Client, database, collection string) *ScoresRepo {
	return &ScoresRepo{collection: client.Database(database).Collection(collection)}
}

// InsertScores inserts a batch of scored transactions into database
func (r *ScoresRepo) InsertScores(ctx context.Context, scores []models.ScoredTransaction) error {
	if len(scores) == 0 {
		return nil
	}
	docs := make([]interface{}, len(scores))
	for i := range scores {
		docs[i] = scores[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
