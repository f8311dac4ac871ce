package mongodb

import (
	// Go Internal Packages
	"context"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionsRepo holds raw transaction rows, one document per CSV row.
type TransactionsRepo struct {
	collection *mongo.Collection
}

func NewTransactionsRepo(client *mongo.Client, database, collection string) *TransactionsRepo {
	return &TransactionsRepo{collection: client.Database(database).Collection(collection)}
}

// InsertDocuments inserts every document in one ordered batch.
func (r *TransactionsRepo) InsertDocuments(ctx context.Context, docs []interface{}) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	res, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// FindAll scans the whole collection, keeping each document's field order.
func (r *TransactionsRepo) FindAll(ctx context.Context) ([]bson.D, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.D
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Head returns the first n documents in natural order.
func (r *TransactionsRepo) Head(ctx context.Context, n int64) ([]bson.D, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetLimit(n))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.D
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *TransactionsRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.D{})
}
