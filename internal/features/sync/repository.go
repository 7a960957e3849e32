package sync

import (
	"context"

	"attendance-sync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RunRepository interface {
	Create(ctx context.Context, run *SyncRun) error
	Update(ctx context.Context, run *SyncRun) error
	List(ctx context.Context, limit int64) ([]SyncRun, error)
}

type RunRepositoryImpl struct {
	collection *mongo.Collection
}

func NewRunRepository(db *database.MongodbDB) RunRepository {
	return &RunRepositoryImpl{
		collection: db.DB.Collection("sync_runs"),
	}
}

func (r *RunRepositoryImpl) Create(ctx context.Context, run *SyncRun) error {
	_, err := r.collection.InsertOne(ctx, run)
	return err
}

func (r *RunRepositoryImpl) Update(ctx context.Context, run *SyncRun) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": run.ID}, run)
	return err
}

func (r *RunRepositoryImpl) List(ctx context.Context, limit int64) ([]SyncRun, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var runs []SyncRun
	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}
