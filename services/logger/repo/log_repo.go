package repo

import (
	"context"
	"fmt"

	"redddate/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const logCollection = "logs"

type LogRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(mongoClient *mongo.Client, database string) *LogRepository {
	return &LogRepository{
		collection: mongoClient.Database(database).Collection(logCollection),
	}
}

// 조회용 인덱스 (서비스/이벤트 타입별 최신순)
func (r *LogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "service", Value: 1}, {Key: "log_event_type", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create log indexes: %w", err)
	}
	return nil
}

// InsertLog는 로그를 MongoDB에 저장합니다
func (r *LogRepository) InsertLog(ctx context.Context, l logger.BaseLog) error {
	_, err := r.collection.InsertOne(ctx, l)
	return err
}
