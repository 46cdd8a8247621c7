package historyRepo

import (
	"context"

	"realfun/database"
	"realfun/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type CopilotRecordRepository interface {
	Create(ctx context.Context, record models.CopilotRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.CopilotRecord, error)
	GetRecent(ctx context.Context, limit int64) ([]models.CopilotRecord, error)
	GetByStudentName(ctx context.Context, studentName string, limit int64) ([]models.CopilotRecord, error)
	DeleteByID(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoHistoryRepo returns a new CopilotRecordRepository instance using MongoDB.
func NewMongoHistoryRepo() CopilotRecordRepository {
	db := database.MongoClient.Database("realfun")
	return &mongoHistoryRepo{
		coll: db.Collection("copilot_records"),
	}
}
