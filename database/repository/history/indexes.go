// FILE: database/repository/history/indexes.go
package historyRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// recordRetention is how long audit records stay queryable before Mongo
// expires them.
const recordRetention = 90 * 24 * time.Hour

// EnsureIndexes creates the necessary indexes on the copilot_records collection.
func (r *mongoHistoryRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on record ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for student lookups ordered by recency
		{
			Keys:    bson.D{{Key: "request.studentName", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("student_created_idx"),
		},
		// TTL index so old records age out on their own
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(recordRetention.Seconds())).SetName("created_ttl_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create copilot record indexes: %w", err)
	}
	return nil
}
