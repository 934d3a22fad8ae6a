package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistrostack/gastropanel/internal/domain"
)

func (s *Store) AppendLog(ctx context.Context, entry *domain.AuditLog) error {
	_, err := s.coll(domain.CollLogs).InsertOne(ctx, entry)
	return errors.Wrap(err, "append audit log")
}

func (s *Store) ListLogs(ctx context.Context, limit int64) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 200
	}
	cur, err := s.coll(domain.CollLogs).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, errors.Wrap(err, "query audit logs")
	}
	var out []domain.AuditLog
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode audit logs")
	}
	return out, nil
}

// PruneLogs enforces the audit retention window.
func (s *Store) PruneLogs(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.coll(domain.CollLogs).DeleteMany(ctx,
		bson.M{"createdAt": bson.M{"$lt": olderThan}})
	if err != nil {
		return 0, errors.Wrap(err, "prune audit logs")
	}
	return res.DeletedCount, nil
}
