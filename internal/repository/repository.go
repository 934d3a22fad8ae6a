package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/bistrostack/gastropanel/internal/domain"
)

// Sentinel errors mapped to HTTP statuses by the API layer.
var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("duplicate record")
	ErrInvalidID   = errors.New("invalid identifier")
	ErrSessionOpen = errors.New("employee already has an open work session")
	ErrNoOpenWork  = errors.New("employee has no open work session")
)

// Store is the persistence adapter over a single document database handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the one connection used for the process lifetime. Callers
// treat an error here as fatal.
func Connect(ctx context.Context, url, name string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, errors.Wrap(err, "connect document database")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping document database")
	}
	return &Store{client: client, db: client.Database(name)}, nil
}

// NewWithDatabase wraps an existing database handle (used in tests).
func NewWithDatabase(db *mongo.Database) *Store {
	return &Store{client: db.Client(), db: db}
}

func (s *Store) Close(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Disconnect(ctx); err != nil {
		zap.L().Warn("database disconnect failed", zap.Error(err))
	}
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// EnsureIndexes creates the uniqueness and lookup indexes the API relies on.
// The unique login index is what makes concurrent duplicate-login creation
// impossible; the partial index on workSessions keeps at most one open
// session per employee.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type idx struct {
		coll  string
		model mongo.IndexModel
	}
	indexes := []idx{
		{domain.CollUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{domain.CollActiveSessions, mongo.IndexModel{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{domain.CollWorkSessions, mongo.IndexModel{
			Keys: bson.D{{Key: "employeeId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "endedAt", Value: bson.D{{Key: "$type", Value: "null"}}}}),
		}},
		{domain.CollOrders, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
		{domain.CollReservations, mongo.IndexModel{Keys: bson.D{{Key: "dateTime", Value: -1}}}},
		{domain.CollLogs, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}},
		{domain.CollProducts, mongo.IndexModel{Keys: bson.D{{Key: "category", Value: 1}}}},
	}
	for _, i := range indexes {
		if _, err := s.coll(i.coll).Indexes().CreateOne(ctx, i.model); err != nil {
			return errors.Wrapf(err, "create index on %s", i.coll)
		}
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// touch stamps updatedAt on $set patches.
func touch(patch map[string]interface{}) bson.M {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range patch {
		set[k] = v
	}
	return bson.M{"$set": set}
}
