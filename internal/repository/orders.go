package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistrostack/gastropanel/internal/domain"
)

func (s *Store) ListOrders(ctx context.Context) ([]domain.Order, error) {
	cur, err := s.coll(domain.CollOrders).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query orders")
	}
	var out []domain.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return out, nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var o domain.Order
	err = s.coll(domain.CollOrders).FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query order")
	}
	return &o, nil
}

// CreateOrder persists a submitted order with a server-assigned timestamp.
// Orders are immutable afterwards.
func (s *Store) CreateOrder(ctx context.Context, o *domain.Order) (string, error) {
	o.CreatedAt = time.Now()
	res, err := s.coll(domain.CollOrders).InsertOne(ctx, o)
	if err != nil {
		return "", errors.Wrap(err, "insert order")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	o.ID = oid
	return oid.Hex(), nil
}

func (s *Store) DeleteAllOrders(ctx context.Context) (int64, error) {
	res, err := s.coll(domain.CollOrders).DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "delete all orders")
	}
	return res.DeletedCount, nil
}
