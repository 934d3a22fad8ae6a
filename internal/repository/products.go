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

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	cur, err := s.coll(domain.CollProducts).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	var out []domain.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return out, nil
}

func (s *Store) ProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	cur, err := s.coll(domain.CollProducts).Find(ctx, bson.M{"category": category},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query products by category")
	}
	var out []domain.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	err = s.coll(domain.CollProducts).FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *domain.Product) (string, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := s.coll(domain.CollProducts).InsertOne(ctx, p)
	if err != nil {
		return "", errors.Wrap(err, "insert product")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	p.ID = oid
	return oid.Hex(), nil
}

func (s *Store) UpdateProduct(ctx context.Context, id string, patch map[string]interface{}) (*domain.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p domain.Product
	err = s.coll(domain.CollProducts).FindOneAndUpdate(ctx, bson.M{"_id": oid}, touch(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return &p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll(domain.CollProducts).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertProductByName backs the idempotent seed import: reseeding never
// duplicates and never needs a drop-all first.
func (s *Store) UpsertProductByName(ctx context.Context, p *domain.Product) error {
	now := time.Now()
	patch := bson.M{
		"$set": bson.M{
			"category":     p.Category,
			"unit":         p.Unit,
			"pricePerUnit": p.PricePerUnit,
			"supplier":     p.Supplier,
			"packageSize":  p.PackageSize,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"name":      p.Name,
			"image":     p.Image,
			"demand":    p.Demand,
			"createdAt": now,
		},
	}
	_, err := s.coll(domain.CollProducts).UpdateOne(ctx, bson.M{"name": p.Name}, patch,
		options.Update().SetUpsert(true))
	return errors.Wrap(err, "upsert product")
}
