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

func (s *Store) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	cur, err := s.coll(domain.CollMenuItems).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query menu items")
	}
	var out []domain.MenuItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode menu items")
	}
	return out, nil
}

func (s *Store) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var m domain.MenuItem
	err = s.coll(domain.CollMenuItems).FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query menu item")
	}
	return &m, nil
}

func (s *Store) CreateMenuItem(ctx context.Context, m *domain.MenuItem) (string, error) {
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	res, err := s.coll(domain.CollMenuItems).InsertOne(ctx, m)
	if err != nil {
		return "", errors.Wrap(err, "insert menu item")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	m.ID = oid
	return oid.Hex(), nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, id string, patch map[string]interface{}) (*domain.MenuItem, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var m domain.MenuItem
	err = s.coll(domain.CollMenuItems).FindOneAndUpdate(ctx, bson.M{"_id": oid}, touch(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update menu item")
	}
	return &m, nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll(domain.CollMenuItems).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete menu item")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertMenuItemByName mirrors UpsertProductByName for the seed import.
func (s *Store) UpsertMenuItemByName(ctx context.Context, m *domain.MenuItem) error {
	now := time.Now()
	patch := bson.M{
		"$set": bson.M{
			"category":    m.Category,
			"price":       m.Price,
			"description": m.Description,
			"available":   m.Available,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"name":      m.Name,
			"image":     m.Image,
			"createdAt": now,
		},
	}
	_, err := s.coll(domain.CollMenuItems).UpdateOne(ctx, bson.M{"name": m.Name}, patch,
		options.Update().SetUpsert(true))
	return errors.Wrap(err, "upsert menu item")
}
