package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistrostack/gastropanel/internal/domain"
)

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cur, err := s.coll(domain.CollCategories).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "sort", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	var out []domain.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode categories")
	}
	return out, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *domain.Category) (string, error) {
	c.CreatedAt = time.Now()
	res, err := s.coll(domain.CollCategories).InsertOne(ctx, c)
	if err != nil {
		return "", errors.Wrap(err, "insert category")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	c.ID = oid
	return oid.Hex(), nil
}

// UpsertCategoryByName keeps the seed import idempotent.
func (s *Store) UpsertCategoryByName(ctx context.Context, c *domain.Category) error {
	_, err := s.coll(domain.CollCategories).UpdateOne(ctx,
		bson.M{"name": c.Name},
		bson.M{
			"$set":         bson.M{"sort": c.Sort},
			"$setOnInsert": bson.M{"name": c.Name, "createdAt": time.Now()},
		},
		options.Update().SetUpsert(true))
	return errors.Wrap(err, "upsert category")
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll(domain.CollCategories).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListHolidays(ctx context.Context) ([]domain.Holiday, error) {
	cur, err := s.coll(domain.CollHolidays).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query holidays")
	}
	var out []domain.Holiday
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode holidays")
	}
	return out, nil
}

func (s *Store) CreateHoliday(ctx context.Context, h *domain.Holiday) (string, error) {
	h.CreatedAt = time.Now()
	res, err := s.coll(domain.CollHolidays).InsertOne(ctx, h)
	if err != nil {
		return "", errors.Wrap(err, "insert holiday")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	h.ID = oid
	return oid.Hex(), nil
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll(domain.CollHolidays).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete holiday")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Snapshot collects every collection for the aggregate /api/data response.
// Reads are independent queries; the snapshot is not transactional.
func (s *Store) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	var err error
	if snap.Employees, err = s.ListEmployees(ctx); err != nil {
		return nil, err
	}
	if snap.Products, err = s.ListProducts(ctx); err != nil {
		return nil, err
	}
	if snap.Orders, err = s.ListOrders(ctx); err != nil {
		return nil, err
	}
	if snap.Reservations, err = s.ListReservations(ctx, nil); err != nil {
		return nil, err
	}
	if snap.Categories, err = s.ListCategories(ctx); err != nil {
		return nil, err
	}
	if snap.Holidays, err = s.ListHolidays(ctx); err != nil {
		return nil, err
	}
	if snap.MenuItems, err = s.ListMenuItems(ctx); err != nil {
		return nil, err
	}
	if snap.WorkSessions, err = s.AllWorkSessions(ctx); err != nil {
		return nil, err
	}
	if snap.ActiveLogins, err = s.ActiveLogins(ctx); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) CountEmployees(ctx context.Context) (int64, error) {
	n, err := s.coll(domain.CollUsers).CountDocuments(ctx, bson.M{})
	return n, errors.Wrap(err, "count employees")
}

func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	n, err := s.coll(domain.CollProducts).CountDocuments(ctx, bson.M{})
	return n, errors.Wrap(err, "count products")
}
