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

func (s *Store) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	cur, err := s.coll(domain.CollUsers).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query employees")
	}
	var out []domain.Employee
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode employees")
	}
	return out, nil
}

func (s *Store) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var e domain.Employee
	err = s.coll(domain.CollUsers).FindOne(ctx, bson.M{"_id": oid}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query employee")
	}
	return &e, nil
}

func (s *Store) GetEmployeeByLogin(ctx context.Context, login string) (*domain.Employee, error) {
	var e domain.Employee
	err := s.coll(domain.CollUsers).FindOne(ctx, bson.M{"login": login}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query employee by login")
	}
	return &e, nil
}

// CreateEmployee inserts a new staff account. The unique index on login turns
// a concurrent duplicate into ErrDuplicate instead of a second record.
func (s *Store) CreateEmployee(ctx context.Context, e *domain.Employee) (string, error) {
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	res, err := s.coll(domain.CollUsers).InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", errors.Wrap(err, "insert employee")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	e.ID = oid
	return oid.Hex(), nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, patch map[string]interface{}) (*domain.Employee, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var e domain.Employee
	err = s.coll(domain.CollUsers).FindOneAndUpdate(ctx, bson.M{"_id": oid}, touch(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, errors.Wrap(err, "update employee")
	}
	return &e, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, login string, at time.Time) error {
	_, err := s.coll(domain.CollUsers).UpdateOne(ctx,
		bson.M{"login": login}, bson.M{"$set": bson.M{"lastLogin": at}})
	return errors.Wrap(err, "touch last login")
}
