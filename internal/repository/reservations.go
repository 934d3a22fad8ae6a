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

func (s *Store) CreateReservation(ctx context.Context, r *domain.Reservation) (string, error) {
	r.CreatedAt = time.Now()
	res, err := s.coll(domain.CollReservations).InsertOne(ctx, r)
	if err != nil {
		return "", errors.Wrap(err, "insert reservation")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted ID is not an ObjectID")
	}
	r.ID = oid
	return oid.Hex(), nil
}

// ListReservations returns bookings newest first, optionally narrowed to one
// calendar day.
func (s *Store) ListReservations(ctx context.Context, day *time.Time) ([]domain.Reservation, error) {
	filter := bson.M{}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		filter["dateTime"] = bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)}
	}
	cur, err := s.coll(domain.CollReservations).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "dateTime", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query reservations")
	}
	var out []domain.Reservation
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode reservations")
	}
	return out, nil
}

func (s *Store) UpdateReservationStatus(ctx context.Context, id, status string) (*domain.Reservation, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var r domain.Reservation
	err = s.coll(domain.CollReservations).FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update reservation status")
	}
	return &r, nil
}

func (s *Store) DeleteReservation(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.coll(domain.CollReservations).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrap(err, "delete reservation")
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
