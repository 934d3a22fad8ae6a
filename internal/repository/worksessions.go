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

// StartWork opens a clock-in session. The partial unique index on
// (employeeId, open) rejects a second open session atomically, so concurrent
// double clock-ins cannot both succeed.
func (s *Store) StartWork(ctx context.Context, employeeID, login string) (*domain.WorkSession, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}
	ws := &domain.WorkSession{
		EmployeeID: oid,
		Login:      login,
		StartedAt:  time.Now(),
		EndedAt:    nil,
	}
	res, err := s.coll(domain.CollWorkSessions).InsertOne(ctx, ws)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSessionOpen
		}
		return nil, errors.Wrap(err, "insert work session")
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		ws.ID = id
	}
	return ws, nil
}

const msPerHour = 3_600_000

// closeWorkUpdate is an aggregation-pipeline update stamping endedAt and
// deriving totalHours from startedAt in the same write, so a session can
// never be observed closed with its hours missing.
func closeWorkUpdate() bson.A {
	return bson.A{bson.M{"$set": bson.M{
		"endedAt": "$$NOW",
		"totalHours": bson.M{"$divide": bson.A{
			bson.M{"$subtract": bson.A{"$$NOW", "$startedAt"}},
			msPerHour,
		}},
	}}}
}

// StopWork closes the employee's open session and records the elapsed
// wall-clock hours in one atomic FindOneAndUpdate.
func (s *Store) StopWork(ctx context.Context, employeeID string) (*domain.WorkSession, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}
	var ws domain.WorkSession
	err = s.coll(domain.CollWorkSessions).FindOneAndUpdate(ctx,
		bson.M{"employeeId": oid, "endedAt": nil},
		closeWorkUpdate(),
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&ws)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoOpenWork
	}
	if err != nil {
		return nil, errors.Wrap(err, "close work session")
	}
	return &ws, nil
}

func (s *Store) ListWorkSessions(ctx context.Context, employeeID string) ([]domain.WorkSession, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return nil, err
	}
	cur, err := s.coll(domain.CollWorkSessions).Find(ctx, bson.M{"employeeId": oid},
		options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query work sessions")
	}
	var out []domain.WorkSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode work sessions")
	}
	return out, nil
}

func (s *Store) AllWorkSessions(ctx context.Context) ([]domain.WorkSession, error) {
	cur, err := s.coll(domain.CollWorkSessions).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query work sessions")
	}
	var out []domain.WorkSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, errors.Wrap(err, "decode work sessions")
	}
	return out, nil
}

// ResetWorkSessions bulk-deletes every session of one employee.
func (s *Store) ResetWorkSessions(ctx context.Context, employeeID string) (int64, error) {
	oid, err := parseID(employeeID)
	if err != nil {
		return 0, err
	}
	res, err := s.coll(domain.CollWorkSessions).DeleteMany(ctx, bson.M{"employeeId": oid})
	if err != nil {
		return 0, errors.Wrap(err, "reset work sessions")
	}
	return res.DeletedCount, nil
}
