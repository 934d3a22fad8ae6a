package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bistrostack/gastropanel/internal/domain"
)

// The active-sessions set lives in the store, one document per login, so
// add/remove are single atomic upserts/deletes instead of a read-modify-write
// on shared process state.

func (s *Store) AddActiveLogin(ctx context.Context, login string) error {
	_, err := s.coll(domain.CollActiveSessions).UpdateOne(ctx,
		bson.M{"login": login},
		bson.M{"$set": bson.M{"login": login, "updatedAt": time.Now()}},
		options.Update().SetUpsert(true))
	return errors.Wrap(err, "add active login")
}

func (s *Store) RemoveActiveLogin(ctx context.Context, login string) error {
	_, err := s.coll(domain.CollActiveSessions).DeleteOne(ctx, bson.M{"login": login})
	return errors.Wrap(err, "remove active login")
}

func (s *Store) ActiveLogins(ctx context.Context) ([]string, error) {
	cur, err := s.coll(domain.CollActiveSessions).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "login", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "query active logins")
	}
	var sessions []domain.ActiveSession
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, errors.Wrap(err, "decode active logins")
	}
	logins := make([]string, 0, len(sessions))
	for _, a := range sessions {
		logins = append(logins, a.Login)
	}
	return logins, nil
}

// SweepActiveLogins drops set entries idle since before the cutoff. Used by
// the background sweeper so crashed clients do not stay "online" forever.
func (s *Store) SweepActiveLogins(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.coll(domain.CollActiveSessions).DeleteMany(ctx,
		bson.M{"updatedAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, errors.Wrap(err, "sweep active logins")
	}
	return res.DeletedCount, nil
}
