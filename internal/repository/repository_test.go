package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseID(t *testing.T) {
	oid, err := parseID("6502f3b1a3e45c0001000001")
	require.NoError(t, err)
	assert.Equal(t, "6502f3b1a3e45c0001000001", oid.Hex())

	_, err = parseID("not-an-object-id")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = parseID("")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestTouchStampsUpdatedAt(t *testing.T) {
	before := time.Now()
	update := touch(map[string]interface{}{"name": "Tomatoes", "pricePerUnit": 6.5})

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "Tomatoes", set["name"])
	assert.Equal(t, 6.5, set["pricePerUnit"])

	stamp, ok := set["updatedAt"].(time.Time)
	require.True(t, ok)
	assert.False(t, stamp.Before(before))
}

func TestCloseWorkUpdateSetsEndAndHoursTogether(t *testing.T) {
	pipeline := closeWorkUpdate()
	require.Len(t, pipeline, 1)

	stage, ok := pipeline[0].(bson.M)
	require.True(t, ok)
	set, ok := stage["$set"].(bson.M)
	require.True(t, ok)

	assert.Equal(t, "$$NOW", set["endedAt"])

	hours, ok := set["totalHours"].(bson.M)
	require.True(t, ok)
	div, ok := hours["$divide"].(bson.A)
	require.True(t, ok)
	require.Len(t, div, 2)
	assert.Equal(t, msPerHour, div[1])

	sub, ok := div[0].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.A{"$$NOW", "$startedAt"}, sub["$subtract"])
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrDuplicate, ErrInvalidID, ErrSessionOpen, ErrNoOpenWork}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}
