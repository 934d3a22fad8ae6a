package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkSession is one clock-in/clock-out interval. EndedAt stays nil while the
// session is open; at most one open session per employee is enforced by a
// partial unique index.
type WorkSession struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Login      string             `bson:"login" json:"login"`
	StartedAt  time.Time          `bson:"startedAt" json:"startedAt"`
	EndedAt    *time.Time         `bson:"endedAt" json:"endedAt"`
	TotalHours float64            `bson:"totalHours" json:"totalHours"`
}

// Hours returns the elapsed wall-clock hours, using now for open sessions.
func (w WorkSession) Hours(now time.Time) float64 {
	end := now
	if w.EndedAt != nil {
		end = *w.EndedAt
	}
	return end.Sub(w.StartedAt).Hours()
}
