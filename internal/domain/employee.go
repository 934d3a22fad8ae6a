package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LevelAdmin = "admin"
	LevelStaff = "staff"
)

// Employee is a staff account. Login is unique across the users collection.
// The bcrypt password hash never leaves the server.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Login      string             `bson:"login" json:"login"`
	Password   string             `bson:"password" json:"-"`
	Position   string             `bson:"position" json:"position"`
	Workplace  string             `bson:"workplace" json:"workplace"`
	HourlyRate float64            `bson:"hourlyRate" json:"hourlyRate"`
	Level      string             `bson:"level" json:"level"`
	LastLogin  time.Time          `bson:"lastLogin,omitempty" json:"last_login,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updated_at"`
}

// ActiveSession marks a currently logged-in employee, one document per login.
type ActiveSession struct {
	Login     string    `bson:"login" json:"login"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}
