package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

var ReservationStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCancelled}

func ValidReservationStatus(s string) bool {
	for _, v := range ReservationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Reservation is a table booking made through the public site.
type Reservation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName string             `bson:"customerName" json:"customerName"`
	Phone        string             `bson:"phone" json:"phone"`
	DateTime     time.Time          `bson:"dateTime" json:"dateTime"`
	Guests       int                `bson:"guests" json:"guests"`
	Table        string             `bson:"table" json:"table"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
}

// Holiday marks a closed day shown on the public site.
type Holiday struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
