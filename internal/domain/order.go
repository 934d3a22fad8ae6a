package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle statuses.
const (
	OrderStatusNew        = "new"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
)

var OrderStatuses = []string{OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted}

// OrderedBySystem is the sentinel recorded when no employee is attached to an order.
const OrderedBySystem = "system"

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// OrderItem is a line item with the price frozen at submission time.
type OrderItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	Name         string             `bson:"name" json:"name"`
	Quantity     float64            `bson:"quantity" json:"quantity"`
	Unit         string             `bson:"unit" json:"unit"`
	PriceAtOrder float64            `bson:"priceAtOrder" json:"priceAtOrder"`
	Day          string             `bson:"day,omitempty" json:"day,omitempty"`
}

// Order is immutable after submission except for bulk deletion.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderedBy  string             `bson:"orderedBy" json:"orderedBy"`
	Status     string             `bson:"status" json:"status"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Items      []OrderItem        `bson:"items" json:"items"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}
