package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Units a product can be priced in.
const (
	UnitPiece   = "piece"
	UnitKg      = "kg"
	UnitLiter   = "liter"
	UnitPackage = "package"
)

var Units = []string{UnitPiece, UnitKg, UnitLiter, UnitPackage}

func ValidUnit(u string) bool {
	for _, v := range Units {
		if v == u {
			return true
		}
	}
	return false
}

// Product represents a catalog/inventory item managed through the back-office
// panel. Image holds the picture inline as a data URI. Demand maps a weekday
// name to the expected quantity for that day.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Category     string             `bson:"category" json:"category"`
	Unit         string             `bson:"unit" json:"unit"`
	PricePerUnit float64            `bson:"pricePerUnit" json:"pricePerUnit"`
	Supplier     string             `bson:"supplier" json:"supplier"`
	AltSupplier  string             `bson:"altSupplier,omitempty" json:"altSupplier,omitempty"`
	Image        string             `bson:"image" json:"image"`
	PackageSize  float64            `bson:"packageSize" json:"packageSize"`
	Demand       map[string]float64 `bson:"demand,omitempty" json:"demand,omitempty"`
	ScheduleDays []string           `bson:"scheduleDays,omitempty" json:"scheduleDays,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Category groups products and menu items.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Sort      int                `bson:"sort" json:"sort"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
