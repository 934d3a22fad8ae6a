package domain

import "time"

// AuditLog is a best-effort append-only record of who did what.
type AuditLog struct {
	ID        int64     `bson:"_id" json:"id,string"`
	Actor     string    `bson:"actor" json:"actor"`
	Action    string    `bson:"action" json:"action"`
	Entity    string    `bson:"entity" json:"entity"`
	EntityID  string    `bson:"entityId,omitempty" json:"entity_id,omitempty"`
	Detail    string    `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// Snapshot is the aggregate payload returned by GET /api/data.
type Snapshot struct {
	Employees    []Employee    `json:"employees"`
	Products     []Product     `json:"products"`
	Orders       []Order       `json:"orders"`
	Reservations []Reservation `json:"reservations"`
	Categories   []Category    `json:"categories"`
	Holidays     []Holiday     `json:"holidays"`
	MenuItems    []MenuItem    `json:"menuItems"`
	WorkSessions []WorkSession `json:"workSessions"`
	ActiveLogins []string      `json:"activeLogins"`
}
