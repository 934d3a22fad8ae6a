package domain

// Collection names, one per entity type.
const (
	CollUsers          = "users"
	CollProducts       = "products"
	CollOrders         = "orders"
	CollReservations   = "reservations"
	CollCategories     = "categories"
	CollHolidays       = "holidays"
	CollWorkSessions   = "workSessions"
	CollActiveSessions = "activeSessions"
	CollLogs           = "logs"
	CollMenuItems      = "menuItems"
)
