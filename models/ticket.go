package models

// Ticket represents a user's holding of a labeled service ticket within a guild.
// Labels are free-form, operator-defined service names.
type Ticket struct {
	GuildID int64  `db:"guild_id"`
	UserID  int64  `db:"user_id"`
	Label   string `db:"label"`
	Count   int64  `db:"count"`
}

// TicketAdjustResult represents the outcome of an administrative ticket decrease
type TicketAdjustResult struct {
	Label  string
	Before int64
	After  int64
}
