package models

import (
	"time"
)

// Balance represents a user's currency balance within a guild
type Balance struct {
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TransferResult represents the outcome of a completed transfer
type TransferResult struct {
	Amount        int64
	SenderBalance int64
}
