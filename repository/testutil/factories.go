package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"yenbot/database"
	"yenbot/models"
)

// SeedBalance inserts a balance row directly, bypassing the repositories
func SeedBalance(t *testing.T, db *database.DB, guildID, userID, balance int64) {
	ctx := context.Background()
	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO balances (guild_id, user_id, balance)
			VALUES ($1, $2, $3)
			ON CONFLICT (guild_id, user_id) DO UPDATE SET balance = EXCLUDED.balance`,
			guildID, userID, balance)
		return err
	})
	require.NoError(t, err)
}

// SeedTicket inserts a ticket row directly
func SeedTicket(t *testing.T, db *database.DB, guildID, userID int64, label string, count int64) {
	ctx := context.Background()
	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO tickets (guild_id, user_id, label, count)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (guild_id, user_id, label) DO UPDATE SET count = EXCLUDED.count`,
			guildID, userID, label, count)
		return err
	})
	require.NoError(t, err)
}

// SeedContract inserts a contract row directly and returns its id
func SeedContract(t *testing.T, db *database.DB, guildID, initiatorID, opponentID int64, content string, status models.ContractStatus) int64 {
	ctx := context.Background()
	var id int64
	err := db.WithTransaction(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO contracts (guild_id, initiator_id, opponent_id, content, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			guildID, initiatorID, opponentID, content, status).Scan(&id)
	})
	require.NoError(t, err)
	return id
}
