package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yenbot/database"
	"yenbot/models"
	"yenbot/service"
)

// BalanceRepository implements the service.BalanceRepository interface
type BalanceRepository struct {
	q queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

// newBalanceRepositoryWithTx creates a new balance repository bound to a transaction
func newBalanceRepositoryWithTx(tx queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

// GetOrCreate retrieves a user's balance row, creating it at zero if absent
func (r *BalanceRepository) GetOrCreate(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	insert := `
		INSERT INTO balances (guild_id, user_id, balance)
		VALUES ($1, $2, 0)
		ON CONFLICT (guild_id, user_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, guildID, userID); err != nil {
		return nil, fmt.Errorf("failed to ensure balance row for user %d in guild %d: %w", userID, guildID, err)
	}

	query := `
		SELECT guild_id, user_id, balance, created_at, updated_at
		FROM balances
		WHERE guild_id = $1 AND user_id = $2
	`

	var balance models.Balance
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&balance.GuildID,
		&balance.UserID,
		&balance.Balance,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d in guild %d: %w", userID, guildID, err)
	}

	return &balance, nil
}

// Add applies a signed delta unconditionally and returns the new balance.
// The row is created lazily, so adjusting an untouched user works.
func (r *BalanceRepository) Add(ctx context.Context, guildID, userID int64, delta int64) (int64, error) {
	query := `
		INSERT INTO balances (guild_id, user_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, user_id)
		DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, guildID, userID, delta).Scan(&newBalance)
	if err != nil {
		return 0, fmt.Errorf("failed to add %d to balance of user %d in guild %d: %w", delta, userID, guildID, err)
	}

	return newBalance, nil
}

// Deduct subtracts amount atomically, failing if the balance is insufficient.
// The guard is part of the UPDATE itself, so two concurrent deductions cannot
// both pass the check against a stale balance.
func (r *BalanceRepository) Deduct(ctx context.Context, guildID, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	query := `
		UPDATE balances
		SET balance = balance - $3, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2 AND balance >= $3
	`

	result, err := r.q.Exec(ctx, query, guildID, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to deduct balance for user %d in guild %d: %w", userID, guildID, err)
	}

	if result.RowsAffected() == 0 {
		// Missing row means a zero balance, which is equally insufficient
		return service.ErrInsufficientFunds
	}

	return nil
}

// Get retrieves a balance row without creating it, nil if absent
func (r *BalanceRepository) Get(ctx context.Context, guildID, userID int64) (*models.Balance, error) {
	query := `
		SELECT guild_id, user_id, balance, created_at, updated_at
		FROM balances
		WHERE guild_id = $1 AND user_id = $2
	`

	var balance models.Balance
	err := r.q.QueryRow(ctx, query, guildID, userID).Scan(
		&balance.GuildID,
		&balance.UserID,
		&balance.Balance,
		&balance.CreatedAt,
		&balance.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d in guild %d: %w", userID, guildID, err)
	}

	return &balance, nil
}
