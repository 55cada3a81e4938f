package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yenbot/database"
	"yenbot/models"
)

// ContractRepository implements the service.ContractRepository interface
type ContractRepository struct {
	q queryable
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *database.DB) *ContractRepository {
	return &ContractRepository{q: db.Pool}
}

// newContractRepositoryWithTx creates a new contract repository bound to a transaction
func newContractRepositoryWithTx(tx queryable) *ContractRepository {
	return &ContractRepository{q: tx}
}

// Create inserts a new contract and fills its ID and CreatedAt
func (r *ContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	query := `
		INSERT INTO contracts (guild_id, initiator_id, opponent_id, content, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		contract.GuildID,
		contract.InitiatorID,
		contract.OpponentID,
		contract.Content,
		contract.Status,
	).Scan(&contract.ID, &contract.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract between %d and %d: %w", contract.InitiatorID, contract.OpponentID, err)
	}

	return nil
}

// GetByID retrieves a contract by its ID, nil if absent
func (r *ContractRepository) GetByID(ctx context.Context, id int64) (*models.Contract, error) {
	query := `
		SELECT id, guild_id, initiator_id, opponent_id, content, status, created_at, accepted_at
		FROM contracts
		WHERE id = $1
	`

	var contract models.Contract
	err := r.q.QueryRow(ctx, query, id).Scan(
		&contract.ID,
		&contract.GuildID,
		&contract.InitiatorID,
		&contract.OpponentID,
		&contract.Content,
		&contract.Status,
		&contract.CreatedAt,
		&contract.AcceptedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract %d: %w", id, err)
	}

	return &contract, nil
}

// Update persists the contract's status and accepted_at
func (r *ContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	query := `
		UPDATE contracts
		SET status = $2, accepted_at = $3
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, contract.ID, contract.Status, contract.AcceptedAt)
	if err != nil {
		return fmt.Errorf("failed to update contract %d: %w", contract.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("contract %d not found", contract.ID)
	}

	return nil
}

// DeclineIfPending atomically declines the contract only if it is still
// pending. The conditional update makes the timeout's check-then-act a single
// statement, so it cannot clobber a contract that was accepted in between.
func (r *ContractRepository) DeclineIfPending(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE contracts
		SET status = $2
		WHERE id = $1 AND status = $3
	`

	result, err := r.q.Exec(ctx, query, id, models.ContractStatusDeclined, models.ContractStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to decline contract %d: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}

// GetLatestAcceptedBetween returns the most recent accepted contract between
// two users in either direction, nil if none exists
func (r *ContractRepository) GetLatestAcceptedBetween(ctx context.Context, guildID, userA, userB int64) (*models.Contract, error) {
	query := `
		SELECT id, guild_id, initiator_id, opponent_id, content, status, created_at, accepted_at
		FROM contracts
		WHERE guild_id = $1
		  AND ((initiator_id = $2 AND opponent_id = $3) OR (initiator_id = $3 AND opponent_id = $2))
		  AND status = $4
		ORDER BY id DESC
		LIMIT 1
	`

	var contract models.Contract
	err := r.q.QueryRow(ctx, query, guildID, userA, userB, models.ContractStatusAccepted).Scan(
		&contract.ID,
		&contract.GuildID,
		&contract.InitiatorID,
		&contract.OpponentID,
		&contract.Content,
		&contract.Status,
		&contract.CreatedAt,
		&contract.AcceptedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest accepted contract between %d and %d: %w", userA, userB, err)
	}

	return &contract, nil
}
