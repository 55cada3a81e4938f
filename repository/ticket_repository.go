package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yenbot/database"
	"yenbot/models"
)

// TicketRepository implements the service.TicketRepository interface
type TicketRepository struct {
	q queryable
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{q: db.Pool}
}

// newTicketRepositoryWithTx creates a new ticket repository bound to a transaction
func newTicketRepositoryWithTx(tx queryable) *TicketRepository {
	return &TicketRepository{q: tx}
}

// GetCount returns the ticket count for a label, 0 if no row exists
func (r *TicketRepository) GetCount(ctx context.Context, guildID, userID int64, label string) (int64, error) {
	query := `
		SELECT count
		FROM tickets
		WHERE guild_id = $1 AND user_id = $2 AND label = $3
	`

	var count int64
	err := r.q.QueryRow(ctx, query, guildID, userID, label).Scan(&count)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get ticket count for user %d label %q: %w", userID, label, err)
	}

	return count, nil
}

// Add increments the count by n, creating the row if absent; returns the new count
func (r *TicketRepository) Add(ctx context.Context, guildID, userID int64, label string, n int64) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("grant count must be positive")
	}

	query := `
		INSERT INTO tickets (guild_id, user_id, label, count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, user_id, label)
		DO UPDATE SET count = tickets.count + EXCLUDED.count
		RETURNING count
	`

	var count int64
	err := r.q.QueryRow(ctx, query, guildID, userID, label, n).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to add %d tickets for user %d label %q: %w", n, userID, label, err)
	}

	return count, nil
}

// Set sets the count to an explicit non-negative value; returns the new count
func (r *TicketRepository) Set(ctx context.Context, guildID, userID int64, label string, count int64) (int64, error) {
	if count < 0 {
		return 0, fmt.Errorf("ticket count cannot be negative")
	}

	query := `
		INSERT INTO tickets (guild_id, user_id, label, count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, user_id, label)
		DO UPDATE SET count = EXCLUDED.count
		RETURNING count
	`

	var newCount int64
	err := r.q.QueryRow(ctx, query, guildID, userID, label, count).Scan(&newCount)
	if err != nil {
		return 0, fmt.Errorf("failed to set ticket count for user %d label %q: %w", userID, label, err)
	}

	return newCount, nil
}

// ListByGuild returns all non-zero holdings for a guild ordered by user then label
func (r *TicketRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.Ticket, error) {
	query := `
		SELECT guild_id, user_id, label, count
		FROM tickets
		WHERE guild_id = $1 AND count > 0
		ORDER BY user_id, label
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		var ticket models.Ticket
		err := rows.Scan(
			&ticket.GuildID,
			&ticket.UserID,
			&ticket.Label,
			&ticket.Count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, nil
}
