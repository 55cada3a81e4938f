package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"yenbot/database"
	"yenbot/models"
)

// BoardRepository implements the service.BoardRepository interface
type BoardRepository struct {
	q queryable
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(db *database.DB) *BoardRepository {
	return &BoardRepository{q: db.Pool}
}

// newBoardRepositoryWithTx creates a new board repository bound to a transaction
func newBoardRepositoryWithTx(tx queryable) *BoardRepository {
	return &BoardRepository{q: tx}
}

// Get retrieves the board record for a (guild, channel, kind), nil if absent
func (r *BoardRepository) Get(ctx context.Context, guildID, channelID int64, kind models.BoardKind) (*models.Board, error) {
	query := `
		SELECT guild_id, channel_id, kind, message_id
		FROM boards
		WHERE guild_id = $1 AND channel_id = $2 AND kind = $3
	`

	var board models.Board
	err := r.q.QueryRow(ctx, query, guildID, channelID, kind).Scan(
		&board.GuildID,
		&board.ChannelID,
		&board.Kind,
		&board.MessageID,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s board for guild %d channel %d: %w", kind, guildID, channelID, err)
	}

	return &board, nil
}

// Upsert inserts or replaces the board record
func (r *BoardRepository) Upsert(ctx context.Context, board *models.Board) error {
	query := `
		INSERT INTO boards (guild_id, channel_id, kind, message_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, channel_id, kind)
		DO UPDATE SET message_id = EXCLUDED.message_id
	`

	_, err := r.q.Exec(ctx, query, board.GuildID, board.ChannelID, board.Kind, board.MessageID)
	if err != nil {
		return fmt.Errorf("failed to upsert %s board for guild %d: %w", board.Kind, board.GuildID, err)
	}

	return nil
}
