package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yenbot/models"
	"yenbot/repository/testutil"
)

func TestBoardRepository_Upsert(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBoardRepository(testDB.DB)
	ctx := context.Background()

	t.Run("get returns nil when no record exists", func(t *testing.T) {
		board, err := repo.Get(ctx, 1000, 500, models.BoardKindTicket)
		require.NoError(t, err)
		assert.Nil(t, board)
	})

	t.Run("upsert then get round-trips", func(t *testing.T) {
		board := &models.Board{GuildID: 1000, ChannelID: 500, Kind: models.BoardKindTicket, MessageID: 9001}
		require.NoError(t, repo.Upsert(ctx, board))

		got, err := repo.Get(ctx, 1000, 500, models.BoardKindTicket)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(9001), got.MessageID)
	})

	t.Run("upsert replaces the message pointer", func(t *testing.T) {
		board := &models.Board{GuildID: 1000, ChannelID: 500, Kind: models.BoardKindTicket, MessageID: 9002}
		require.NoError(t, repo.Upsert(ctx, board))

		got, err := repo.Get(ctx, 1000, 500, models.BoardKindTicket)
		require.NoError(t, err)
		assert.Equal(t, int64(9002), got.MessageID)
	})

	t.Run("kinds in one channel are distinct records", func(t *testing.T) {
		board := &models.Board{GuildID: 1000, ChannelID: 500, Kind: models.BoardKindResult, MessageID: 9100}
		require.NoError(t, repo.Upsert(ctx, board))

		ticket, err := repo.Get(ctx, 1000, 500, models.BoardKindTicket)
		require.NoError(t, err)
		result, err := repo.Get(ctx, 1000, 500, models.BoardKindResult)
		require.NoError(t, err)
		assert.NotEqual(t, ticket.MessageID, result.MessageID)
	})
}
