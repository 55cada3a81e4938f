package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yenbot/repository/testutil"
)

func TestTicketRepository_Counts(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	t.Run("count is zero when no row exists", func(t *testing.T) {
		count, err := repo.GetCount(ctx, 1000, 100, "coaching")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("add creates and increments", func(t *testing.T) {
		count, err := repo.Add(ctx, 1000, 200, "coaching", 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.Add(ctx, 1000, 200, "coaching", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("set overwrites the count", func(t *testing.T) {
		testutil.SeedTicket(t, testDB.DB, 1000, 300, "review", 5)

		count, err := repo.Set(ctx, 1000, 300, "review", 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestTicketRepository_ListByGuild(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewTicketRepository(testDB.DB)
	ctx := context.Background()

	testutil.SeedTicket(t, testDB.DB, 1000, 200, "review", 1)
	testutil.SeedTicket(t, testDB.DB, 1000, 100, "review", 3)
	testutil.SeedTicket(t, testDB.DB, 1000, 100, "coaching", 2)
	testutil.SeedTicket(t, testDB.DB, 1000, 300, "spent", 0)
	testutil.SeedTicket(t, testDB.DB, 2000, 100, "other guild", 4)

	tickets, err := repo.ListByGuild(ctx, 1000)
	require.NoError(t, err)
	require.Len(t, tickets, 3, "zero-count rows and other guilds are excluded")

	// Ordered by user then label
	assert.Equal(t, "coaching", tickets[0].Label)
	assert.Equal(t, int64(100), tickets[0].UserID)
	assert.Equal(t, "review", tickets[1].Label)
	assert.Equal(t, int64(200), tickets[2].UserID)
}
