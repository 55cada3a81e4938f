package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yenbot/repository/testutil"
	"yenbot/service"
)

func TestBalanceRepository_GetOrCreate(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates row at zero on first sight", func(t *testing.T) {
		balance, err := repo.GetOrCreate(ctx, 1000, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance.Balance)
		assert.Equal(t, int64(1000), balance.GuildID)
	})

	t.Run("returns existing row unchanged", func(t *testing.T) {
		testutil.SeedBalance(t, testDB.DB, 1000, 200, 5000)

		balance, err := repo.GetOrCreate(ctx, 1000, 200)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), balance.Balance)
	})

	t.Run("same user in different guilds is independent", func(t *testing.T) {
		testutil.SeedBalance(t, testDB.DB, 1000, 300, 700)

		balance, err := repo.GetOrCreate(ctx, 2000, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance.Balance)
	})
}

func TestBalanceRepository_AddAndDeduct(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	t.Run("add creates the row when absent", func(t *testing.T) {
		newBalance, err := repo.Add(ctx, 1000, 100, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(300), newBalance)
	})

	t.Run("add accepts negative deltas past zero", func(t *testing.T) {
		testutil.SeedBalance(t, testDB.DB, 1000, 200, 100)

		newBalance, err := repo.Add(ctx, 1000, 200, -500)
		require.NoError(t, err)
		assert.Equal(t, int64(-400), newBalance)
	})

	t.Run("deduct fails below balance without changing the row", func(t *testing.T) {
		testutil.SeedBalance(t, testDB.DB, 1000, 300, 100)

		err := repo.Deduct(ctx, 1000, 300, 150)
		assert.ErrorIs(t, err, service.ErrInsufficientFunds)

		balance, err := repo.Get(ctx, 1000, 300)
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance.Balance)
	})

	t.Run("deduct down to exactly zero succeeds", func(t *testing.T) {
		testutil.SeedBalance(t, testDB.DB, 1000, 400, 100)

		err := repo.Deduct(ctx, 1000, 400, 100)
		require.NoError(t, err)

		balance, err := repo.Get(ctx, 1000, 400)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance.Balance)
	})
}

func TestBalanceRepository_ConcurrentDeduct(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceRepository(testDB.DB)
	ctx := context.Background()

	// Balance covers exactly one of the two concurrent debits
	testutil.SeedBalance(t, testDB.DB, 1000, 100, 100)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Deduct(ctx, 1000, 100, 100)
		}(i)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, service.ErrInsufficientFunds)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two debits must lose")

	balance, err := repo.Get(ctx, 1000, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance.Balance)
}
