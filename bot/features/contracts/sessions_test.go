package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yenbot/models"
)

func TestApprovalSessionStore_TakeWithinWindow(t *testing.T) {
	store := newApprovalSessionStore()
	store.open(1, 100, time.Minute)

	session, ok := store.take(1)
	require.True(t, ok)
	assert.Equal(t, int64(100), session.submitterID)

	// Consumed on take
	_, ok = store.take(1)
	assert.False(t, ok)
}

func TestApprovalSessionStore_ExpiredSessionRejected(t *testing.T) {
	store := newApprovalSessionStore()
	store.open(1, 100, -time.Second)

	_, ok := store.take(1)
	assert.False(t, ok)
	assert.Equal(t, 0, store.size())
}

func TestApprovalSessionStore_OpenReplacesPrevious(t *testing.T) {
	store := newApprovalSessionStore()
	store.open(1, 100, time.Minute)
	store.open(1, 200, time.Minute)

	session, ok := store.take(1)
	require.True(t, ok)
	assert.Equal(t, int64(200), session.submitterID)
}

func TestApprovalSessionStore_Cleanup(t *testing.T) {
	store := newApprovalSessionStore()
	store.open(1, 100, -time.Second)
	store.open(2, 200, time.Minute)

	store.cleanup()
	assert.Equal(t, 1, store.size())

	_, ok := store.take(2)
	assert.True(t, ok)
}

func TestParseApproveCustomID(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		contractID, submitterID, result, err := parseApproveCustomID("contract_approve_42_100_win")
		require.NoError(t, err)
		assert.Equal(t, int64(42), contractID)
		assert.Equal(t, int64(100), submitterID)
		assert.Equal(t, models.ContractResultWin, result)
	})

	t.Run("lose result", func(t *testing.T) {
		_, _, result, err := parseApproveCustomID("contract_approve_42_100_lose")
		require.NoError(t, err)
		assert.Equal(t, models.ContractResultLose, result)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, id := range []string{
			"contract_approve_42_100",
			"contract_approve_42_100_draw",
			"contract_approve_x_100_win",
			"contract_approve_42_y_win",
			"contract_accept_42",
			"",
		} {
			_, _, _, err := parseApproveCustomID(id)
			assert.Error(t, err, "id %q", id)
		}
	})
}
