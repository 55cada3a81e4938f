package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBuyCustomID(t *testing.T) {
	t.Run("plain label", func(t *testing.T) {
		price, label, err := parseBuyCustomID("svc_buy_1500_coaching")
		require.NoError(t, err)
		assert.Equal(t, int64(1500), price)
		assert.Equal(t, "coaching", label)
	})

	t.Run("label containing underscores", func(t *testing.T) {
		price, label, err := parseBuyCustomID("svc_buy_300_replay_review_60m")
		require.NoError(t, err)
		assert.Equal(t, int64(300), price)
		assert.Equal(t, "replay_review_60m", label)
	})

	t.Run("japanese label", func(t *testing.T) {
		_, label, err := parseBuyCustomID("svc_buy_500_コーチング")
		require.NoError(t, err)
		assert.Equal(t, "コーチング", label)
	})

	t.Run("malformed ids", func(t *testing.T) {
		for _, id := range []string{
			"svc_buy_1500",
			"svc_buy__coaching",
			"svc_buy_-5_coaching",
			"svc_buy_0_coaching",
			"svc_buy_abc_coaching",
			"svc_buy_1500_",
			"wager_accept_3",
			"",
		} {
			_, _, err := parseBuyCustomID(id)
			assert.Error(t, err, "id %q", id)
		}
	})
}

func TestHandlesInteraction(t *testing.T) {
	assert.True(t, HandlesInteraction("svc_buy_100_x"))
	assert.False(t, HandlesInteraction("contract_accept_1"))
}
