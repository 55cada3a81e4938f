package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0円"},
		{100, "100円"},
		{1500, "1,500円"},
		{10000000, "10,000,000円"},
		{-400, "-400円"},
		{-1234567, "-1,234,567円"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.amount, "円"), "amount %d", tt.amount)
	}
}

func TestMention(t *testing.T) {
	assert.Equal(t, "<@123456789>", Mention(123456789))
}
