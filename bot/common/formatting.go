package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatAmount formats a currency amount with thousand separators and the
// configured currency label, e.g. "1,500円"
func FormatAmount(amount int64, currency string) string {
	return formatThousands(amount) + currency
}

func formatThousands(amount int64) string {
	str := fmt.Sprintf("%d", amount)

	negative := strings.HasPrefix(str, "-")
	if negative {
		str = str[1:]
	}

	n := len(str)
	if n > 3 {
		var b strings.Builder
		for i, digit := range str {
			if i > 0 && (n-i)%3 == 0 {
				b.WriteRune(',')
			}
			b.WriteRune(digit)
		}
		str = b.String()
	}

	if negative {
		return "-" + str
	}
	return str
}

// Mention renders a user mention from an int64 Discord ID
func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays
// in the reader's local timezone. "R" renders a relative time.
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
