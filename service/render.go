package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"yenbot/models"
)

// boardContentLimit is the maximum length of a board message, in runes
const boardContentLimit = 4000

const (
	ticketBoardTitle = "🎟️ サービスチケット掲示板（自動更新） / Ticket Board (auto-update)"
	resultBoardTitle = "⚔️ 勝負結果掲示板（自動更新） / Result Board (auto-update)"

	boardPlaceholder = "ここに内容が自動更新されます。\nThis message is automatically updated."
	emptyTicketBoard = "まだチケットの購入はありません。\nNo purchases yet."
)

var jst = time.FixedZone("JST", 9*60*60)

// RenderTicketBoard produces the ticket board content: one line per non-zero
// holding, ordered by user then label, truncated to the message limit with
// leading content preserved.
func RenderTicketBoard(tickets []*models.Ticket) string {
	if len(tickets) == 0 {
		return ticketBoardTitle + "\n\n" + emptyTicketBoard
	}

	sorted := make([]*models.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].UserID != sorted[j].UserID {
			return sorted[i].UserID < sorted[j].UserID
		}
		return sorted[i].Label < sorted[j].Label
	})

	var b strings.Builder
	b.WriteString(ticketBoardTitle)
	b.WriteString("\n")
	for _, t := range sorted {
		b.WriteString(fmt.Sprintf("\n<@%d> | %s | %d", t.UserID, t.Label, t.Count))
	}

	return truncateRunes(b.String(), boardContentLimit)
}

// PrependResultLine stacks a new result line on top of the previous board
// content, newest first, truncated to the message limit with the newest lines
// preserved over the oldest.
func PrependResultLine(previous, line string) string {
	combined := strings.TrimSpace(line + "\n" + previous)
	return truncateRunes(combined, boardContentLimit)
}

// FormatResultLine renders a closed contract's board line. The winner symbol
// follows the result declared by the submitter: win marks the submitter with
// the trophy, lose marks them with the flag.
func FormatResultLine(closedAt time.Time, submitterID, opponentID int64, result models.ContractResult, content string) string {
	symbol := "🏆"
	outcome := "勝利 / WIN"
	if result == models.ContractResultLose {
		symbol = "⚑"
		outcome = "敗北 / LOSE"
	}

	ts := closedAt.In(jst).Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s — <@%d> vs <@%d> → <@%d> %s %s\n内容 / Content: %s",
		ts, submitterID, opponentID, submitterID, outcome, symbol, content)
}

// truncateRunes cuts s to at most limit runes. Counted in runes, not bytes,
// to match the platform's character limit.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
