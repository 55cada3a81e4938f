package models

// BoardKind identifies which auto-updating board a record belongs to
type BoardKind string

const (
	BoardKindTicket BoardKind = "ticket"
	BoardKindResult BoardKind = "contract_result"
)

// Board points at the single live message mirroring derived state for a
// (guild, channel, kind). If the referenced message is deleted externally,
// the projection recreates it and updates this pointer.
type Board struct {
	GuildID   int64     `db:"guild_id"`
	ChannelID int64     `db:"channel_id"`
	Kind      BoardKind `db:"kind"`
	MessageID int64     `db:"message_id"`
}
