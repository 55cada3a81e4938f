package admin

import (
	"github.com/bwmarrin/discordgo"

	"yenbot/service"
)

// Feature carries the role-gated administrative commands: balance adjustment
// and ticket count decrease.
type Feature struct {
	transferService   service.TransferService
	currencyName      string
	adjustRoleID      int64
	maxTicketDecrease int64
}

func New(transferService service.TransferService, currencyName string, adjustRoleID, maxTicketDecrease int64) *Feature {
	return &Feature{
		transferService:   transferService,
		currencyName:      currencyName,
		adjustRoleID:      adjustRoleID,
		maxTicketDecrease: maxTicketDecrease,
	}
}

func (f *Feature) HandleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleAdjust(s, i)
}

func (f *Feature) HandleTicketAdjust(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleTicketAdjust(s, i)
}
