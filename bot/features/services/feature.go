package services

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"yenbot/service"
)

// Feature carries the ticket purchase panels: an admin posts a panel of
// priced buttons, and a button press buys one ticket of that label.
type Feature struct {
	transferService service.TransferService
	currencyName    string
	adjustRoleID    int64
}

func New(transferService service.TransferService, currencyName string, adjustRoleID int64) *Feature {
	return &Feature{
		transferService: transferService,
		currencyName:    currencyName,
		adjustRoleID:    adjustRoleID,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleServiceCreate(s, i)
}

// HandlesInteraction reports whether the custom ID belongs to this feature
func HandlesInteraction(customID string) bool {
	return strings.HasPrefix(customID, "svc_buy_")
}

func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBuyButton(s, i)
}
