package transfer

import (
	"github.com/bwmarrin/discordgo"

	"yenbot/service"
)

type Feature struct {
	transferService service.TransferService
	currencyName    string
}

func New(transferService service.TransferService, currencyName string) *Feature {
	return &Feature{
		transferService: transferService,
		currencyName:    currencyName,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleSend(s, i)
}
