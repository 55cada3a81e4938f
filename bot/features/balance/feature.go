package balance

import (
	"github.com/bwmarrin/discordgo"

	"yenbot/service"
)

type Feature struct {
	ledgerService service.LedgerService
	currencyName  string
	auditRoleID   int64
}

func New(ledgerService service.LedgerService, currencyName string, auditRoleID int64) *Feature {
	return &Feature{
		ledgerService: ledgerService,
		currencyName:  currencyName,
		auditRoleID:   auditRoleID,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}
