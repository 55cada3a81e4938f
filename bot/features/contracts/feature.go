package contracts

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"yenbot/service"
)

// Feature carries the contract lifecycle commands and buttons: propose with
// accept/decline, then close via submit-result and counter-party approval.
type Feature struct {
	contractService service.ContractService
	sessions        *approvalSessionStore
	proposalTimeout time.Duration
	approvalTimeout time.Duration
}

func New(contractService service.ContractService, proposalTimeout, approvalTimeout time.Duration) *Feature {
	return &Feature{
		contractService: contractService,
		sessions:        newApprovalSessionStore(),
		proposalTimeout: proposalTimeout,
		approvalTimeout: approvalTimeout,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "propose":
		f.handlePropose(s, i)
	case "close":
		f.handleClose(s, i)
	}
}

// HandlesInteraction reports whether the custom ID belongs to this feature
func HandlesInteraction(customID string) bool {
	return strings.HasPrefix(customID, "contract_")
}

func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	switch {
	case strings.HasPrefix(customID, "contract_accept_"):
		f.handleResponse(s, i, true)
	case strings.HasPrefix(customID, "contract_decline_"):
		f.handleResponse(s, i, false)
	case strings.HasPrefix(customID, "contract_approve_"):
		f.handleApprove(s, i)
	}
}

// StartSessionCleanup periodically drops expired approval sessions. Blocks
// until the ticker stops, so run it on its own goroutine.
func (f *Feature) StartSessionCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		f.sessions.cleanup()
	}
}
