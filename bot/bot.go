package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/features/admin"
	"yenbot/bot/features/balance"
	"yenbot/bot/features/boards"
	"yenbot/bot/features/contracts"
	"yenbot/bot/features/services"
	"yenbot/bot/features/transfer"
	"yenbot/events"
	"yenbot/service"
)

// Config holds bot configuration
type Config struct {
	GuildIDs           []int64
	CurrencyName       string
	BalanceAuditRoleID int64
	AdjustRoleID       int64
	MaxTicketDecrease  int64
	ContractTimeout    time.Duration
	ApprovalTimeout    time.Duration
}

type Bot struct {
	config  Config
	session *discordgo.Session

	balanceFeature  *balance.Feature
	transferFeature *transfer.Feature
	adminFeature    *admin.Feature
	serviceFeature  *services.Feature
	contractFeature *contracts.Feature
	boardFeature    *boards.Feature
}

// New wires the features onto an already-created session, opens the gateway
// connection and registers the slash commands.
func New(
	config Config,
	session *discordgo.Session,
	ledgerService service.LedgerService,
	transferService service.TransferService,
	contractService service.ContractService,
	boardService service.BoardService,
	eventBus *events.Bus,
) (*Bot, error) {
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:          config,
		session:         session,
		balanceFeature:  balance.New(ledgerService, config.CurrencyName, config.BalanceAuditRoleID),
		transferFeature: transfer.New(transferService, config.CurrencyName),
		adminFeature:    admin.New(transferService, config.CurrencyName, config.AdjustRoleID, config.MaxTicketDecrease),
		serviceFeature:  services.New(transferService, config.CurrencyName, config.AdjustRoleID),
		contractFeature: contracts.New(contractService, config.ContractTimeout, config.ApprovalTimeout),
		boardFeature:    boards.New(boardService, config.AdjustRoleID),
	}

	bot.boardFeature.SubscribeEvents(eventBus)

	session.AddHandler(bot.handleCommands)
	session.AddHandler(bot.handleComponentInteractions)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		session.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Expired approval sessions are dropped lazily on press too; the sweep
	// just keeps the store from accumulating abandoned ones
	go bot.contractFeature.StartSessionCleanup(10 * time.Minute)

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to their feature
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log.WithFields(log.Fields{
		"command": name,
		"guildID": i.GuildID,
	}).Debug("Handling slash command")

	switch name {
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "send":
		b.transferFeature.HandleCommand(s, i)
	case "adjust":
		b.adminFeature.HandleAdjust(s, i)
	case "ticket-adjust":
		b.adminFeature.HandleTicketAdjust(s, i)
	case "service-create":
		b.serviceFeature.HandleCommand(s, i)
	case "contract":
		b.contractFeature.HandleCommand(s, i)
	case "board":
		b.boardFeature.HandleCommand(s, i)
	}
}

// handleComponentInteractions routes button presses by custom ID prefix
func (b *Bot) handleComponentInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID
	switch {
	case services.HandlesInteraction(customID):
		b.serviceFeature.HandleInteraction(s, i)
	case contracts.HandlesInteraction(customID):
		b.contractFeature.HandleInteraction(s, i)
	}
}
