package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot"
	"yenbot/config"
	"yenbot/database"
	"yenbot/events"
	"yenbot/repository"
	"yenbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting yenbot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	scheduler := service.NewAgreementScheduler()

	// The messenger wraps the session before it opens; the board service
	// only uses it once events start flowing
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	messenger := bot.NewMessenger(session)

	ledgerService := service.NewLedgerService(uowFactory)
	transferService := service.NewTransferService(uowFactory, cfg.MaxTransferAmount)
	contractService := service.NewContractService(uowFactory, scheduler, cfg.ContractTimeout)
	boardService := service.NewBoardService(uowFactory, messenger, cfg.TicketBoardChannelID, cfg.ResultBoardChannelID)

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		GuildIDs:           cfg.GuildIDs,
		CurrencyName:       cfg.CurrencyName,
		BalanceAuditRoleID: cfg.BalanceAuditRoleID,
		AdjustRoleID:       cfg.AdjustRoleID,
		MaxTicketDecrease:  cfg.MaxTicketDecrease,
		ContractTimeout:    cfg.ContractTimeout,
		ApprovalTimeout:    cfg.ApprovalTimeout,
	}
	discordBot, err := bot.New(botConfig, session, ledgerService, transferService, contractService, boardService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.Infof("Bot is running in %s mode", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	scheduler.Stop()

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
