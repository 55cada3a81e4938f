package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildIDs     []int64

	// Database configuration
	DatabaseURL string

	// Currency display label, e.g. "円"
	CurrencyName string

	// Role IDs gating elevated operations (0 disables the operation)
	BalanceAuditRoleID int64 // May view other users' balances
	AdjustRoleID       int64 // May adjust balances and ticket counts

	// Fixed board channels (0 disables the board, refreshes become no-ops)
	TicketBoardChannelID int64
	ResultBoardChannelID int64

	// Operation bounds
	MaxTransferAmount int64 // Upper limit per single transfer
	MaxTicketDecrease int64 // Upper limit per administrative ticket decrease

	// Contract timing
	ContractTimeout time.Duration // Pending proposal decline delay
	ApprovalTimeout time.Duration // Result approval window

	// Environment: "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		CurrencyName: "円",

		BalanceAuditRoleID:   envInt64("BALANCE_AUDIT_ROLE_ID"),
		AdjustRoleID:         envInt64("ADJUST_ROLE_ID"),
		TicketBoardChannelID: envInt64("TICKET_BOARD_CHANNEL_ID"),
		ResultBoardChannelID: envInt64("RESULT_BOARD_CHANNEL_ID"),

		// Defaults
		MaxTransferAmount: 10_000_000,
		MaxTicketDecrease: 10_000,
		ContractTimeout:   305 * time.Second, // 5 minutes plus grace
		ApprovalTimeout:   300 * time.Second,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if name := os.Getenv("CURRENCY_NAME"); name != "" {
		config.CurrencyName = name
	}
	if v := envInt64("MAX_TRANSFER_AMOUNT"); v > 0 {
		config.MaxTransferAmount = v
	}
	if v := envInt64("MAX_TICKET_DECREASE"); v > 0 {
		config.MaxTicketDecrease = v
	}
	if v := envInt64("CONTRACT_TIMEOUT_SECONDS"); v > 0 {
		config.ContractTimeout = time.Duration(v) * time.Second
	}
	if v := envInt64("APPROVAL_TIMEOUT_SECONDS"); v > 0 {
		config.ApprovalTimeout = time.Duration(v) * time.Second
	}

	// Parse guild IDs
	if guildIDs := os.Getenv("GUILD_IDS"); guildIDs != "" {
		for _, idStr := range strings.Split(guildIDs, ",") {
			idStr = strings.TrimSpace(idStr)
			if idStr == "" {
				continue
			}
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
				config.GuildIDs = append(config.GuildIDs, id)
			}
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

func envInt64(key string) int64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
