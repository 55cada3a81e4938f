package bot

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// registerCommands registers all slash commands with Discord. Commands are
// registered per configured guild so they appear immediately; with no guilds
// configured they register globally.
func (b *Bot) registerCommands() error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "残高を確認 / Check a balance",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "対象ユーザー（省略時は自分） / User to check (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "send",
			Description: "他のメンバーに送金 / Send currency to another member",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "送金先 / Recipient",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "金額 / Amount",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "note",
					Description: "メモ / Note",
					Required:    false,
				},
			},
		},
		{
			Name:        "adjust",
			Description: "残高を調整（管理者用） / Adjust a balance (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "対象ユーザー / Target user",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "delta",
					Description: "増減（+100 または -100） / Delta (+100 or -100)",
					Required:    true,
				},
			},
		},
		{
			Name:        "ticket-adjust",
			Description: "チケットを消化（管理者用） / Consume tickets (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "対象ユーザー / Target user",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "label",
					Description: "チケット名 / Ticket label",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "枚数 / Count",
					Required:    true,
				},
			},
		},
		{
			Name:        "service-create",
			Description: "チケット購入パネルを作成（管理者用） / Create a ticket purchase panel (admin only)",
			Options:     servicePanelOptions(),
		},
		{
			Name:        "board",
			Description: "掲示板の設置（管理者用） / Set up boards (admin only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup-ticket",
					Description: "チケット掲示板を設置 / Set up the ticket board",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setup-result",
					Description: "勝負結果掲示板を設置 / Set up the result board",
				},
			},
		},
		{
			Name:        "contract",
			Description: "勝負の提案と結果の確定 / Propose challenges and settle results",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "propose",
					Description: "勝負を申し込む / Challenge another member",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "opponent",
							Description: "相手 / Opponent",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "content",
							Description: "勝負の内容 / Terms of the challenge",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "close",
					Description: "結果を申告して確定する / Submit a result for approval",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "opponent",
							Description: "相手 / Opponent",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "result",
							Description: "自分から見た結果 / Your result",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "勝ち / win", Value: "win"},
								{Name: "負け / lose", Value: "lose"},
							},
						},
					},
				},
			},
		},
	}

	guildIDs := []string{""}
	if len(b.config.GuildIDs) > 0 {
		guildIDs = guildIDs[:0]
		for _, id := range b.config.GuildIDs {
			guildIDs = append(guildIDs, strconv.FormatInt(id, 10))
		}
	}

	for _, guildID := range guildIDs {
		for _, cmd := range commands {
			if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, guildID, cmd); err != nil {
				return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
			}
		}
	}

	return nil
}

// servicePanelOptions builds the repeated (label, price) option pairs of the
// purchase panel command. Required options must precede optional ones, so
// the first pair comes before the title.
func servicePanelOptions() []*discordgo.ApplicationCommandOption {
	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "label1",
			Description: "項目1のチケット名 / Label of item 1",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "price1",
			Description: "項目1の価格 / Price of item 1",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "title",
			Description: "パネルのタイトル / Panel title",
			Required:    false,
		},
	}

	for n := 2; n <= 6; n++ {
		options = append(options,
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        fmt.Sprintf("label%d", n),
				Description: fmt.Sprintf("項目%dのチケット名 / Label of item %d", n, n),
				Required:    false,
			},
			&discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        fmt.Sprintf("price%d", n),
				Description: fmt.Sprintf("項目%dの価格 / Price of item %d", n, n),
				Required:    false,
			},
		)
	}

	return options
}
