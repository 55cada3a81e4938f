package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/common"
	"yenbot/service"
)

// maxPanelItems is how many (label, price) pairs a single panel can carry
const maxPanelItems = 6

// buttonsPerRow keeps the panel readable; Discord caps a row at five
const buttonsPerRow = 3

func (f *Feature) handleServiceCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.MemberHasRole(i, f.adjustRoleID) {
		common.RespondWithError(s, i, "このコマンドを使う権限がありません。 / You are not allowed to use this command.")
		return
	}

	var title string
	labels := make(map[int]string)
	prices := make(map[int]int64)
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "title" {
			title = opt.StringValue()
			continue
		}
		for n := 1; n <= maxPanelItems; n++ {
			switch opt.Name {
			case fmt.Sprintf("label%d", n):
				labels[n] = opt.StringValue()
			case fmt.Sprintf("price%d", n):
				prices[n] = opt.IntValue()
			}
		}
	}

	var buttons []discordgo.MessageComponent
	for n := 1; n <= maxPanelItems; n++ {
		label, ok := labels[n]
		if !ok {
			continue
		}
		price := prices[n]
		if label == "" || price <= 0 {
			common.RespondWithError(s, i, fmt.Sprintf("項目%dのラベルと価格を確認してください。 / Check label and price of item %d.", n, n))
			return
		}
		if strings.ContainsAny(label, "\n") {
			common.RespondWithError(s, i, "ラベルに改行は使えません。 / Labels cannot contain line breaks.")
			return
		}
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("%s (%s)", label, common.FormatAmount(price, f.currencyName)),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("svc_buy_%d_%s", price, label),
		})
	}

	if len(buttons) == 0 {
		common.RespondWithError(s, i, "少なくとも1つの項目を指定してください。 / Specify at least one item.")
		return
	}

	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := start + buttonsPerRow
		if end > len(buttons) {
			end = len(buttons)
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons[start:end]})
	}

	content := "🎫 サービスチケット購入 / Buy a service ticket"
	if title != "" {
		content = fmt.Sprintf("🎫 **%s**\nボタンを押すとチケットを購入します。 / Press a button to buy a ticket.", title)
	}

	if err := common.RespondWithComponents(s, i, content, rows); err != nil {
		log.Errorf("Error posting service panel: %v", err)
	}
}

// parseBuyCustomID splits "svc_buy_<price>_<label>". The label itself may
// contain underscores, so only the first three separators are structural.
func parseBuyCustomID(customID string) (price int64, label string, err error) {
	parts := strings.SplitN(customID, "_", 4)
	if len(parts) != 4 || parts[0] != "svc" || parts[1] != "buy" {
		return 0, "", fmt.Errorf("malformed purchase custom id %q", customID)
	}
	price, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || price <= 0 {
		return 0, "", fmt.Errorf("malformed price in custom id %q", customID)
	}
	if parts[3] == "" {
		return 0, "", fmt.Errorf("empty label in custom id %q", customID)
	}
	return price, parts[3], nil
}

func (f *Feature) handleBuyButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	price, label, err := parseBuyCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Errorf("Error parsing purchase custom id: %v", err)
		common.RespondWithError(s, i, "このボタンは処理できませんでした。 / Unable to process this button.")
		return
	}

	guildID, buyerID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	count, err := f.transferService.PurchaseTicket(ctx, guildID, buyerID, label, price)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientFunds) {
			common.RespondWithError(s, i, fmt.Sprintf("残高が足りません（%s）。 / Insufficient funds (%s).",
				common.FormatAmount(price, f.currencyName), common.FormatAmount(price, f.currencyName)))
			return
		}
		log.Errorf("Error purchasing ticket %q for user %d in guild %d: %v", label, buyerID, guildID, err)
		common.RespondWithError(s, i, "購入に失敗しました。 / Purchase failed.")
		return
	}

	message := fmt.Sprintf("「%s」チケットを購入しました（%s）。保有数: %d / Bought a %q ticket (%s). You now hold %d.",
		label, common.FormatAmount(price, f.currencyName), count,
		label, common.FormatAmount(price, f.currencyName), count)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to purchase: %v", err)
	}
}
