package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/common"
	"yenbot/service"
)

func (f *Feature) handleSend(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var amount int64
	var recipientUser *discordgo.User
	var note string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "user":
			recipientUser = opt.UserValue(s)
		case "note":
			note = opt.StringValue()
		}
	}

	if recipientUser == nil {
		common.RespondWithError(s, i, "送金先を指定してください。 / Please specify a recipient.")
		return
	}
	if recipientUser.Bot {
		common.RespondWithError(s, i, "Botには送金できません。 / You cannot send to a bot.")
		return
	}
	if amount <= 0 {
		common.RespondWithError(s, i, "金額は正の数で指定してください。 / Amount must be positive.")
		return
	}

	guildID, fromUserID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	toUserID, err := common.ParseSnowflake(recipientUser.ID)
	if err != nil {
		common.RespondWithError(s, i, "送金先ユーザーが不正です。 / Invalid recipient user.")
		return
	}

	result, err := f.transferService.Transfer(ctx, guildID, fromUserID, toUserID, amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			common.RespondWithError(s, i, "残高が足りません。 / Insufficient funds.")
		case errors.Is(err, service.ErrInvalidTarget):
			common.RespondWithError(s, i, "自分への送金はできません。 / You cannot send to yourself.")
		default:
			log.Errorf("Error transferring %d from %d to %d in guild %d: %v", amount, fromUserID, toUserID, guildID, err)
			common.RespondWithError(s, i, "送金に失敗しました。 / Transfer failed.")
		}
		return
	}

	message := fmt.Sprintf("%s に **%s** を送りました。 / Sent **%s** to %s.",
		common.Mention(toUserID), common.FormatAmount(result.Amount, f.currencyName),
		common.FormatAmount(result.Amount, f.currencyName), common.Mention(toUserID))
	if note != "" {
		message += fmt.Sprintf("\nメモ / Note: %s", note)
	}
	message += fmt.Sprintf("\n残高 / Balance: **%s**", common.FormatAmount(result.SenderBalance, f.currencyName))

	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to send command: %v", err)
	}
}
