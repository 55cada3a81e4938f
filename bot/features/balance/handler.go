package balance

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/common"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	guildID, callerID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	targetID := callerID
	var targetUser *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			targetUser = opt.UserValue(s)
		}
	}

	if targetUser != nil {
		targetID, err = common.ParseSnowflake(targetUser.ID)
		if err != nil {
			common.RespondWithError(s, i, "対象ユーザーが不正です。 / Invalid target user.")
			return
		}
	}

	// Other users' balances are visible only to the audit role
	if targetID != callerID && !common.MemberHasRole(i, f.auditRoleID) {
		common.RespondWithError(s, i, "他の人の残高を見る権限がありません。 / You are not allowed to view other members' balances.")
		return
	}

	amount, err := f.ledgerService.GetBalance(ctx, guildID, targetID)
	if err != nil {
		log.Errorf("Error getting balance for user %d in guild %d: %v", targetID, guildID, err)
		common.RespondWithError(s, i, "残高の取得に失敗しました。 / Failed to look up the balance.")
		return
	}

	var message string
	if targetID == callerID {
		message = fmt.Sprintf("現在の残高: **%s** / Your balance: **%s**",
			common.FormatAmount(amount, f.currencyName), common.FormatAmount(amount, f.currencyName))
	} else {
		message = fmt.Sprintf("%s の残高: **%s** / Balance of %s: **%s**",
			common.Mention(targetID), common.FormatAmount(amount, f.currencyName),
			common.Mention(targetID), common.FormatAmount(amount, f.currencyName))
	}

	if err := common.RespondEphemeral(s, i, message); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}
