package admin

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/common"
)

// deltaPattern matches the adjustment syntax: an explicit sign followed by
// digits, e.g. "+500" or "-1200"
var deltaPattern = regexp.MustCompile(`^([+-])(\d+)$`)

// ParseDelta parses the signed delta syntax used by the adjust command
func ParseDelta(input string) (int64, error) {
	m := deltaPattern.FindStringSubmatch(input)
	if m == nil {
		return 0, fmt.Errorf("delta must look like +100 or -100, got %q", input)
	}

	value, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("delta out of range: %q", input)
	}
	if value == 0 {
		return 0, fmt.Errorf("delta cannot be zero")
	}

	if m[1] == "-" {
		return -value, nil
	}
	return value, nil
}

func (f *Feature) handleAdjust(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !common.MemberHasRole(i, f.adjustRoleID) {
		common.RespondWithError(s, i, "このコマンドを使う権限がありません。 / You are not allowed to use this command.")
		return
	}

	var targetUser *discordgo.User
	var deltaStr string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetUser = opt.UserValue(s)
		case "delta":
			deltaStr = opt.StringValue()
		}
	}

	if targetUser == nil {
		common.RespondWithError(s, i, "対象ユーザーを指定してください。 / Please specify a user.")
		return
	}
	if targetUser.Bot {
		common.RespondWithError(s, i, "Botの残高は調整できません。 / You cannot adjust a bot's balance.")
		return
	}

	delta, err := ParseDelta(deltaStr)
	if err != nil {
		common.RespondWithError(s, i, "増減は +100 または -100 の形式で指定してください。 / Use +100 or -100 form for the delta.")
		return
	}

	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	targetID, err := common.ParseSnowflake(targetUser.ID)
	if err != nil {
		common.RespondWithError(s, i, "対象ユーザーが不正です。 / Invalid target user.")
		return
	}

	newBalance, err := f.transferService.Adjust(ctx, guildID, targetID, delta)
	if err != nil {
		log.Errorf("Error adjusting balance of user %d in guild %d by %d: %v", targetID, guildID, delta, err)
		common.RespondWithError(s, i, "残高の調整に失敗しました。 / Failed to adjust the balance.")
		return
	}

	message := fmt.Sprintf("%s の残高を **%+d** 調整しました。新しい残高: **%s** / Adjusted by **%+d**, new balance: **%s**",
		common.Mention(targetID), delta, common.FormatAmount(newBalance, f.currencyName),
		delta, common.FormatAmount(newBalance, f.currencyName))
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to adjust command: %v", err)
	}
}

func (f *Feature) handleTicketAdjust(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !common.MemberHasRole(i, f.adjustRoleID) {
		common.RespondWithError(s, i, "このコマンドを使う権限がありません。 / You are not allowed to use this command.")
		return
	}

	var targetUser *discordgo.User
	var label string
	var count int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "user":
			targetUser = opt.UserValue(s)
		case "label":
			label = opt.StringValue()
		case "count":
			count = opt.IntValue()
		}
	}

	if targetUser == nil || label == "" {
		common.RespondWithError(s, i, "対象ユーザーとチケット名を指定してください。 / Please specify a user and a ticket label.")
		return
	}
	if count <= 0 || count > f.maxTicketDecrease {
		common.RespondWithError(s, i, fmt.Sprintf("枚数は1〜%dで指定してください。 / Count must be between 1 and %d.", f.maxTicketDecrease, f.maxTicketDecrease))
		return
	}

	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	targetID, err := common.ParseSnowflake(targetUser.ID)
	if err != nil {
		common.RespondWithError(s, i, "対象ユーザーが不正です。 / Invalid target user.")
		return
	}

	result, err := f.transferService.DecreaseTickets(ctx, guildID, targetID, label, count)
	if err != nil {
		log.Errorf("Error decreasing tickets %q of user %d in guild %d: %v", label, targetID, guildID, err)
		common.RespondWithError(s, i, "チケットの消化に失敗しました。 / Failed to decrease the tickets.")
		return
	}

	message := fmt.Sprintf("%s の「%s」チケットを消化しました: %d → %d / Consumed %q tickets: %d → %d",
		common.Mention(targetID), result.Label, result.Before, result.After,
		result.Label, result.Before, result.After)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to ticket-adjust command: %v", err)
	}
}
