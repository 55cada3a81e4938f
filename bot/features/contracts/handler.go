package contracts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/common"
	"yenbot/models"
	"yenbot/service"
)

func (f *Feature) handlePropose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var opponentUser *discordgo.User
	var content string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "opponent":
			opponentUser = opt.UserValue(s)
		case "content":
			content = opt.StringValue()
		}
	}

	if opponentUser == nil || content == "" {
		common.RespondWithError(s, i, "相手と内容を指定してください。 / Please specify an opponent and the terms.")
		return
	}
	if opponentUser.Bot {
		common.RespondWithError(s, i, "Botとは勝負できません。 / You cannot challenge a bot.")
		return
	}

	guildID, initiatorID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	opponentID, err := common.ParseSnowflake(opponentUser.ID)
	if err != nil {
		common.RespondWithError(s, i, "相手ユーザーが不正です。 / Invalid opponent user.")
		return
	}

	contract, err := f.contractService.Propose(ctx, guildID, initiatorID, opponentID, content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTarget) {
			common.RespondWithError(s, i, "自分とは勝負できません。 / You cannot challenge yourself.")
			return
		}
		log.Errorf("Error proposing contract from %d to %d in guild %d: %v", initiatorID, opponentID, guildID, err)
		common.RespondWithError(s, i, "勝負の提案に失敗しました。 / Failed to propose the contract.")
		return
	}

	deadline := time.Now().Add(f.proposalTimeout)
	message := fmt.Sprintf("⚔️ %s が %s に勝負を申し込みました！ / %s challenged %s!\n内容 / Terms: %s\n%s までに応答がなければ自動的に不成立になります。 / Declined automatically if unanswered by %s.",
		common.Mention(initiatorID), common.Mention(opponentID),
		common.Mention(initiatorID), common.Mention(opponentID),
		contract.Content,
		common.FormatDiscordTimestamp(deadline, "T"), common.FormatDiscordTimestamp(deadline, "R"))

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "受ける / Accept",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("contract_accept_%d", contract.ID),
				},
				discordgo.Button{
					Label:    "断る / Decline",
					Style:    discordgo.DangerButton,
					CustomID: fmt.Sprintf("contract_decline_%d", contract.ID),
				},
			},
		},
	}

	if err := common.RespondWithComponents(s, i, message, components); err != nil {
		log.Errorf("Error posting contract proposal %d: %v", contract.ID, err)
	}
}

func (f *Feature) handleResponse(s *discordgo.Session, i *discordgo.InteractionCreate, accept bool) {
	ctx := context.Background()

	customID := i.MessageComponentData().CustomID
	idStr := strings.TrimPrefix(strings.TrimPrefix(customID, "contract_accept_"), "contract_decline_")
	contractID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Errorf("Error parsing contract custom id %q: %v", customID, err)
		common.RespondWithError(s, i, "このボタンは処理できませんでした。 / Unable to process this button.")
		return
	}

	_, responderID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	contract, err := f.contractService.Respond(ctx, contractID, responderID, accept)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			common.RespondWithError(s, i, "このボタンは指名された相手だけが押せます。 / Only the challenged member can answer.")
		case errors.Is(err, service.ErrContractNotPending):
			common.RespondWithError(s, i, "この勝負はすでに応答済みか期限切れです。 / This challenge was already answered or expired.")
		case errors.Is(err, service.ErrContractNotFound):
			common.RespondWithError(s, i, "この勝負は見つかりませんでした。 / This challenge no longer exists.")
		default:
			log.Errorf("Error responding to contract %d: %v", contractID, err)
			common.RespondWithError(s, i, "応答の処理に失敗しました。 / Failed to process the response.")
		}
		return
	}

	var verdict string
	if accept {
		verdict = fmt.Sprintf("✅ %s が勝負を受けました！ / %s accepted the challenge!",
			common.Mention(responderID), common.Mention(responderID))
	} else {
		verdict = fmt.Sprintf("❌ %s が勝負を断りました。 / %s declined the challenge.",
			common.Mention(responderID), common.Mention(responderID))
	}

	// Rewrite the proposal message in place and retire its buttons
	content := fmt.Sprintf("⚔️ %s vs %s\n内容 / Terms: %s\n\n%s",
		common.Mention(contract.InitiatorID), common.Mention(contract.OpponentID),
		contract.Content, verdict)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: common.DisableComponents(i.Message.Components),
		},
	})
	if err != nil {
		log.Errorf("Error updating contract message %d: %v", contractID, err)
	}
}

func (f *Feature) handleClose(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var opponentUser *discordgo.User
	var resultStr string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "opponent":
			opponentUser = opt.UserValue(s)
		case "result":
			resultStr = opt.StringValue()
		}
	}

	if opponentUser == nil {
		common.RespondWithError(s, i, "相手を指定してください。 / Please specify the opponent.")
		return
	}
	result := models.ContractResult(resultStr)
	if result != models.ContractResultWin && result != models.ContractResultLose {
		common.RespondWithError(s, i, "結果は win か lose を指定してください。 / Result must be win or lose.")
		return
	}

	guildID, submitterID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	opponentID, err := common.ParseSnowflake(opponentUser.ID)
	if err != nil {
		common.RespondWithError(s, i, "相手ユーザーが不正です。 / Invalid opponent user.")
		return
	}

	contract, err := f.contractService.SubmitResult(ctx, guildID, submitterID, opponentID)
	if err != nil {
		if errors.Is(err, service.ErrNoAcceptedContract) {
			common.RespondWithError(s, i, "この相手との成立済みの勝負が見つかりません。 / No accepted challenge with this member.")
			return
		}
		log.Errorf("Error submitting result between %d and %d in guild %d: %v", submitterID, opponentID, guildID, err)
		common.RespondWithError(s, i, "結果の申告に失敗しました。 / Failed to submit the result.")
		return
	}

	f.sessions.open(contract.ID, submitterID, f.approvalTimeout)

	deadline := time.Now().Add(f.approvalTimeout)
	outcome := "勝利 / WIN"
	if result == models.ContractResultLose {
		outcome = "敗北 / LOSE"
	}
	message := fmt.Sprintf("📣 %s が %s との勝負の結果を申告しました: **%s**\n内容 / Terms: %s\n%s が %s までに承認すると確定します。 / Confirmed once %s approves by %s.",
		common.Mention(submitterID), common.Mention(opponentID), outcome,
		contract.Content,
		common.Mention(opponentID), common.FormatDiscordTimestamp(deadline, "T"),
		common.Mention(opponentID), common.FormatDiscordTimestamp(deadline, "R"))

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "承認する / Approve",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("contract_approve_%d_%d_%s", contract.ID, submitterID, result),
				},
			},
		},
	}

	if err := common.RespondWithComponents(s, i, message, components); err != nil {
		log.Errorf("Error posting approval request for contract %d: %v", contract.ID, err)
	}
}

// parseApproveCustomID splits "contract_approve_<id>_<submitter>_<result>"
func parseApproveCustomID(customID string) (contractID, submitterID int64, result models.ContractResult, err error) {
	parts := strings.Split(customID, "_")
	if len(parts) != 5 || parts[0] != "contract" || parts[1] != "approve" {
		return 0, 0, "", fmt.Errorf("malformed approval custom id %q", customID)
	}

	contractID, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("malformed contract id in %q", customID)
	}
	submitterID, err = strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("malformed submitter id in %q", customID)
	}

	result = models.ContractResult(parts[4])
	if result != models.ContractResultWin && result != models.ContractResultLose {
		return 0, 0, "", fmt.Errorf("malformed result in %q", customID)
	}
	return contractID, submitterID, result, nil
}

func (f *Feature) handleApprove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	contractID, submitterID, result, err := parseApproveCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		log.Errorf("Error parsing approval custom id: %v", err)
		common.RespondWithError(s, i, "このボタンは処理できませんでした。 / Unable to process this button.")
		return
	}

	_, approverID, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	// The approval window lives in the session store. After expiry the
	// contract stays accepted; the result has to be submitted again.
	session, ok := f.sessions.take(contractID)
	if !ok {
		common.RespondWithError(s, i, "承認の期限が切れています。もう一度結果を申告してください。 / The approval window expired. Submit the result again.")
		return
	}
	if session.submitterID != submitterID {
		common.RespondWithError(s, i, "この承認は最新の申告と一致しません。 / This approval does not match the latest submission.")
		return
	}

	contract, err := f.contractService.ApproveResult(ctx, contractID, approverID, submitterID, result)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			// The press consumed the session; reopen so the right member can
			// still approve within the original window
			f.sessions.open(session.contractID, session.submitterID, time.Until(session.expiresAt))
			common.RespondWithError(s, i, "申告した相手だけが承認できます。 / Only the submitter's opponent can approve.")
		case errors.Is(err, service.ErrContractNotAccepted):
			common.RespondWithError(s, i, "この勝負はすでに確定済みです。 / This challenge is already settled.")
		case errors.Is(err, service.ErrContractNotFound):
			common.RespondWithError(s, i, "この勝負は見つかりませんでした。 / This challenge no longer exists.")
		default:
			log.Errorf("Error approving contract %d: %v", contractID, err)
			common.RespondWithError(s, i, "承認の処理に失敗しました。 / Failed to process the approval.")
		}
		return
	}

	outcome := "勝利 / WIN 🏆"
	if result == models.ContractResultLose {
		outcome = "敗北 / LOSE ⚑"
	}
	content := fmt.Sprintf("✅ 結果が確定しました！ / Result confirmed!\n%s vs %s → %s の %s\n内容 / Terms: %s",
		common.Mention(contract.InitiatorID), common.Mention(contract.OpponentID),
		common.Mention(submitterID), outcome, contract.Content)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: common.DisableComponents(i.Message.Components),
		},
	})
	if err != nil {
		log.Errorf("Error updating approval message for contract %d: %v", contractID, err)
	}
}
