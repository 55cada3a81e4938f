package boards

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/bot/common"
	"yenbot/models"
)

func (f *Feature) handleSetupTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !common.MemberHasRole(i, f.adjustRoleID) {
		common.RespondWithError(s, i, "このコマンドを使う権限がありません。 / You are not allowed to use this command.")
		return
	}

	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	board, err := f.boardService.EnsureBoard(ctx, guildID, models.BoardKindTicket)
	if err != nil {
		log.Errorf("Error ensuring ticket board for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "掲示板の作成に失敗しました。 / Failed to set up the board.")
		return
	}
	if board == nil {
		common.RespondWithError(s, i, "チケット掲示板のチャンネルが設定されていません。 / No ticket board channel is configured.")
		return
	}

	if err := f.boardService.RefreshTicketBoard(ctx, guildID); err != nil {
		log.Errorf("Error refreshing ticket board for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "掲示板の更新に失敗しました。 / Failed to refresh the board.")
		return
	}

	if err := common.RespondWithSuccess(s, i, "チケット掲示板を設置しました。 / Ticket board is set up.", true); err != nil {
		log.Errorf("Error responding to board setup: %v", err)
	}
}

func (f *Feature) handleSetupResult(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !common.MemberHasRole(i, f.adjustRoleID) {
		common.RespondWithError(s, i, "このコマンドを使う権限がありません。 / You are not allowed to use this command.")
		return
	}

	guildID, _, err := common.InteractionIDs(i)
	if err != nil {
		log.Errorf("Error parsing interaction IDs: %v", err)
		common.RespondWithError(s, i, "リクエストを処理できませんでした。 / Unable to process request.")
		return
	}

	board, err := f.boardService.EnsureBoard(ctx, guildID, models.BoardKindResult)
	if err != nil {
		log.Errorf("Error ensuring result board for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "掲示板の作成に失敗しました。 / Failed to set up the board.")
		return
	}
	if board == nil {
		common.RespondWithError(s, i, "結果掲示板のチャンネルが設定されていません。 / No result board channel is configured.")
		return
	}

	if err := common.RespondWithSuccess(s, i, "勝負結果掲示板を設置しました。 / Result board is set up.", true); err != nil {
		log.Errorf("Error responding to board setup: %v", err)
	}
}
