package boards

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"yenbot/events"
	"yenbot/service"
)

// Feature keeps the fixed ticket and result boards in sync. Boards refresh
// from committed events, never from handler code directly.
type Feature struct {
	boardService service.BoardService
	adjustRoleID int64
}

func New(boardService service.BoardService, adjustRoleID int64) *Feature {
	return &Feature{
		boardService: boardService,
		adjustRoleID: adjustRoleID,
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "setup-ticket":
		f.handleSetupTicket(s, i)
	case "setup-result":
		f.handleSetupResult(s, i)
	}
}

// SubscribeEvents wires the board refreshes to committed domain events
func (f *Feature) SubscribeEvents(bus *events.Bus) {
	bus.Subscribe(events.EventTypeTicketChange, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.TicketChangeEvent)
		if !ok {
			return
		}
		if err := f.boardService.RefreshTicketBoard(ctx, e.GuildID); err != nil {
			log.Errorf("Failed to refresh ticket board for guild %d: %v", e.GuildID, err)
		}
	})

	bus.Subscribe(events.EventTypeContractClosed, func(ctx context.Context, event events.Event) {
		e, ok := event.(events.ContractClosedEvent)
		if !ok {
			return
		}
		line := service.FormatResultLine(time.Now(), e.SubmitterID, e.OpponentID, e.Result, e.Content)
		if err := f.boardService.AppendResult(ctx, e.GuildID, line); err != nil {
			log.Errorf("Failed to append result to board for guild %d: %v", e.GuildID, err)
		}
	})
}
