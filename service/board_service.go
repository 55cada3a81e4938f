package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"yenbot/models"
)

type boardService struct {
	uowFactory      UnitOfWorkFactory
	messenger       Messenger
	ticketChannelID int64
	resultChannelID int64
}

// NewBoardService creates a new board service. A zero channel id disables the
// corresponding board: its refresh operations become no-ops.
func NewBoardService(uowFactory UnitOfWorkFactory, messenger Messenger, ticketChannelID, resultChannelID int64) BoardService {
	return &boardService{
		uowFactory:      uowFactory,
		messenger:       messenger,
		ticketChannelID: ticketChannelID,
		resultChannelID: resultChannelID,
	}
}

func (s *boardService) channelFor(kind models.BoardKind) int64 {
	if kind == models.BoardKindTicket {
		return s.ticketChannelID
	}
	return s.resultChannelID
}

// EnsureBoard returns the live board record for a guild and kind. If the
// recorded message was deleted externally the pointer is stale; a fresh
// placeholder message is created and the record updated. Idempotent under
// retry: while the message exists, repeated calls return the same record.
func (s *boardService) EnsureBoard(ctx context.Context, guildID int64, kind models.BoardKind) (*models.Board, error) {
	channelID := s.channelFor(kind)
	if channelID == 0 {
		return nil, nil
	}

	board, err := s.getBoard(ctx, guildID, channelID, kind)
	if err != nil {
		return nil, err
	}

	if board != nil {
		_, err := s.messenger.FetchMessage(board.ChannelID, board.MessageID)
		if err == nil {
			return board, nil
		}
		if !errors.Is(err, ErrMessageNotFound) {
			return nil, fmt.Errorf("failed to fetch board message: %w", err)
		}
		log.WithFields(log.Fields{
			"guildID":   guildID,
			"kind":      kind,
			"messageID": board.MessageID,
		}).Info("Board message deleted externally, recreating")
	}

	return s.recreateBoard(ctx, guildID, channelID, kind, titleFor(kind)+"\n\n"+boardPlaceholder)
}

// RefreshTicketBoard rewrites the ticket board from current ticket state
func (s *boardService) RefreshTicketBoard(ctx context.Context, guildID int64) error {
	board, err := s.EnsureBoard(ctx, guildID, models.BoardKindTicket)
	if err != nil {
		return err
	}
	if board == nil {
		return nil // No ticket board channel configured
	}

	tickets, err := s.listTickets(ctx, guildID)
	if err != nil {
		return err
	}

	content := RenderTicketBoard(tickets)
	if err := s.messenger.EditMessage(board.ChannelID, board.MessageID, content); err != nil {
		if !errors.Is(err, ErrMessageNotFound) {
			return fmt.Errorf("failed to edit ticket board: %w", err)
		}
		// Deleted between ensure and edit; recreate with the full content
		if _, err := s.recreateBoard(ctx, guildID, board.ChannelID, models.BoardKindTicket, content); err != nil {
			return err
		}
	}

	return nil
}

// AppendResult prepends a result line to the result board, newest first
func (s *boardService) AppendResult(ctx context.Context, guildID int64, line string) error {
	board, err := s.EnsureBoard(ctx, guildID, models.BoardKindResult)
	if err != nil {
		return err
	}
	if board == nil {
		return nil // No result board channel configured
	}

	previous, err := s.messenger.FetchMessage(board.ChannelID, board.MessageID)
	if err != nil {
		if !errors.Is(err, ErrMessageNotFound) {
			return fmt.Errorf("failed to fetch result board: %w", err)
		}
		previous = ""
	}

	content := PrependResultLine(previous, line)
	if err := s.messenger.EditMessage(board.ChannelID, board.MessageID, content); err != nil {
		if !errors.Is(err, ErrMessageNotFound) {
			return fmt.Errorf("failed to edit result board: %w", err)
		}
		if _, err := s.recreateBoard(ctx, guildID, board.ChannelID, models.BoardKindResult, content); err != nil {
			return err
		}
	}

	return nil
}

func (s *boardService) getBoard(ctx context.Context, guildID, channelID int64, kind models.BoardKind) (*models.Board, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	board, err := uow.BoardRepository().Get(ctx, guildID, channelID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get board record: %w", err)
	}

	return board, nil
}

func (s *boardService) listTickets(ctx context.Context, guildID int64) ([]*models.Ticket, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tickets, err := uow.TicketRepository().ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}

func (s *boardService) recreateBoard(ctx context.Context, guildID, channelID int64, kind models.BoardKind, content string) (*models.Board, error) {
	messageID, err := s.messenger.SendMessage(channelID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create board message: %w", err)
	}

	board := &models.Board{
		GuildID:   guildID,
		ChannelID: channelID,
		Kind:      kind,
		MessageID: messageID,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.BoardRepository().Upsert(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to record board message: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return board, nil
}

func titleFor(kind models.BoardKind) string {
	if kind == models.BoardKindTicket {
		return ticketBoardTitle
	}
	return resultBoardTitle
}
