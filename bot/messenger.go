package bot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"yenbot/service"
)

// DiscordMessenger implements service.Messenger over a discordgo session.
// Deleted messages surface as service.ErrMessageNotFound so the board
// projection can self-heal.
type DiscordMessenger struct {
	session *discordgo.Session
}

// NewMessenger creates a messenger bound to the session
func NewMessenger(session *discordgo.Session) *DiscordMessenger {
	return &DiscordMessenger{session: session}
}

// SendMessage posts a new message and returns its ID
func (m *DiscordMessenger) SendMessage(channelID int64, content string) (int64, error) {
	msg, err := m.session.ChannelMessageSend(strconv.FormatInt(channelID, 10), content)
	if err != nil {
		return 0, fmt.Errorf("failed to send message to channel %d: %w", channelID, err)
	}

	messageID, err := strconv.ParseInt(msg.ID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable message id %q: %w", msg.ID, err)
	}
	return messageID, nil
}

// EditMessage replaces a message's content
func (m *DiscordMessenger) EditMessage(channelID, messageID int64, content string) error {
	_, err := m.session.ChannelMessageEdit(
		strconv.FormatInt(channelID, 10),
		strconv.FormatInt(messageID, 10),
		content,
	)
	if err != nil {
		return mapNotFound(err)
	}
	return nil
}

// FetchMessage returns a message's content
func (m *DiscordMessenger) FetchMessage(channelID, messageID int64) (string, error) {
	msg, err := m.session.ChannelMessage(
		strconv.FormatInt(channelID, 10),
		strconv.FormatInt(messageID, 10),
	)
	if err != nil {
		return "", mapNotFound(err)
	}
	return msg.Content, nil
}

// mapNotFound translates Discord's unknown-message and unknown-channel errors
// into the sentinel the board projection recovers from
func mapNotFound(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			switch restErr.Message.Code {
			case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
				return service.ErrMessageNotFound
			}
		}
		if restErr.Response != nil && restErr.Response.StatusCode == 404 {
			return service.ErrMessageNotFound
		}
	}
	return err
}
