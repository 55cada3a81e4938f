package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RespondEphemeral sends a plain ephemeral message as the interaction response
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondWithError sends an error message, visible only to the caller
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := RespondEphemeral(s, i, "❌ "+message); err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// RespondWithSuccess sends a success message
func RespondWithSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, message string, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: "✅ " + message,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// RespondWithComponents sends a public message carrying button rows
func RespondWithComponents(s *discordgo.Session, i *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
		},
	})
}

// DeferResponse sends a deferred response to give more time for processing
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})
}

// FollowUpEphemeral sends an ephemeral follow-up after a deferred response
func FollowUpEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up message: %v", err)
	}
}

// DisableComponents disables all buttons in a message's component rows; used
// when an interactive message reaches a terminal state
func DisableComponents(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	disabled := make([]discordgo.MessageComponent, len(components))

	for i, component := range components {
		actionRow, ok := component.(*discordgo.ActionsRow)
		if !ok {
			disabled[i] = component
			continue
		}

		newRow := &discordgo.ActionsRow{
			Components: make([]discordgo.MessageComponent, len(actionRow.Components)),
		}
		for j, comp := range actionRow.Components {
			if button, ok := comp.(*discordgo.Button); ok {
				newButton := *button
				newButton.Disabled = true
				newRow.Components[j] = &newButton
			} else {
				newRow.Components[j] = comp
			}
		}
		disabled[i] = newRow
	}

	return disabled
}
