package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// ParseSnowflake converts a Discord string ID to int64
func ParseSnowflake(id string) (int64, error) {
	parsed, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable snowflake %q: %w", id, err)
	}
	return parsed, nil
}

// InteractionIDs extracts the guild and invoking user IDs from an interaction
func InteractionIDs(i *discordgo.InteractionCreate) (guildID, userID int64, err error) {
	guildID, err = ParseSnowflake(i.GuildID)
	if err != nil {
		return 0, 0, err
	}
	if i.Member == nil || i.Member.User == nil {
		return 0, 0, fmt.Errorf("interaction carries no member")
	}
	userID, err = ParseSnowflake(i.Member.User.ID)
	if err != nil {
		return 0, 0, err
	}
	return guildID, userID, nil
}

// MemberHasRole reports whether the interaction's member holds the role.
// A zero role ID matches nothing, which disables the gated operation.
func MemberHasRole(i *discordgo.InteractionCreate, roleID int64) bool {
	if roleID == 0 || i.Member == nil {
		return false
	}
	want := strconv.FormatInt(roleID, 10)
	for _, r := range i.Member.Roles {
		if r == want {
			return true
		}
	}
	return false
}
