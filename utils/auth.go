package utils

import (
	"champolis/models"

	"github.com/bwmarrin/discordgo"
)

// HasMasterRole reports whether member carries the guild's configured
// bot-master role. Guilds without a master role configured refuse
// everyone.
func HasMasterRole(member *discordgo.Member, cfg *models.GuildConfig) bool {
	if member == nil || cfg == nil || cfg.MasterRoleID == "" {
		return false
	}
	for _, roleID := range member.Roles {
		if roleID == cfg.MasterRoleID {
			return true
		}
	}
	return false
}
