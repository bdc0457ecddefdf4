package handlers

import (
	"fmt"
	"strings"

	"champolis/database"
	"champolis/forumsync"
	"champolis/models"
	"champolis/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// MessageCreate is called for every new message the bot can see. A titled
// message in a configured source channel re-ranks that channel's forum;
// prefix commands offer a manual escape hatch for the bot master role.
func MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from bots, including our own.
	if m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		return
	}

	if !database.ServerExists(database.DB, m.GuildID) {
		return
	}
	cfg, err := database.GetServerConfig(database.DB, m.GuildID)
	if err != nil || cfg == nil {
		return
	}

	if m.ChannelID == cfg.LibraryChannelID && forumsync.HasTitle(m.Content) {
		forumsync.Trigger(s, m.GuildID, models.PipelineLibrary)
	}
	if m.ChannelID == cfg.SuggestionChannelID && forumsync.HasTitle(m.Content) {
		forumsync.Trigger(s, m.GuildID, models.PipelineSuggestions)
	}

	prefix := viper.GetString("bot.prefix")
	if prefix == "" || !strings.HasPrefix(m.Content, prefix) {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "synclibrary", "syncsuggestions":
		if !utils.HasMasterRole(m.Member, cfg) {
			s.ChannelMessageSend(m.ChannelID, "You need the bot master role to do that.")
			return
		}
		kind := models.PipelineLibrary
		if fields[0] == "syncsuggestions" {
			kind = models.PipelineSuggestions
		}
		forumsync.Trigger(s, m.GuildID, kind)
		s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Started the %s sync.", kind))
	case "ping":
		s.ChannelMessageSend(m.ChannelID, "Pong!")
	}
}
