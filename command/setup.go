package command

import (
	"fmt"

	"champolis/database"
	"champolis/models"
	"champolis/utils"

	"github.com/bwmarrin/discordgo"
)

// SetupCommand defines the /setup command: store or update the guild's
// channel and role configuration in the servers table.
type SetupCommand struct{}

// Definition returns the application command definition. The command is
// limited to members who can manage the server.
func (c *SetupCommand) Definition() *discordgo.ApplicationCommand {
	manageServer := int64(discordgo.PermissionManageServer)
	return &discordgo.ApplicationCommand{
		Name:                     "setup",
		Description:              "Configure the sync channels for this server",
		DefaultMemberPermissions: &manageServer,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "library_channel",
				Description: "Channel where book submissions are posted",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
			},
			{
				Name:        "library_forum",
				Description: "Forum receiving the ranked books",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildForum,
				},
			},
			{
				Name:        "suggestion_channel",
				Description: "Channel where suggestions are posted",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
			},
			{
				Name:        "priorities_forum",
				Description: "Forum receiving the ranked suggestions",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    true,
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildForum,
				},
			},
			{
				Name:        "master_role",
				Description: "Role allowed to trigger manual syncs",
				Type:        discordgo.ApplicationCommandOptionRole,
				Required:    true,
			},
			{
				Name:        "report_channel",
				Description: "Channel receiving user reports",
				Type:        discordgo.ApplicationCommandOptionChannel,
				Required:    false,
			},
		},
	}
}

// Handler stores the submitted configuration for the guild.
func (c *SetupCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(s, i, "This command only works inside a server.")
		return
	}

	cfg := &models.GuildConfig{GuildID: i.GuildID}
	if guild, err := s.State.Guild(i.GuildID); err == nil {
		cfg.ServerName = guild.Name
	}

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "library_channel":
			cfg.LibraryChannelID = opt.ChannelValue(nil).ID
		case "library_forum":
			cfg.LibraryForumID = opt.ChannelValue(nil).ID
		case "suggestion_channel":
			cfg.SuggestionChannelID = opt.ChannelValue(nil).ID
		case "priorities_forum":
			cfg.PrioritiesForumID = opt.ChannelValue(nil).ID
		case "master_role":
			cfg.MasterRoleID = opt.RoleValue(nil, "").ID
		case "report_channel":
			cfg.ReportChannelID = opt.ChannelValue(nil).ID
		}
	}

	if err := database.UpsertServerConfig(database.DB, cfg); err != nil {
		utils.Error("command", "setup", fmt.Sprintf("Failed to save config for guild %s: %v", i.GuildID, err))
		respond(s, i, "Failed to save the configuration.")
		return
	}

	utils.Info("command", "setup", fmt.Sprintf("Configuration updated for guild %s", i.GuildID))
	respond(s, i, "Configuration saved. New submissions will now be synced.")
}
