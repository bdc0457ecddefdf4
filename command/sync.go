package command

import (
	"fmt"

	"champolis/database"
	"champolis/forumsync"
	"champolis/models"
	"champolis/utils"

	"github.com/bwmarrin/discordgo"
)

// SyncCommand defines the /sync command: manually trigger a pipeline run
// for the current guild. Restricted to members with the bot master role.
type SyncCommand struct{}

// Definition returns the application command definition.
func (c *SyncCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "sync",
		Description: "Manually trigger a forum sync",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "pipeline",
				Description: "Which pipeline to sync",
				Type:        discordgo.ApplicationCommandOptionString,
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{
						Name:  "Library",
						Value: string(models.PipelineLibrary),
					},
					{
						Name:  "Suggestions",
						Value: string(models.PipelineSuggestions),
					},
				},
			},
		},
	}
}

// Handler triggers the requested pipeline after the role check.
func (c *SyncCommand) Handler(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(s, i, "This command only works inside a server.")
		return
	}

	cfg, err := database.GetServerConfig(database.DB, i.GuildID)
	if err != nil {
		utils.Error("command", "sync", fmt.Sprintf("Config lookup failed for guild %s: %v", i.GuildID, err))
		respond(s, i, "Something went wrong looking up this server's configuration.")
		return
	}
	if cfg == nil {
		respond(s, i, "This server is not configured yet. Run /setup first.")
		return
	}
	if !utils.HasMasterRole(i.Member, cfg) {
		respond(s, i, "You need the bot master role to run a sync.")
		return
	}

	kind := models.PipelineKind(i.ApplicationCommandData().Options[0].StringValue())
	if !kind.Valid() {
		respond(s, i, "Unknown pipeline.")
		return
	}

	forumsync.Trigger(s, i.GuildID, kind)
	utils.Info("command", "sync", fmt.Sprintf("Manual %s sync started for guild %s", kind, i.GuildID))
	respond(s, i, fmt.Sprintf("Started the %s sync. The forum will refresh shortly.", kind))
}

// respond sends an ephemeral reply to an interaction.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		utils.Error("command", "respond", fmt.Sprintf("Failed to respond to interaction: %v", err))
	}
}
