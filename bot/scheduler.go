package bot

import (
	"fmt"
	"log"

	"champolis/database"
	"champolis/forumsync"
	"champolis/models"
	"champolis/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

var c *cron.Cron

// startScheduler starts the cron jobs.
func startScheduler(s *discordgo.Session) {
	log.Println("Initializing scheduler...")
	c = cron.New()

	expr := viper.GetString("bot.syncCron")
	_, err := c.AddFunc(expr, func() {
		log.Println("Running scheduled forum sync...")
		syncAllGuilds(s)
	})
	if err != nil {
		log.Fatalf("Could not set up cron job: %v", err)
	}
	c.Start()
	log.Printf("Cron job scheduled with expression %q.", expr)

	// Perform an initial sync on startup based on config.
	if viper.GetBool("bot.SyncAtStartup") {
		go func() {
			log.Println("Performing initial sync on startup...")
			syncAllGuilds(s)
		}()
	} else {
		log.Println("Skipping initial sync on startup as per configuration.")
	}
}

// syncAllGuilds triggers both pipelines for every configured guild.
func syncAllGuilds(s *discordgo.Session) {
	ids, err := database.GetAllGuildIDs(database.DB)
	if err != nil {
		utils.Error("scheduler", "sync", fmt.Sprintf("Could not list configured guilds: %v", err))
		return
	}
	for _, guildID := range ids {
		forumsync.Trigger(s, guildID, models.PipelineLibrary)
		forumsync.Trigger(s, guildID, models.PipelineSuggestions)
	}
}

// stopScheduler stops the cron jobs.
func stopScheduler() {
	if c != nil {
		c.Stop()
		log.Println("Scheduler stopped.")
	}
}
