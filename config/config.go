package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from multiple sources:
// 1. .env file (environment variables, ignored when absent)
// 2. config.yaml (base configuration)
// 3. config/servers.json (per-guild seed data, merged into the main config)
// Environment variables override settings of the same name from the files.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, skipping.")
	}

	viper.SetConfigName("config") // config file name (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("No base config file (config.yaml) found, using environment variables and defaults.")
		} else {
			panic(fmt.Errorf("fatal error reading base config file: %w", err))
		}
	}

	// Merge the guild seed file (config/servers.json). Guilds listed there
	// are inserted into the servers table on startup if not already present.
	viper.SetConfigName("servers")
	viper.SetConfigType("json")
	viper.AddConfigPath("./config")

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("No guild seed file (config/servers.json) found, skipping merge.")
		} else {
			panic(fmt.Errorf("fatal error merging guild seed file: %w", err))
		}
	}
}

func setDefaults() {
	viper.SetDefault("bot.prefix", "--")
	viper.SetDefault("bot.dataDir", "./data")
	viper.SetDefault("bot.dbPath", "./data/champolis.db")
	viper.SetDefault("bot.syncCron", "@hourly")
	viper.SetDefault("bot.SyncAtStartup", false)
	viper.SetDefault("sync.library.fetchLimit", 100)
	viper.SetDefault("sync.library.minReactions", 0)
	viper.SetDefault("sync.suggestions.fetchLimit", 50)
	viper.SetDefault("sync.suggestions.minReactions", 0)
}
