package database

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"

	"champolis/models"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// GetServerConfig retrieves the configuration for a single guild.
// Returns (nil, nil) when the guild is not configured.
func GetServerConfig(db *sql.DB, guildID string) (*models.GuildConfig, error) {
	query := `
    SELECT guild_id, server_name, library_channel_id, library_forum_id,
           suggestion_channel_id, priorities_forum_id, master_role_id, report_channel_id
    FROM servers WHERE guild_id = ?;`

	var cfg models.GuildConfig
	err := db.QueryRow(query, guildID).Scan(
		&cfg.GuildID,
		&cfg.ServerName,
		&cfg.LibraryChannelID,
		&cfg.LibraryForumID,
		&cfg.SuggestionChannelID,
		&cfg.PrioritiesForumID,
		&cfg.MasterRoleID,
		&cfg.ReportChannelID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query server config for guild %s: %w", guildID, err)
	}
	return &cfg, nil
}

// ServerExists reports whether a guild has a row in the servers table.
func ServerExists(db *sql.DB, guildID string) bool {
	var one int
	err := db.QueryRow(`SELECT 1 FROM servers WHERE guild_id = ?;`, guildID).Scan(&one)
	return err == nil
}

// UpsertServerConfig inserts or replaces a guild's configuration.
func UpsertServerConfig(db *sql.DB, cfg *models.GuildConfig) error {
	query := `
    INSERT INTO servers (
        guild_id, server_name, library_channel_id, library_forum_id,
        suggestion_channel_id, priorities_forum_id, master_role_id, report_channel_id
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT(guild_id) DO UPDATE SET
        server_name = excluded.server_name,
        library_channel_id = excluded.library_channel_id,
        library_forum_id = excluded.library_forum_id,
        suggestion_channel_id = excluded.suggestion_channel_id,
        priorities_forum_id = excluded.priorities_forum_id,
        master_role_id = excluded.master_role_id,
        report_channel_id = excluded.report_channel_id;`

	_, err := db.Exec(query,
		cfg.GuildID,
		cfg.ServerName,
		cfg.LibraryChannelID,
		cfg.LibraryForumID,
		cfg.SuggestionChannelID,
		cfg.PrioritiesForumID,
		cfg.MasterRoleID,
		cfg.ReportChannelID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert server config for guild %s: %w", cfg.GuildID, err)
	}
	return nil
}

// GetAllGuildIDs returns the ids of every configured guild.
func GetAllGuildIDs(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT guild_id FROM servers;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query guild ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan guild id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SeedFromViper inserts guild configurations found in the merged
// config/servers.json into the servers table. Existing rows are left
// untouched so runtime edits via /setup are not clobbered on restart.
func SeedFromViper(db *sql.DB) error {
	allSettings := viper.AllSettings()

	for key, value := range allSettings {
		// Guild keys are digit-only snowflakes; skip everything else
		// (e.g. the "bot" and "sync" sections).
		if _, err := strconv.ParseUint(key, 10, 64); err != nil {
			continue
		}

		var cfg models.GuildConfig
		if err := mapstructure.Decode(value, &cfg); err != nil {
			log.Printf("Could not decode seed config for guild %s: %v", key, err)
			continue
		}
		cfg.GuildID = key

		if ServerExists(db, key) {
			continue
		}
		if err := UpsertServerConfig(db, &cfg); err != nil {
			return err
		}
		log.Printf("Seeded configuration for guild %s (%s)", key, cfg.ServerName)
	}
	return nil
}
