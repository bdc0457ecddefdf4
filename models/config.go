package models

// GuildConfig holds the per-guild channel and role configuration stored in
// the servers table. The same shape is accepted from config/servers.json
// when seeding a fresh database.
type GuildConfig struct {
	GuildID             string `json:"guild_id" mapstructure:"guild_id"`
	ServerName          string `json:"server_name" mapstructure:"server_name"`
	LibraryChannelID    string `json:"library_channel_id" mapstructure:"library_channel_id"`
	LibraryForumID      string `json:"library_forum_id" mapstructure:"library_forum_id"`
	SuggestionChannelID string `json:"suggestion_channel_id" mapstructure:"suggestion_channel_id"`
	PrioritiesForumID   string `json:"priorities_forum_id" mapstructure:"priorities_forum_id"`
	MasterRoleID        string `json:"master_role_id" mapstructure:"master_role_id"`
	ReportChannelID     string `json:"report_channel_id" mapstructure:"report_channel_id"`
}

// PipelineKind selects one of the two sync flows.
type PipelineKind string

const (
	PipelineLibrary     PipelineKind = "library"
	PipelineSuggestions PipelineKind = "suggestions"
)

// Valid reports whether k names a known pipeline.
func (k PipelineKind) Valid() bool {
	return k == PipelineLibrary || k == PipelineSuggestions
}

// SourceChannelID returns the id of the channel this pipeline reads
// submissions from.
func (k PipelineKind) SourceChannelID(cfg *GuildConfig) string {
	if k == PipelineSuggestions {
		return cfg.SuggestionChannelID
	}
	return cfg.LibraryChannelID
}

// ForumChannelID returns the id of the forum this pipeline republishes
// ranked submissions into.
func (k PipelineKind) ForumChannelID(cfg *GuildConfig) string {
	if k == PipelineSuggestions {
		return cfg.PrioritiesForumID
	}
	return cfg.LibraryForumID
}
