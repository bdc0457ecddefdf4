package utils

import (
	"testing"

	"champolis/models"

	"github.com/bwmarrin/discordgo"
)

func TestHasMasterRole(t *testing.T) {
	cfg := &models.GuildConfig{MasterRoleID: "master"}

	tests := []struct {
		name   string
		member *discordgo.Member
		cfg    *models.GuildConfig
		want   bool
	}{
		{"has role", &discordgo.Member{Roles: []string{"a", "master", "b"}}, cfg, true},
		{"lacks role", &discordgo.Member{Roles: []string{"a", "b"}}, cfg, false},
		{"no roles", &discordgo.Member{}, cfg, false},
		{"nil member", nil, cfg, false},
		{"nil config", &discordgo.Member{Roles: []string{"master"}}, nil, false},
		{"unset master role", &discordgo.Member{Roles: []string{""}}, &models.GuildConfig{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasMasterRole(tt.member, tt.cfg); got != tt.want {
				t.Errorf("HasMasterRole() = %v, want %v", got, tt.want)
			}
		})
	}
}
