package forumsync

import (
	"sync"

	"champolis/database"
	"champolis/models"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/viper"
)

// runGuard serializes sync runs per (guild, pipeline). Overlapping runs
// would read-modify-write the same catalog document, so a trigger that
// arrives while a run is in flight queues at most one follow-up run
// instead of starting a second.
type runGuard struct {
	mu      sync.Mutex
	running map[string]bool
	pending map[string]bool
}

func newRunGuard() *runGuard {
	return &runGuard{
		running: make(map[string]bool),
		pending: make(map[string]bool),
	}
}

// Do runs fn for key, re-running it once afterwards if more triggers
// arrived meanwhile. When a run for key is already in flight, Do only
// marks the follow-up and returns.
func (g *runGuard) Do(key string, fn func()) {
	g.mu.Lock()
	if g.running[key] {
		g.pending[key] = true
		g.mu.Unlock()
		return
	}
	g.running[key] = true
	g.mu.Unlock()

	for {
		fn()

		g.mu.Lock()
		if g.pending[key] {
			g.pending[key] = false
			g.mu.Unlock()
			continue
		}
		g.running[key] = false
		g.mu.Unlock()
		return
	}
}

var guard = newRunGuard()

// Trigger starts a sync run for one guild and pipeline in the background.
// Triggers for the same (guild, pipeline) while a run is in flight are
// coalesced into a single follow-up run.
func Trigger(s *discordgo.Session, guildID string, kind models.PipelineKind) {
	go func() {
		guard.Do(string(kind)+"/"+guildID, func() {
			runner := &Runner{
				GW:      NewGateway(s),
				DataDir: viper.GetString("bot.dataDir"),
				Servers: func(id string) (*models.GuildConfig, error) {
					return database.GetServerConfig(database.DB, id)
				},
			}
			runner.RunSync(guildID, PipelineFor(kind))
		})
	}()
}
