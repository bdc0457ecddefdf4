package forumsync

import (
	"github.com/spf13/viper"

	"champolis/models"
)

// Pipeline carries the per-flow parameters. The two flows share the
// orchestrator and differ only in fetch size, the minimum reaction count
// required before posting, and whether previously catalogued records are
// re-injected into the candidate set.
type Pipeline struct {
	Kind            models.PipelineKind
	FetchLimit      int
	MinReactions    int
	ReinjectCatalog bool
}

// PipelineFor builds the parameters for kind, honoring config overrides
// (sync.library.* / sync.suggestions.*).
func PipelineFor(kind models.PipelineKind) Pipeline {
	p := Pipeline{Kind: kind}
	switch kind {
	case models.PipelineSuggestions:
		p.FetchLimit = viper.GetInt("sync.suggestions.fetchLimit")
		p.MinReactions = viper.GetInt("sync.suggestions.minReactions")
	default:
		p.FetchLimit = viper.GetInt("sync.library.fetchLimit")
		p.MinReactions = viper.GetInt("sync.library.minReactions")
		p.ReinjectCatalog = true
	}
	if p.FetchLimit <= 0 {
		// Per-flow defaults, valid even before config is loaded.
		if kind == models.PipelineSuggestions {
			p.FetchLimit = 50
		} else {
			p.FetchLimit = 100
		}
	}
	return p
}
