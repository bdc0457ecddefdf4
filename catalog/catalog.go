// Package catalog persists the per-guild submission catalogs as JSON
// documents, one file per (guild, pipeline) pair.
package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"champolis/models"
)

// Path returns the catalog file location for a guild and pipeline.
func Path(dataDir string, kind models.PipelineKind, guildID string) string {
	return filepath.Join(dataDir, fmt.Sprintf("processed_%s_%s.json", kind, guildID))
}

// Load reads a guild's catalog from disk. A missing or unparseable file
// yields an empty catalog rather than an error; a corrupt document only
// costs a full backfill on the next sync.
func Load(dataDir string, kind models.PipelineKind, guildID string) models.Catalog {
	path := Path(dataDir, kind, guildID)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Failed to read catalog %s: %v", path, err)
		}
		return models.Catalog{}
	}

	var cat models.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		log.Printf("Failed to parse catalog %s, treating as empty: %v", path, err)
		return models.Catalog{}
	}
	if cat == nil {
		cat = models.Catalog{}
	}
	return cat
}

// Save overwrites a guild's catalog on disk. The document is written to a
// temporary file and renamed into place so a concurrent Load never
// observes a partial write. Failures are logged, not returned; the sync
// result simply won't survive a restart.
func Save(dataDir string, kind models.PipelineKind, guildID string, cat models.Catalog) {
	path := Path(dataDir, kind, guildID)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("Failed to create data directory for %s: %v", path, err)
		return
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		log.Printf("Failed to marshal catalog %s: %v", path, err)
		return
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		log.Printf("Failed to write catalog %s: %v", path, err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		log.Printf("Failed to replace catalog %s: %v", path, err)
		os.Remove(tmp)
	}
}
