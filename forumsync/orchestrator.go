// Package forumsync implements the rank-and-republish pipelines: it
// extracts titled submissions from a source channel, ranks them by
// approval reactions against a durable per-guild catalog, and republishes
// the result as individual threads in a destination forum.
package forumsync

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"champolis/catalog"
	"champolis/models"

	"github.com/bwmarrin/discordgo"
)

// backfillPageSize is the page size used when paginating a source channel
// from scratch.
const backfillPageSize = 100

// Runner executes sync runs. Servers resolves a guild's configuration; in
// production it is backed by the servers table.
type Runner struct {
	GW      Gateway
	DataDir string
	Servers func(guildID string) (*models.GuildConfig, error)
}

// RunSync reconciles a source channel's submissions against the guild's
// catalog and republishes the ranked result into the destination forum.
// Configuration and channel-resolution failures abort the run before any
// destination mutation; per-item failures are logged and skipped, and the
// catalog is persisted at the end regardless.
func (r *Runner) RunSync(guildID string, p Pipeline) {
	cfg, err := r.Servers(guildID)
	if err != nil {
		log.Printf("[ERROR] Could not resolve config for guild %s: %v", guildID, err)
		return
	}
	if cfg == nil {
		log.Printf("[ERROR] Guild %s is not configured", guildID)
		return
	}

	source, err := r.GW.FetchChannel(p.Kind.SourceChannelID(cfg), discordgo.ChannelTypeGuildText)
	if err != nil {
		log.Printf("[ERROR] %s sync for guild %s: source channel: %v", p.Kind, guildID, err)
		return
	}
	forum, err := r.GW.FetchChannel(p.Kind.ForumChannelID(cfg), discordgo.ChannelTypeGuildForum)
	if err != nil {
		log.Printf("[ERROR] %s sync for guild %s: forum channel: %v", p.Kind, guildID, err)
		return
	}

	cat := catalog.Load(r.DataDir, p.Kind, guildID)

	var msgs []*discordgo.Message
	if len(cat) == 0 {
		log.Printf("[INFO] Catalog empty for guild %s (%s), fetching full channel history...", guildID, p.Kind)
		msgs = r.fetchAllMessages(source.ID)
	} else {
		log.Printf("[INFO] Fetching latest messages for guild %s (%s)...", guildID, p.Kind)
		msgs, err = r.GW.FetchMessagesPage(source.ID, p.FetchLimit, "")
		if err != nil {
			log.Printf("[WARN] Could not fetch recent messages for guild %s: %v", guildID, err)
		}
	}

	r.processMessages(cat, msgs, guildID)
	r.reconcile(cat, source.ID, p)

	records := Rank(cat)

	r.clearForumThreads(forum)
	posted := r.publish(forum.ID, records, p.MinReactions)

	catalog.Save(r.DataDir, p.Kind, guildID, cat)
	log.Printf("[INFO] Posted %d %s threads for guild %s.", posted, p.Kind, guildID)
}

// fetchAllMessages paginates a channel backwards from the newest message
// until a page comes back empty. Used when no catalog exists yet.
func (r *Runner) fetchAllMessages(channelID string) []*discordgo.Message {
	var all []*discordgo.Message
	var beforeID string

	for {
		page, err := r.GW.FetchMessagesPage(channelID, backfillPageSize, beforeID)
		if err != nil {
			log.Printf("[WARN] Backfill page fetch failed for channel %s: %v", channelID, err)
			break
		}
		if len(page) == 0 {
			break
		}
		all = append(all, page...)
		// Pages are newest-first; the next page starts before the oldest
		// id of this one.
		beforeID = page[len(page)-1].ID
	}
	return all
}

// processMessages merges candidate messages into the catalog: a titled
// message the catalog doesn't know gets a new record with the current
// tally; a known one only has its tally refreshed. Messages without a
// title never touch the catalog.
func (r *Runner) processMessages(cat models.Catalog, msgs []*discordgo.Message, guildID string) {
	for _, m := range msgs {
		if m == nil {
			continue
		}
		title, description, ok := ExtractFields(m.Content)
		if !ok {
			continue
		}

		key := messageKey(guildID, m)
		count := ApprovalCount(m)

		rec, exists := cat[key]
		if !exists {
			rec = models.SubmissionRecord{
				Title:       title,
				Description: description,
				Reactions:   count,
				URL:         key,
				Attachments: []models.Attachment{},
				Timestamp:   m.Timestamp.UnixMilli(),
			}
		} else {
			rec.Reactions = count
		}

		// Attachments are fetched once; a record that already has them
		// never re-downloads.
		if len(rec.Attachments) == 0 {
			if files := DownloadImages(r.GW, m); len(files) > 0 {
				rec.Attachments = files
			}
		}
		cat[key] = rec
	}
}

// reconcile re-fetches every catalogued message to refresh its tally.
// A confirmed-gone message has its entry removed; a transient failure
// leaves the entry stale for this run.
func (r *Runner) reconcile(cat models.Catalog, channelID string, p Pipeline) {
	for key, rec := range cat {
		msg, err := r.GW.FetchMessage(channelID, messageIDFromKey(key))
		if err != nil {
			if errors.Is(err, ErrMessageGone) {
				log.Printf("[WARN] Message gone for %s, removing from catalog", key)
				delete(cat, key)
			} else {
				log.Printf("[WARN] Could not fetch message for %s: %v", key, err)
			}
			continue
		}

		rec.Reactions = ApprovalCount(msg)
		if p.ReinjectCatalog && len(rec.Attachments) == 0 {
			if files := DownloadImages(r.GW, msg); len(files) > 0 {
				rec.Attachments = files
			}
		}
		cat[key] = rec
	}
}

// Rank returns the catalog's records in posting order: reaction count
// descending, older submissions first on equal counts, key as the final
// tie-break so the order is identical across runs over unchanged data.
func Rank(cat models.Catalog) []models.SubmissionRecord {
	records := make([]models.SubmissionRecord, 0, len(cat))
	for _, rec := range cat {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Reactions != records[j].Reactions {
			return records[i].Reactions > records[j].Reactions
		}
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp < records[j].Timestamp
		}
		return records[i].URL < records[j].URL
	})
	return records
}

// clearForumThreads deletes every thread in the destination forum,
// active and archived, best effort.
func (r *Runner) clearForumThreads(forum *discordgo.Channel) {
	log.Printf("[INFO] Clearing forum threads in %s...", forum.ID)

	threads, err := r.GW.ListForumThreads(forum)
	if err != nil {
		log.Printf("[WARN] Could not list all threads for forum %s: %v", forum.ID, err)
	}

	deleted := 0
	for _, thread := range threads {
		if err := r.GW.DeleteThread(thread.ID); err != nil {
			log.Printf("[ERROR] Could not delete thread %s: %v", thread.ID, err)
			continue
		}
		deleted++
	}
	log.Printf("[INFO] Deleted %d threads.", deleted)
}

// publish creates one forum thread per surviving record, in ranked order.
// Each thread's body is the description followed by the source URL, with
// the cached attachments re-materialized. Per-thread failures are logged
// and do not stop the rest.
func (r *Runner) publish(forumID string, records []models.SubmissionRecord, minReactions int) int {
	posted := 0
	for _, rec := range records {
		if rec.Reactions < minReactions {
			continue
		}
		content := rec.Description + "\n\n" + rec.URL
		files := FilesFrom(rec.Attachments)

		if err := r.GW.CreateForumThread(forumID, rec.Title, content, files); err != nil {
			log.Printf("[ERROR] Failed to create thread for %s: %v", rec.URL, err)
			continue
		}
		posted++
	}
	return posted
}

// messageKey returns the stable identifier for a source message: its jump
// URL, falling back to the raw message id when no guild is known.
func messageKey(guildID string, m *discordgo.Message) string {
	gid := m.GuildID
	if gid == "" {
		// REST message payloads omit the guild id.
		gid = guildID
	}
	if gid == "" || m.ChannelID == "" {
		return m.ID
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", gid, m.ChannelID, m.ID)
}

// messageIDFromKey parses the message id back out of a catalog key.
func messageIDFromKey(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[i+1:]
	}
	return key
}
