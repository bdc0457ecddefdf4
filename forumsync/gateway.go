package forumsync

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Typed gateway outcomes. ErrMessageGone means the API affirmatively
// reported the message no longer exists; anything else is transient.
var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrWrongChannelKind = errors.New("channel has unexpected kind")
	ErrMessageGone      = errors.New("message no longer exists")
)

// Gateway is the slice of the chat platform the sync pipelines touch.
// *discordGateway is the production implementation; tests substitute
// fakes.
type Gateway interface {
	// FetchChannel resolves a channel by id and validates its kind.
	FetchChannel(id string, kind discordgo.ChannelType) (*discordgo.Channel, error)
	// FetchMessagesPage returns up to limit messages, newest first,
	// optionally starting before a message id.
	FetchMessagesPage(channelID string, limit int, beforeID string) ([]*discordgo.Message, error)
	// FetchMessage retrieves a single message, failing with ErrMessageGone
	// when the platform confirms it was removed.
	FetchMessage(channelID, messageID string) (*discordgo.Message, error)
	// ListForumThreads enumerates a forum's threads, active and archived.
	ListForumThreads(forum *discordgo.Channel) ([]*discordgo.Channel, error)
	DeleteThread(threadID string) error
	CreateForumThread(forumID, title, content string, files []*discordgo.File) error
	DownloadAttachment(url string) ([]byte, error)
}

type discordGateway struct {
	s *discordgo.Session
}

// NewGateway wraps a Discord session as a Gateway.
func NewGateway(s *discordgo.Session) Gateway {
	return &discordGateway{s: s}
}

func (g *discordGateway) FetchChannel(id string, kind discordgo.ChannelType) (*discordgo.Channel, error) {
	ch, err := g.s.Channel(id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("channel %s: %w", id, ErrChannelNotFound)
		}
		return nil, fmt.Errorf("failed to fetch channel %s: %w", id, err)
	}
	if ch.Type != kind {
		return nil, fmt.Errorf("channel %s has type %d, want %d: %w", id, ch.Type, kind, ErrWrongChannelKind)
	}
	return ch, nil
}

func (g *discordGateway) FetchMessagesPage(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	return g.s.ChannelMessages(channelID, limit, beforeID, "", "")
}

func (g *discordGateway) FetchMessage(channelID, messageID string) (*discordgo.Message, error) {
	msg, err := g.s.ChannelMessage(channelID, messageID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("message %s in channel %s: %w", messageID, channelID, ErrMessageGone)
		}
		return nil, err
	}
	return msg, nil
}

// ListForumThreads collects active threads (via the guild-wide active
// list, filtered by parent) and archived threads (paginated by archive
// timestamp). A pagination failure returns what was collected so far
// along with the error.
func (g *discordGateway) ListForumThreads(forum *discordgo.Channel) ([]*discordgo.Channel, error) {
	var all []*discordgo.Channel
	seen := make(map[string]bool)

	active, err := g.s.GuildThreadsActive(forum.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active threads for guild %s: %w", forum.GuildID, err)
	}
	for _, thread := range active.Threads {
		if thread.ParentID == forum.ID && !seen[thread.ID] {
			all = append(all, thread)
			seen[thread.ID] = true
		}
	}

	archived, err := collectArchivedThreads(func(before *time.Time) (*discordgo.ThreadsList, error) {
		return g.s.ThreadsArchived(forum.ID, before, 100)
	})
	for _, thread := range archived {
		if !seen[thread.ID] {
			all = append(all, thread)
			seen[thread.ID] = true
		}
	}
	if err != nil {
		return all, fmt.Errorf("failed to list archived threads for channel %s: %w", forum.ID, err)
	}
	return all, nil
}

// collectArchivedThreads pages through archived threads. The API expects
// the archive timestamp of the last thread as the next cursor; a page
// whose threads all lack metadata leaves the cursor in place, so the loop
// stops whenever the cursor fails to advance rather than refetching the
// same page. A mid-pagination failure returns what was collected so far.
func collectArchivedThreads(fetch func(before *time.Time) (*discordgo.ThreadsList, error)) ([]*discordgo.Channel, error) {
	var all []*discordgo.Channel
	var before *time.Time

	for {
		archived, err := fetch(before)
		if err != nil {
			return all, err
		}
		if len(archived.Threads) == 0 {
			break
		}
		all = append(all, archived.Threads...)

		prev := before
		for _, thread := range archived.Threads {
			if thread.ThreadMetadata != nil {
				t := thread.ThreadMetadata.ArchiveTimestamp
				before = &t
			}
		}
		if !archived.HasMore || before == prev {
			break
		}
	}
	return all, nil
}

func (g *discordGateway) DeleteThread(threadID string) error {
	_, err := g.s.ChannelDelete(threadID)
	return err
}

func (g *discordGateway) CreateForumThread(forumID, title, content string, files []*discordgo.File) error {
	name := title
	if runes := []rune(name); len(runes) > 100 {
		// Forum thread names are capped at 100 characters.
		name = string(runes[:100])
	}

	_, err := g.s.ForumThreadStartComplex(forumID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: 10080,
	}, &discordgo.MessageSend{
		Content: content,
		Files:   files,
	})
	return err
}

func (g *discordGateway) DownloadAttachment(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s fetching attachment", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// isNotFound reports whether err is the API affirmatively saying the
// resource does not exist, as opposed to a transient failure.
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage:
			return true
		}
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
