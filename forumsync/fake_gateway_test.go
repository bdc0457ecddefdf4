package forumsync

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

var errTransient = errors.New("connection reset")

type createdThread struct {
	forumID string
	title   string
	content string
	files   int
}

// fakeGateway is an in-memory Gateway for orchestrator tests. Messages
// per channel are held newest first, mirroring the platform's paging
// order. ops records destination mutations in call order.
type fakeGateway struct {
	channels     map[string]*discordgo.Channel
	messages     map[string][]*discordgo.Message // channelID -> newest first
	byID         map[string]*discordgo.Message
	gone         map[string]bool  // messageID -> confirmed removed
	failFetch    map[string]error // messageID -> transient failure
	threads      map[string][]*discordgo.Channel
	failDelete   map[string]bool // threadID -> deletion fails
	failCreate   map[string]bool // thread title -> creation fails
	files        map[string][]byte // attachment URL -> bytes
	failDownload map[string]bool
	downloads    map[string]int

	ops     []string
	created []createdThread
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		channels: map[string]*discordgo.Channel{
			"src":   {ID: "src", GuildID: "g1", Type: discordgo.ChannelTypeGuildText},
			"forum": {ID: "forum", GuildID: "g1", Type: discordgo.ChannelTypeGuildForum},
		},
		messages:     make(map[string][]*discordgo.Message),
		byID:         make(map[string]*discordgo.Message),
		gone:         make(map[string]bool),
		failFetch:    make(map[string]error),
		threads:      make(map[string][]*discordgo.Channel),
		failDelete:   make(map[string]bool),
		failCreate:   make(map[string]bool),
		files:        make(map[string][]byte),
		failDownload: make(map[string]bool),
		downloads:    make(map[string]int),
	}
}

// addMessage appends m as the newest message of its channel.
func (f *fakeGateway) addMessage(m *discordgo.Message) {
	f.messages[m.ChannelID] = append([]*discordgo.Message{m}, f.messages[m.ChannelID]...)
	f.byID[m.ID] = m
}

func (f *fakeGateway) FetchChannel(id string, kind discordgo.ChannelType) (*discordgo.Channel, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, fmt.Errorf("channel %s: %w", id, ErrChannelNotFound)
	}
	if ch.Type != kind {
		return nil, fmt.Errorf("channel %s: %w", id, ErrWrongChannelKind)
	}
	return ch, nil
}

func (f *fakeGateway) FetchMessagesPage(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	msgs := f.messages[channelID]
	start := 0
	if beforeID != "" {
		start = len(msgs)
		for i, m := range msgs {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(msgs) {
		end = len(msgs)
	}
	if start >= len(msgs) {
		return nil, nil
	}
	return msgs[start:end], nil
}

func (f *fakeGateway) FetchMessage(channelID, messageID string) (*discordgo.Message, error) {
	if err, ok := f.failFetch[messageID]; ok {
		return nil, err
	}
	if f.gone[messageID] {
		return nil, fmt.Errorf("message %s: %w", messageID, ErrMessageGone)
	}
	msg, ok := f.byID[messageID]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", messageID, ErrMessageGone)
	}
	return msg, nil
}

func (f *fakeGateway) ListForumThreads(forum *discordgo.Channel) ([]*discordgo.Channel, error) {
	return f.threads[forum.ID], nil
}

func (f *fakeGateway) DeleteThread(threadID string) error {
	if f.failDelete[threadID] {
		return errTransient
	}
	f.ops = append(f.ops, "delete:"+threadID)
	return nil
}

func (f *fakeGateway) CreateForumThread(forumID, title, content string, files []*discordgo.File) error {
	if f.failCreate[title] {
		return errTransient
	}
	f.ops = append(f.ops, "create:"+title)
	f.created = append(f.created, createdThread{
		forumID: forumID,
		title:   title,
		content: content,
		files:   len(files),
	})
	return nil
}

func (f *fakeGateway) DownloadAttachment(url string) ([]byte, error) {
	f.downloads[url]++
	if f.failDownload[url] {
		return nil, errTransient
	}
	data, ok := f.files[url]
	if !ok {
		return nil, errTransient
	}
	return data, nil
}

func sourceMsg(id, content string, reactions int, ts time.Time) *discordgo.Message {
	m := &discordgo.Message{
		ID:        id,
		ChannelID: "src",
		Content:   content,
		Timestamp: ts,
	}
	if reactions > 0 {
		m.Reactions = []*discordgo.MessageReactions{
			{Count: reactions, Emoji: &discordgo.Emoji{Name: "✅"}},
		}
	}
	return m
}
