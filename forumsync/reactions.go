package forumsync

import "github.com/bwmarrin/discordgo"

// Approval emoji. Either one counts; communities migrated from ✅ to ❤️
// at some point and both are still in use.
const (
	emojiCheckmark = "✅"
	emojiHeart     = "❤️"
)

// ApprovalCount returns the tally of the approval reaction on a message,
// or 0 when neither recognized emoji is present.
func ApprovalCount(msg *discordgo.Message) int {
	if msg == nil {
		return 0
	}
	for _, r := range msg.Reactions {
		if r == nil || r.Emoji == nil {
			continue
		}
		if r.Emoji.Name == emojiCheckmark || r.Emoji.Name == emojiHeart {
			return r.Count
		}
	}
	return 0
}
