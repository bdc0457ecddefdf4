package forumsync

import (
	"bytes"
	"encoding/base64"
	"log"
	"strings"

	"champolis/models"

	"github.com/bwmarrin/discordgo"
)

// DownloadImages fetches every image attachment on a message and returns
// them base64-encoded for the catalog. A failed download skips that
// attachment only; order follows the message's own attachment ordering.
func DownloadImages(gw Gateway, msg *discordgo.Message) []models.Attachment {
	var files []models.Attachment

	for _, a := range msg.Attachments {
		if a == nil || !strings.HasPrefix(a.ContentType, "image") {
			continue
		}
		data, err := gw.DownloadAttachment(a.URL)
		if err != nil {
			log.Printf("[ERROR] Failed to download attachment %s: %v", a.Filename, err)
			continue
		}
		files = append(files, models.Attachment{
			Name: a.Filename,
			Data: base64.StdEncoding.EncodeToString(data),
		})
	}
	return files
}

// FilesFrom re-materializes stored attachments as uploadable files.
// Entries that no longer decode are dropped with a log line.
func FilesFrom(attachments []models.Attachment) []*discordgo.File {
	var files []*discordgo.File

	for _, a := range attachments {
		data, err := base64.StdEncoding.DecodeString(a.Data)
		if err != nil {
			log.Printf("[ERROR] Failed to decode stored attachment %s: %v", a.Name, err)
			continue
		}
		files = append(files, &discordgo.File{
			Name:   a.Name,
			Reader: bytes.NewReader(data),
		})
	}
	return files
}
