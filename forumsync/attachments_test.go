package forumsync

import (
	"encoding/base64"
	"io"
	"testing"

	"github.com/bwmarrin/discordgo"

	"champolis/models"
)

func TestDownloadImages_FiltersAndEncodes(t *testing.T) {
	gw := newFakeGateway()
	gw.files["http://cdn/cover.png"] = []byte("png-bytes")
	gw.files["http://cdn/notes.txt"] = []byte("text")

	msg := &discordgo.Message{
		Attachments: []*discordgo.MessageAttachment{
			{Filename: "cover.png", ContentType: "image/png", URL: "http://cdn/cover.png"},
			{Filename: "notes.txt", ContentType: "text/plain", URL: "http://cdn/notes.txt"},
		},
	}

	files := DownloadImages(gw, msg)
	if len(files) != 1 {
		t.Fatalf("DownloadImages() returned %d attachments, want 1", len(files))
	}
	if files[0].Name != "cover.png" {
		t.Errorf("Name = %q, want %q", files[0].Name, "cover.png")
	}
	want := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	if files[0].Data != want {
		t.Errorf("Data = %q, want %q", files[0].Data, want)
	}
}

func TestDownloadImages_FailureSkipsOnlyThatAttachment(t *testing.T) {
	gw := newFakeGateway()
	gw.files["http://cdn/a.png"] = []byte("a")
	gw.failDownload["http://cdn/b.png"] = true
	gw.files["http://cdn/c.png"] = []byte("c")

	msg := &discordgo.Message{
		Attachments: []*discordgo.MessageAttachment{
			{Filename: "a.png", ContentType: "image/png", URL: "http://cdn/a.png"},
			{Filename: "b.png", ContentType: "image/png", URL: "http://cdn/b.png"},
			{Filename: "c.png", ContentType: "image/png", URL: "http://cdn/c.png"},
		},
	}

	files := DownloadImages(gw, msg)
	if len(files) != 2 {
		t.Fatalf("DownloadImages() returned %d attachments, want 2", len(files))
	}
	// Order follows the message's attachment ordering.
	if files[0].Name != "a.png" || files[1].Name != "c.png" {
		t.Errorf("got order [%s, %s], want [a.png, c.png]", files[0].Name, files[1].Name)
	}
}

func TestFilesFrom_RoundTrip(t *testing.T) {
	stored := []models.Attachment{
		{Name: "cover.png", Data: base64.StdEncoding.EncodeToString([]byte("payload"))},
	}

	files := FilesFrom(stored)
	if len(files) != 1 {
		t.Fatalf("FilesFrom() returned %d files, want 1", len(files))
	}
	if files[0].Name != "cover.png" {
		t.Errorf("Name = %q, want %q", files[0].Name, "cover.png")
	}
	data, err := io.ReadAll(files[0].Reader)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("bytes = %q, want %q", data, "payload")
	}
}

func TestFilesFrom_DropsUndecodableEntries(t *testing.T) {
	stored := []models.Attachment{
		{Name: "bad.png", Data: "%%% not base64 %%%"},
		{Name: "good.png", Data: base64.StdEncoding.EncodeToString([]byte("ok"))},
	}

	files := FilesFrom(stored)
	if len(files) != 1 {
		t.Fatalf("FilesFrom() returned %d files, want 1", len(files))
	}
	if files[0].Name != "good.png" {
		t.Errorf("Name = %q, want %q", files[0].Name, "good.png")
	}
}
