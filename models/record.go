package models

// Attachment is one buffered image belonging to a submission. Data holds
// the raw bytes base64-encoded so the catalog stays a plain JSON document.
type Attachment struct {
	Name string `json:"name"`
	Data string `json:"buffer"`
}

// SubmissionRecord is one durable catalog entry, keyed by the message's
// jump URL. Records are only ever created for messages that carry a title;
// Reactions is refreshed on every sync that can still reach the source
// message, and Attachments is populated once and never re-fetched.
type SubmissionRecord struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Reactions   int          `json:"reactions"`
	URL         string       `json:"url"`
	Attachments []Attachment `json:"attachments"`
	Timestamp   int64        `json:"timestamp"` // original creation time, unix milliseconds
}

// Catalog maps a submission key (jump URL) to its record. One catalog
// exists per (guild, pipeline) pair.
type Catalog map[string]SubmissionRecord
