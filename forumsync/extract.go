package forumsync

import (
	"regexp"
	"strings"
)

// titleLine matches a submission label ("Title", "Titre", or "العنوان",
// case-insensitive) preceded only by non-letter characters, followed by a
// colon and at least one non-whitespace character.
var titleLine = regexp.MustCompile(`(?i)^[^\p{L}]*(?:title|titre|العنوان)\s*:\s*(\S.*)$`)

// titleScanWindow is how many leading lines of a message are scanned for
// a title label.
const titleScanWindow = 4

// ExtractFields locates a labeled title line among the first few lines of
// a message. The first matching line wins; title is the trimmed text after
// the colon, description is everything strictly after that line, joined
// with newlines and left unstripped. ok is false when no line in the
// scanned window carries a label.
func ExtractFields(content string) (title, description string, ok bool) {
	lines := strings.Split(content, "\n")

	limit := titleScanWindow
	if len(lines) < limit {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		m := titleLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		return strings.TrimSpace(m[1]), strings.Join(lines[i+1:], "\n"), true
	}
	return "", "", false
}

// HasTitle reports whether content carries a labeled title line. The
// message listener uses this to decide whether a new message warrants a
// sync run.
func HasTitle(content string) bool {
	_, _, ok := ExtractFields(content)
	return ok
}
