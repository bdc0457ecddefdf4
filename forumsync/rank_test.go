package forumsync

import (
	"testing"

	"champolis/models"
)

func rec(url string, reactions int, timestamp int64) models.SubmissionRecord {
	return models.SubmissionRecord{
		Title:     "t-" + url,
		URL:       url,
		Reactions: reactions,
		Timestamp: timestamp,
	}
}

func TestRank_ByReactionsDescending(t *testing.T) {
	cat := models.Catalog{
		"a": rec("a", 2, 100),
		"b": rec("b", 50, 200),
		"c": rec("c", 7, 300),
	}

	records := Rank(cat)
	want := []string{"b", "c", "a"}
	for i, url := range want {
		if records[i].URL != url {
			t.Fatalf("records[%d].URL = %q, want %q", i, records[i].URL, url)
		}
	}
}

func TestRank_TieBreakOlderFirst(t *testing.T) {
	cat := models.Catalog{
		"new": rec("new", 5, 2000),
		"old": rec("old", 5, 1000),
		"top": rec("top", 9, 3000),
	}

	records := Rank(cat)
	want := []string{"top", "old", "new"}
	for i, url := range want {
		if records[i].URL != url {
			t.Fatalf("records[%d].URL = %q, want %q", i, records[i].URL, url)
		}
	}
}

func TestRank_DeterministicAcrossRuns(t *testing.T) {
	// Equal counts and equal timestamps still produce a fixed order, and
	// map iteration order must not leak into the result.
	cat := models.Catalog{}
	for _, url := range []string{"e", "c", "a", "d", "b"} {
		cat[url] = rec(url, 3, 500)
	}

	first := Rank(cat)
	for run := 0; run < 10; run++ {
		again := Rank(cat)
		for i := range first {
			if again[i].URL != first[i].URL {
				t.Fatalf("run %d: records[%d].URL = %q, want %q", run, i, again[i].URL, first[i].URL)
			}
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if records := Rank(models.Catalog{}); len(records) != 0 {
		t.Fatalf("Rank(empty) returned %d records, want 0", len(records))
	}
}
