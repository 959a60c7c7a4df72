package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdentifierPrecedence(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	paper, ok := Normalize(RawEntry{
		Title:  "A paper",
		DOI:    "10.1103/PhysRevD.1.1",
		FeedID: "feed-id-1",
		Link:   "https://example.org/paper",
	}, "phys_rev_d", now)
	require.True(t, ok)
	assert.Equal(t, "10.1103/PhysRevD.1.1", paper.ExternalID)

	paper, ok = Normalize(RawEntry{
		Title:  "A paper",
		FeedID: "feed-id-1",
		Link:   "https://example.org/paper",
	}, "phys_rev_d", now)
	require.True(t, ok)
	assert.Equal(t, "feed-id-1", paper.ExternalID)

	paper, ok = Normalize(RawEntry{
		Title: "A paper",
		Link:  "https://example.org/paper",
	}, "phys_rev_d", now)
	require.True(t, ok)
	assert.Equal(t, "https://example.org/paper", paper.ExternalID)
}

func TestNormalizeDropsEntryWithoutIdentifier(t *testing.T) {
	_, ok := Normalize(RawEntry{Title: "Orphan entry"}, "arxiv", time.Now())
	assert.False(t, ok)
}

func TestNormalizeJoinsAuthorsAndCategories(t *testing.T) {
	paper, ok := Normalize(RawEntry{
		Title:      "Joint work",
		Link:       "https://example.org/p1",
		Authors:    []string{"A. Author", "B. Author"},
		Categories: []string{"hep-ph", "hep-th"},
	}, "arxiv", time.Now())
	require.True(t, ok)
	assert.Equal(t, "A. Author, B. Author", paper.Authors)
	assert.Equal(t, "hep-ph, hep-th", paper.Categories)
}

func TestNormalizeDateParsing(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", "2026-08-20T10:30:00Z", time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)},
		{"rfc1123z", "Thu, 20 Aug 2026 10:30:00 +0000", time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)},
		{"date only", "2026-08-20", time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{"unparseable falls back to now", "next Tuesday", now},
		{"empty falls back to now", "", now},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paper, ok := Normalize(RawEntry{
				Title:     "Dated entry",
				Link:      "https://example.org/p",
				Published: tt.raw,
			}, "arxiv", now)
			require.True(t, ok, "entries are never dropped for a bad date")
			assert.True(t, paper.PublishedAt.Equal(tt.want), "got %v want %v", paper.PublishedAt, tt.want)
		})
	}
}
