package ingest

import (
	"strings"
	"time"

	"hadron_scholar_backend/internal/models"
)

// dateLayouts covers the formats seen across arXiv Atom and journal RSS
// feeds. Tried in order.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Normalize maps a raw entry onto a canonical paper record. The external id
// is resolved as DOI, then feed id, then link; an entry with none of the
// three is dropped (ok == false). An unparseable published date falls back
// to the ingestion time, never causing a drop.
func Normalize(raw RawEntry, source string, now time.Time) (paper *models.Paper, ok bool) {
	externalID := raw.DOI
	if externalID == "" {
		externalID = raw.FeedID
	}
	if externalID == "" {
		externalID = raw.Link
	}
	if externalID == "" {
		return nil, false
	}

	return &models.Paper{
		ExternalID:  externalID,
		Source:      source,
		Title:       strings.TrimSpace(raw.Title),
		Authors:     strings.Join(raw.Authors, ", "),
		Abstract:    strings.TrimSpace(raw.Summary),
		Categories:  strings.Join(raw.Categories, ", "),
		PublishedAt: parseDate(raw.Published, now),
		URL:         raw.Link,
		DOI:         raw.DOI,
		Journal:     raw.Journal,
	}, true
}

func parseDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now
}
