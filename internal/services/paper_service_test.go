package services

import (
	"context"
	"testing"
	"time"

	"hadron_scholar_backend/internal/ingest"
	"hadron_scholar_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPaperByExternalID(t *testing.T) {
	db := newTestDB(t)
	papers := NewPaperService(db)

	created := createPaper(t, db, "10.1103/PhysRevD.1.1", "phys_rev_d", "Known paper", time.Now().UTC())

	found, err := papers.FindPaperByExternalID("10.1103/PhysRevD.1.1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := papers.FindPaperByExternalID("10.1103/PhysRevD.9.9")
	require.NoError(t, err)
	assert.Nil(t, missing, "not found is (nil, nil), not an error")
}

func TestGetOrCreateKeyword(t *testing.T) {
	db := newTestDB(t)
	papers := NewPaperService(db)

	first, err := papers.GetOrCreateKeyword("pion")
	require.NoError(t, err)

	second, err := papers.GetOrCreateKeyword("pion")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "no duplicate row for the same name")

	var count int64
	require.NoError(t, db.Model(&models.Keyword{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecentPapersFilters(t *testing.T) {
	db := newTestDB(t)
	papers := NewPaperService(db)
	now := time.Now().UTC()

	createPaper(t, db, "p1", "arxiv", "Pion scattering lengths", now.Add(-1*time.Hour), "pion", "scattering")
	createPaper(t, db, "p2", "phys_rev_d", "Kaon decay widths", now.Add(-2*time.Hour), "kaon", "decay")
	createPaper(t, db, "p3", "arxiv", "Charmonium spectroscopy", now.Add(-3*time.Hour), "charmonium")

	all, err := papers.RecentPapers(50, "", "", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Pion scattering lengths", all[0].Title, "newest first")

	byKeyword, err := papers.RecentPapers(50, "kaon", "", "")
	require.NoError(t, err)
	require.Len(t, byKeyword, 1)
	assert.Equal(t, "Kaon decay widths", byKeyword[0].Title)

	bySource, err := papers.RecentPapers(50, "", "arxiv", "")
	require.NoError(t, err)
	assert.Len(t, bySource, 2)

	bySearch, err := papers.RecentPapers(50, "", "", "charmonium")
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Charmonium spectroscopy", bySearch[0].Title)

	limited, err := papers.RecentPapers(2, "", "", "")
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestPapersSince(t *testing.T) {
	db := newTestDB(t)
	papers := NewPaperService(db)
	now := time.Now().UTC()

	createPaper(t, db, "recent", "arxiv", "Recent paper", now.Add(-2*time.Hour))
	createPaper(t, db, "old", "arxiv", "Old paper", now.Add(-48*time.Hour))

	since, err := papers.PapersSince(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, "Recent paper", since[0].Title)
}

func TestKeywordAndSourceCounts(t *testing.T) {
	db := newTestDB(t)
	papers := NewPaperService(db)
	now := time.Now().UTC()

	createPaper(t, db, "p1", "arxiv", "One", now, "pion")
	createPaper(t, db, "p2", "arxiv", "Two", now, "pion", "kaon")
	createPaper(t, db, "p3", "ptep", "Three", now)

	keywords, err := papers.KeywordCounts()
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, KeywordCount{Name: "pion", PaperCount: 2}, keywords[0])

	sources, err := papers.SourceCounts()
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, SourceCount{Source: "arxiv", PaperCount: 2}, sources[0])
}

// TestPipelineIdempotentAgainstStore runs the real pipeline against the
// gorm-backed store twice and verifies the uniqueness invariant end to end.
func TestPipelineIdempotentAgainstStore(t *testing.T) {
	db := newTestDB(t)
	papers := NewPaperService(db)

	adapter := &staticAdapter{entries: []ingest.RawEntry{
		{
			Title:     "New measurement of pion decay",
			Summary:   "We study kaon and pion interactions.",
			Published: time.Now().UTC().Format(time.RFC3339),
			Link:      "https://arxiv.org/abs/2608.00001",
			FeedID:    "https://arxiv.org/abs/2608.00001",
		},
	}}
	tagger := ingest.NewTagger([]string{"pion", "kaon", "decay"})
	pipeline := ingest.NewPipeline(papers, tagger, []ingest.Adapter{adapter}, 7*24*time.Hour, 100)

	first := pipeline.Run(context.Background())
	require.Empty(t, first.Error)
	require.Equal(t, 1, first.Sources[0].Inserted)

	second := pipeline.Run(context.Background())
	require.Empty(t, second.Error)
	assert.Equal(t, 0, second.Sources[0].Inserted)
	assert.Equal(t, 1, second.Sources[0].Duplicates)

	var count int64
	require.NoError(t, db.Model(&models.Paper{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	stored, err := papers.FindPaperByExternalID("https://arxiv.org/abs/2608.00001")
	require.NoError(t, err)
	require.NotNil(t, stored)

	full, err := papers.GetPaper(stored.ID)
	require.NoError(t, err)
	var names []string
	for _, kw := range full.Keywords {
		names = append(names, kw.Name)
	}
	assert.ElementsMatch(t, []string{"pion", "kaon", "decay"}, names)
}

type staticAdapter struct {
	entries []ingest.RawEntry
}

func (a *staticAdapter) Source() string { return "arxiv" }

func (a *staticAdapter) Fetch(ctx context.Context, lookback time.Duration, maxResults int) ([]ingest.RawEntry, error) {
	return a.entries, nil
}
