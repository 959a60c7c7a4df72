// Package ingest implements the paper ingestion pipeline: source adapters
// feed raw entries through normalization, deduplication by external id and
// keyword tagging into the store.
package ingest

import (
	"context"
	"time"

	"hadron_scholar_backend/internal/models"

	"github.com/rs/zerolog/log"
)

// RawEntry is a source-agnostic view of one feed entry before normalization.
type RawEntry struct {
	Title      string
	Summary    string
	Authors    []string
	Published  string
	Link       string
	FeedID     string
	DOI        string
	Categories []string
	Journal    string
}

// Adapter fetches raw entries from one remote source. Implementations must
// not write to the store; they only read from the network.
type Adapter interface {
	Source() string
	Fetch(ctx context.Context, lookback time.Duration, maxResults int) ([]RawEntry, error)
}

// Store is the persistence surface the pipeline needs. FindPaperByExternalID
// returns (nil, nil) when no record exists.
type Store interface {
	FindPaperByExternalID(externalID string) (*models.Paper, error)
	CreatePaper(paper *models.Paper) error
	GetOrCreateKeyword(name string) (*models.Keyword, error)
	Transaction(fn func(tx Store) error) error
}

// SourceResult reports the outcome of one adapter within a run. A fetch
// failure is recorded here instead of aborting the run.
type SourceResult struct {
	Source     string `json:"source"`
	Fetched    int    `json:"fetched"`
	Inserted   int    `json:"inserted"`
	Duplicates int    `json:"duplicates"`
	Dropped    int    `json:"dropped"`
	Error      string `json:"error,omitempty"`
}

// Report aggregates per-source results for one ingestion run. Papers holds
// both newly inserted and already known records, in fetch order.
type Report struct {
	Sources []SourceResult  `json:"sources"`
	Papers  []*models.Paper `json:"-"`
	Error   string          `json:"error,omitempty"`
}

// Pipeline runs adapters sequentially and persists normalized records inside
// a single store transaction per run.
type Pipeline struct {
	store      Store
	tagger     *Tagger
	adapters   []Adapter
	lookback   time.Duration
	maxResults int
	now        func() time.Time
}

func NewPipeline(store Store, tagger *Tagger, adapters []Adapter, lookback time.Duration, maxResults int) *Pipeline {
	return &Pipeline{
		store:      store,
		tagger:     tagger,
		adapters:   adapters,
		lookback:   lookback,
		maxResults: maxResults,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one ingestion pass. A failing adapter contributes zero entries
// and an error string in its SourceResult; only store failures roll back the
// transaction and surface in Report.Error.
func (p *Pipeline) Run(ctx context.Context) Report {
	var report Report

	err := p.store.Transaction(func(tx Store) error {
		for _, adapter := range p.adapters {
			result := SourceResult{Source: adapter.Source()}

			entries, err := adapter.Fetch(ctx, p.lookback, p.maxResults)
			if err != nil {
				log.Error().Err(err).Str("source", adapter.Source()).Msg("fetch failed, skipping source")
				result.Error = err.Error()
				report.Sources = append(report.Sources, result)
				continue
			}
			result.Fetched = len(entries)

			for _, raw := range entries {
				paper, ok := Normalize(raw, adapter.Source(), p.now())
				if !ok {
					result.Dropped++
					continue
				}

				existing, err := tx.FindPaperByExternalID(paper.ExternalID)
				if err != nil {
					return err
				}
				if existing != nil {
					result.Duplicates++
					report.Papers = append(report.Papers, existing)
					continue
				}

				for _, name := range p.tagger.Match(paper.Title, paper.Abstract) {
					keyword, err := tx.GetOrCreateKeyword(name)
					if err != nil {
						return err
					}
					paper.Keywords = append(paper.Keywords, *keyword)
				}

				if err := tx.CreatePaper(paper); err != nil {
					return err
				}
				result.Inserted++
				report.Papers = append(report.Papers, paper)
			}

			report.Sources = append(report.Sources, result)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("ingestion transaction failed")
		report.Error = err.Error()
	}

	return report
}
