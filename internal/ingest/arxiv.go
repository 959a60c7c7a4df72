package ingest

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hadron_scholar_backend/internal/httputil"

	"golang.org/x/time/rate"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivAdapter queries the arXiv Atom API for recent submissions matching
// the configured categories and keywords.
type ArxivAdapter struct {
	client     *http.Client
	limiter    *rate.Limiter
	categories []string
	keywords   []string
}

// NewArxivAdapter builds the adapter. The limiter enforces the one request
// per three seconds pacing the arXiv API asks for.
func NewArxivAdapter(client *http.Client, categories, keywords []string) *ArxivAdapter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ArxivAdapter{
		client:     client,
		limiter:    rate.NewLimiter(rate.Every(3*time.Second), 1),
		categories: categories,
		keywords:   keywords,
	}
}

func (a *ArxivAdapter) Source() string { return "arxiv" }

// Fetch queries the API sorted by submission date descending and returns
// entries published within the lookback window.
func (a *ArxivAdapter) Fetch(ctx context.Context, lookback time.Duration, maxResults int) ([]RawEntry, error) {
	query := a.buildQuery()
	if query == "" {
		return nil, fmt.Errorf("no arXiv categories or keywords configured")
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating arXiv request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, a.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	cutoff := time.Now().UTC().Add(-lookback)
	var entries []RawEntry
	for _, entry := range feed.Entries {
		// Entries with a malformed date pass through; the normalizer
		// substitutes the ingestion time.
		if published, err := time.Parse(time.RFC3339, entry.Published); err == nil && published.Before(cutoff) {
			continue
		}

		var authors []string
		for _, author := range entry.Authors {
			authors = append(authors, strings.TrimSpace(author.Name))
		}

		var categories []string
		for _, cat := range entry.Categories {
			categories = append(categories, cat.Term)
		}

		entries = append(entries, RawEntry{
			Title:      strings.TrimSpace(entry.Title),
			Summary:    strings.TrimSpace(entry.Summary),
			Authors:    authors,
			Published:  entry.Published,
			Link:       entry.pdfLink(),
			FeedID:     entry.ID,
			DOI:        strings.TrimSpace(entry.DOI),
			Categories: categories,
		})
	}
	return entries, nil
}

// buildQuery produces e.g.
// (cat:hep-ph OR cat:hep-th) AND (all:hadron OR all:quark).
func (a *ArxivAdapter) buildQuery() string {
	var catParts, kwParts []string
	for _, cat := range a.categories {
		catParts = append(catParts, "cat:"+cat)
	}
	for _, kw := range a.keywords {
		kwParts = append(kwParts, "all:"+kw)
	}

	switch {
	case len(catParts) > 0 && len(kwParts) > 0:
		return fmt.Sprintf("(%s) AND (%s)", strings.Join(catParts, " OR "), strings.Join(kwParts, " OR "))
	case len(catParts) > 0:
		return strings.Join(catParts, " OR ")
	case len(kwParts) > 0:
		return strings.Join(kwParts, " OR ")
	}
	return ""
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	DOI        string          `xml:"doi"`
	Authors    []arxivAuthor   `xml:"author"`
	Links      []arxivLink     `xml:"link"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// pdfLink prefers the PDF link, falling back to the abstract page.
func (e arxivEntry) pdfLink() string {
	for _, link := range e.Links {
		if link.Title == "pdf" {
			return link.Href
		}
	}
	return e.ID
}
