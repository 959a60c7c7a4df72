package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arxivFixtureTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/2608.00001v1</id>
    <title>Pion form factors from lattice QCD</title>
    <summary>We compute the pion electromagnetic form factor.</summary>
    <published>%s</published>
    <author><name>A. Author</name></author>
    <author><name>B. Author</name></author>
    <arxiv:doi>10.48550/arXiv.2608.00001</arxiv:doi>
    <link href="http://arxiv.org/abs/2608.00001v1" rel="alternate" type="text/html"/>
    <link href="http://arxiv.org/pdf/2608.00001v1" rel="related" title="pdf" type="application/pdf"/>
    <category term="hep-lat"/>
    <category term="hep-ph"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2501.00002v1</id>
    <title>An old submission</title>
    <summary>Published long before the lookback window.</summary>
    <published>%s</published>
    <author><name>C. Author</name></author>
  </entry>
</feed>`

func arxivFixture() string {
	recent := time.Now().UTC().Add(-24 * time.Hour).Format(time.RFC3339)
	old := time.Now().UTC().Add(-90 * 24 * time.Hour).Format(time.RFC3339)
	return fmt.Sprintf(arxivFixtureTemplate, recent, old)
}

func newArxivTestAdapter(t *testing.T, handler http.HandlerFunc) *ArxivAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	previous := arxivAPIBase
	arxivAPIBase = server.URL
	t.Cleanup(func() { arxivAPIBase = previous })

	adapter := NewArxivAdapter(server.Client(), []string{"hep-ph", "hep-lat"}, []string{"hadron", "quark"})
	// No pacing against the local test server.
	adapter.limiter.SetLimit(1e6)
	return adapter
}

func TestArxivFetchParsesEntries(t *testing.T) {
	var gotQuery string
	adapter := newArxivTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		w.Write([]byte(arxivFixture()))
	})

	entries, err := adapter.Fetch(context.Background(), 7*24*time.Hour, 100)
	require.NoError(t, err)

	assert.Equal(t, "(cat:hep-ph OR cat:hep-lat) AND (all:hadron OR all:quark)", gotQuery)

	require.Len(t, entries, 1, "entries older than the lookback window are skipped")
	entry := entries[0]
	assert.Equal(t, "Pion form factors from lattice QCD", entry.Title)
	assert.Equal(t, []string{"A. Author", "B. Author"}, entry.Authors)
	assert.Equal(t, "10.48550/arXiv.2608.00001", entry.DOI)
	assert.Equal(t, "http://arxiv.org/abs/2608.00001v1", entry.FeedID)
	assert.Equal(t, "http://arxiv.org/pdf/2608.00001v1", entry.Link, "pdf link preferred")
	assert.Equal(t, []string{"hep-lat", "hep-ph"}, entry.Categories)
}

func TestArxivFetchServerError(t *testing.T) {
	adapter := newArxivTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := adapter.Fetch(context.Background(), 7*24*time.Hour, 100)
	assert.Error(t, err)
}

func TestArxivFetchMalformedResponse(t *testing.T) {
	adapter := newArxivTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	})

	_, err := adapter.Fetch(context.Background(), 7*24*time.Hour, 100)
	assert.Error(t, err)
}
