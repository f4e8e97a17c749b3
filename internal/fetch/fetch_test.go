// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/groundwork/econ-digest/pkg/types"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>Markups and Inflation</title>
      <link>https://example.org/papers/1</link>
      <description>&lt;p&gt;Evidence on rising markups.&lt;/p&gt;</description>
      <pubDate>Thu, 20 Aug 2026 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Housing Supply Constraints</title>
      <link>https://example.org/papers/2</link>
      <description>Zoning and rent growth.</description>
    </item>
  </channel>
</rss>`

func testCfg() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "econ-digest-test/0.1",
		},
		MaxEntries: 50,
	}
}

func rssSource(id, endpoint string) types.Source {
	return types.Source{ID: id, Label: id, Endpoint: endpoint, Parser: types.ParserRSS}
}

func TestFetchSourceRSS(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, sampleRSS)
	}))
	defer ts.Close()

	f := New(ts.Client())
	entries, err := f.FetchSource(context.Background(), rssSource("test", ts.URL), testCfg())
	if err != nil {
		t.Fatalf("FetchSource() error = %v", err)
	}
	if gotUA != "econ-digest-test/0.1" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	first := entries[0]
	if first.Title != "Markups and Inflation" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Link != "https://example.org/papers/1" {
		t.Errorf("Link = %q", first.Link)
	}
	if first.SourceID != "test" {
		t.Errorf("SourceID = %q, want test", first.SourceID)
	}
	if first.PublishedAt.IsZero() {
		t.Error("PublishedAt is zero, want parsed pubDate")
	}
	if !entries[1].PublishedAt.IsZero() {
		t.Error("second entry has no pubDate, want zero time")
	}
}

func TestFetchSourceHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := New(ts.Client())
	_, err := f.FetchSource(context.Background(), rssSource("broken", ts.URL), testCfg())
	if err == nil {
		t.Fatal("FetchSource() = nil error, want HTTP error")
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error = %v, want HTTP 500 mention", err)
	}
}

func TestFetchSourceMalformedDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "this is not a feed")
	}))
	defer ts.Close()

	f := New(ts.Client())
	if _, err := f.FetchSource(context.Background(), rssSource("junk", ts.URL), testCfg()); err == nil {
		t.Fatal("FetchSource() = nil error, want parse error")
	}
}

func TestFetchSourceUnknownParser(t *testing.T) {
	f := New(nil)
	src := types.Source{ID: "x", Endpoint: "https://example.org", Parser: "soap"}
	if _, err := f.FetchSource(context.Background(), src, testCfg()); err == nil {
		t.Fatal("FetchSource() = nil error, want unknown parser error")
	}
}

func TestFetchSourceMaxEntries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleRSS)
	}))
	defer ts.Close()

	cfg := testCfg()
	cfg.MaxEntries = 1

	f := New(ts.Client())
	entries, err := f.FetchSource(context.Background(), rssSource("capped", ts.URL), cfg)
	if err != nil {
		t.Fatalf("FetchSource() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleRSS)
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	sources := []types.Source{
		rssSource("good", good.URL),
		rssSource("bad", bad.URL),
	}

	var warnings strings.Builder
	f := New(nil)
	res := f.FetchAll(context.Background(), sources, testCfg(), &warnings)

	if len(res.Entries) != 2 {
		t.Errorf("len(Entries) = %d, want 2 from the good source", len(res.Entries))
	}
	if len(res.Failures) != 1 {
		t.Fatalf("len(Failures) = %d, want 1", len(res.Failures))
	}
	if res.Failures[0].SourceID != "bad" {
		t.Errorf("failed source = %q, want bad", res.Failures[0].SourceID)
	}
	if !strings.Contains(warnings.String(), "warning: source bad failed") {
		t.Errorf("warnings = %q, want a bad-source warning", warnings.String())
	}
}

func TestFetchAllPreservesRegistryOrder(t *testing.T) {
	feedFor := func(title, link string) string {
		return `<?xml version="1.0"?><rss version="2.0"><channel><title>f</title>` +
			`<item><title>` + title + `</title><link>` + link + `</link></item></channel></rss>`
	}

	// Second source responds instantly, first after a delay; collected
	// entries must still come out in registry order.
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(50 * time.Millisecond)
		io.WriteString(w, feedFor("Slow Paper", "https://example.org/slow"))
	}))
	defer slow.Close()
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, feedFor("Fast Paper", "https://example.org/fast"))
	}))
	defer fast.Close()

	sources := []types.Source{
		rssSource("slow", slow.URL),
		rssSource("fast", fast.URL),
	}

	f := New(nil)
	res := f.FetchAll(context.Background(), sources, testCfg(), io.Discard)
	if len(res.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(res.Entries))
	}
	if res.Entries[0].SourceID != "slow" || res.Entries[1].SourceID != "fast" {
		t.Errorf("entry order = %s, %s; want registry order slow, fast",
			res.Entries[0].SourceID, res.Entries[1].SourceID)
	}
}

func TestFetchAllAllSourcesFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	sources := []types.Source{rssSource("a", ts.URL), rssSource("b", ts.URL)}
	f := New(nil)
	res := f.FetchAll(context.Background(), sources, testCfg(), io.Discard)
	if len(res.Entries) != 0 {
		t.Errorf("len(Entries) = %d, want 0", len(res.Entries))
	}
	if len(res.Failures) != 2 {
		t.Errorf("len(Failures) = %d, want 2", len(res.Failures))
	}
}
