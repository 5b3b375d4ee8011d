package parse

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wwdctools/wwdc-parser/internal/fetch"
	"github.com/wwdctools/wwdc-parser/pkg/types"
)

// fakeIndex records Put calls so pipeline tests can assert indexing.
type fakeIndex struct {
	pages []*types.Page
	err   error
}

func (f *fakeIndex) Put(_ context.Context, page *types.Page, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.pages = append(f.pages, page)
	return nil
}

func newVideoServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/videos/"):
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, sampleVideoHTML)
		case strings.HasPrefix(r.URL.Path, "/docs/"):
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, sampleDocumentHTML)
		default:
			http.NotFound(w, r)
		}
	}))
}

func testFetcher() *fetch.Fetcher {
	return fetch.New(types.FetchConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 10 * time.Second},
		RateLimit:  1000,
	})
}

func TestParsePageVideo(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	dir := t.TempDir()
	idx := &fakeIndex{}
	p := NewPipeline(testFetcher(), nil, idx, types.ParseConfig{
		ContentType: types.ContentVideo,
		OutDir:      dir,
	})

	var buf bytes.Buffer
	page, skipped, err := p.ParsePage(context.Background(), ts.URL+"/videos/10148/", &buf)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if skipped {
		t.Error("expected parse, got skipped")
	}
	if page.Title != "Meet SwiftUI" {
		t.Errorf("page.Title = %q, want %q", page.Title, "Meet SwiftUI")
	}
	if page.Slug != "meet_swiftui" {
		t.Errorf("page.Slug = %q, want %q", page.Slug, "meet_swiftui")
	}

	outPath := filepath.Join(dir, "wwdc_video_meet_swiftui.md")
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		t.Error("output should start with frontmatter")
	}
	if !strings.Contains(content, "# Meet SwiftUI") {
		t.Error("output should contain the title heading")
	}
	if !strings.Contains(content, "## Overview") {
		t.Error("output should contain the overview section")
	}
	if !strings.Contains(content, "## Transcript") {
		t.Error("output should contain the transcript section")
	}

	if len(idx.pages) != 1 {
		t.Fatalf("len(index pages) = %d, want 1", len(idx.pages))
	}
	if idx.pages[0].OutputPath != outPath {
		t.Errorf("indexed OutputPath = %q, want %q", idx.pages[0].OutputPath, outPath)
	}

	if !strings.Contains(buf.String(), "parsed:") {
		t.Error("output should contain 'parsed:'")
	}
}

func TestParsePageDocument(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	dir := t.TempDir()
	// Renderer forced to static: no Chrome in tests.
	p := NewPipeline(testFetcher(), nil, nil, types.ParseConfig{
		ContentType: types.ContentDocument,
		Renderer:    types.RendererStatic,
		OutDir:      dir,
	})

	var buf bytes.Buffer
	page, _, err := p.ParsePage(context.Background(), ts.URL+"/docs/swiftui", &buf)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if page.ContentType != types.ContentDocument {
		t.Errorf("page.ContentType = %q, want document", page.ContentType)
	}

	data, err := os.ReadFile(filepath.Join(dir, "wwdc_doc_swiftui.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "### struct `AppStorage`") {
		t.Error("output should contain the symbol item heading")
	}
}

func TestParsePageSkipExisting(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "wwdc_video_meet_swiftui.md")
	if err := os.WriteFile(existing, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPipeline(testFetcher(), nil, nil, types.ParseConfig{
		ContentType: types.ContentVideo,
		OutDir:      dir,
	})

	var buf bytes.Buffer
	_, skipped, err := p.ParsePage(context.Background(), ts.URL+"/videos/10148/", &buf)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if !skipped {
		t.Error("expected skipped, got parse")
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "existing" {
		t.Error("existing file should not be overwritten")
	}
	if !strings.Contains(buf.String(), "skipped:") {
		t.Error("output should contain 'skipped:'")
	}
}

func TestParsePageFailureLeavesNoFile(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	dir := t.TempDir()
	p := NewPipeline(testFetcher(), nil, nil, types.ParseConfig{
		ContentType: types.ContentVideo,
		OutDir:      dir,
	})

	var buf bytes.Buffer
	_, _, err := p.ParsePage(context.Background(), ts.URL+"/missing", &buf)
	if err == nil {
		t.Fatal("expected error for 404 page")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("output dir should be empty after failure, found %d entries", len(entries))
	}
}

func TestParsePageBrowserUnavailable(t *testing.T) {
	p := NewPipeline(testFetcher(), nil, nil, types.ParseConfig{
		ContentType: types.ContentDocument,
		Renderer:    types.RendererBrowser,
		OutDir:      t.TempDir(),
	})

	var buf bytes.Buffer
	_, _, err := p.ParsePage(context.Background(), "https://example.com", &buf)
	if err == nil {
		t.Fatal("expected error when browser renderer is unavailable")
	}
}

func TestParseBatch(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	dir := t.TempDir()
	p := NewPipeline(testFetcher(), nil, nil, types.ParseConfig{
		ContentType: types.ContentVideo,
		OutDir:      dir,
	})

	var buf bytes.Buffer
	urls := []string{
		ts.URL + "/videos/10148/",
		ts.URL + "/missing",
	}
	result := p.ParseBatch(context.Background(), urls, &buf)

	if result.Parsed != 1 {
		t.Errorf("Parsed = %d, want 1", result.Parsed)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if result.Total() != 2 {
		t.Errorf("Total = %d, want 2", result.Total())
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if len(result.Pages) != 1 {
		t.Errorf("len(Pages) = %d, want 1", len(result.Pages))
	}
	if !strings.Contains(buf.String(), "Batch summary:") {
		t.Error("output should contain batch summary")
	}
}

func TestParseBatchSkipExisting(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	dir := t.TempDir()
	p := NewPipeline(testFetcher(), nil, nil, types.ParseConfig{
		ContentType: types.ContentVideo,
		OutDir:      dir,
	})

	url := ts.URL + "/videos/10148/"
	var first bytes.Buffer
	p.ParseBatch(context.Background(), []string{url}, &first)

	var second bytes.Buffer
	result := p.ParseBatch(context.Background(), []string{url}, &second)
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Parsed != 0 {
		t.Errorf("Parsed = %d, want 0", result.Parsed)
	}
}

func TestParsePageIndexFailureIsWarning(t *testing.T) {
	ts := newVideoServer(t)
	defer ts.Close()

	idx := &fakeIndex{err: fmt.Errorf("disk full")}
	p := NewPipeline(testFetcher(), nil, idx, types.ParseConfig{
		ContentType: types.ContentVideo,
		OutDir:      t.TempDir(),
	})

	var buf bytes.Buffer
	_, _, err := p.ParsePage(context.Background(), ts.URL+"/videos/10148/", &buf)
	if err != nil {
		t.Fatalf("indexing failure should not fail the parse: %v", err)
	}
	if !strings.Contains(buf.String(), "warning: indexing failed") {
		t.Error("output should contain the indexing warning")
	}
}
