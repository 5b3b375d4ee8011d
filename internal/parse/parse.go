package parse

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wwdctools/wwdc-parser/internal/fetch"
	"github.com/wwdctools/wwdc-parser/internal/render"
	"github.com/wwdctools/wwdc-parser/pkg/types"
)

// Indexer records parsed pages for later listing and search.
// index.Store implements it; a nil Indexer disables indexing.
type Indexer interface {
	Put(ctx context.Context, page *types.Page, content string) error
}

// BatchResult holds the outcome of a batch parse run.
type BatchResult struct {
	Parsed  int
	Skipped int
	Failed  int
	Pages   []*types.Page
}

// Total returns the total number of URLs processed.
func (r BatchResult) Total() int {
	return r.Parsed + r.Skipped + r.Failed
}

// HasFailures reports whether any URLs failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Pipeline runs fetch → extract → render → write for one or more URLs.
type Pipeline struct {
	static  fetch.Renderer
	browser fetch.Renderer
	index   Indexer
	cfg     types.ParseConfig
	now     func() time.Time
}

// NewPipeline creates a Pipeline. browser may be nil when the static
// renderer is forced; index may be nil to disable indexing.
func NewPipeline(static, browser fetch.Renderer, index Indexer, cfg types.ParseConfig) *Pipeline {
	if cfg.ContentType == "" {
		cfg.ContentType = types.ContentVideo
	}
	if cfg.Renderer == "" {
		cfg.Renderer = types.RendererAuto
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return &Pipeline{
		static:  static,
		browser: browser,
		index:   index,
		cfg:     cfg,
		now:     time.Now,
	}
}

// renderer picks the fetch path: documentation pages are built by
// JavaScript and need the browser, video pages are served static.
func (p *Pipeline) renderer() (fetch.Renderer, error) {
	switch p.cfg.Renderer {
	case types.RendererStatic:
		return p.static, nil
	case types.RendererBrowser:
		if p.browser == nil {
			return nil, fmt.Errorf("browser renderer requested but not available")
		}
		return p.browser, nil
	default:
		if p.cfg.ContentType == types.ContentDocument && p.browser != nil {
			return p.browser, nil
		}
		return p.static, nil
	}
}

// ParsePage fetches one URL, extracts its content, and writes the
// markdown file into the output directory. If the output file already
// exists the page is skipped. The skipped return value reports that case.
func (p *Pipeline) ParsePage(ctx context.Context, pageURL string, w io.Writer) (page *types.Page, skipped bool, err error) {
	r, err := p.renderer()
	if err != nil {
		return nil, false, err
	}

	fmt.Fprintf(w, "fetching: %s (%s)\n", pageURL, p.cfg.ContentType)

	res, err := r.Fetch(ctx, pageURL)
	if err != nil {
		return nil, false, fmt.Errorf("fetching %s: %w", pageURL, err)
	}

	var title, body string
	switch p.cfg.ContentType {
	case types.ContentDocument:
		doc, err := ExtractDocument(res.Body, pageURL)
		if err != nil {
			return nil, false, fmt.Errorf("extracting %s: %w", pageURL, err)
		}
		title = doc.Title
		body = render.Document(doc)
	default:
		video, err := ExtractVideo(res.Body, pageURL)
		if err != nil {
			return nil, false, fmt.Errorf("extracting %s: %w", pageURL, err)
		}
		title = video.Title
		body = render.Video(video)
	}

	parsedAt := p.now()
	filename := render.Filename(p.cfg.ContentType, title, pageURL)
	outPath := filepath.Join(p.cfg.OutDir, filename)

	page = &types.Page{
		Slug:        render.Slug(title, pageURL),
		URL:         pageURL,
		ContentType: p.cfg.ContentType,
		Title:       title,
		OutputPath:  outPath,
		Hash:        res.Hash,
		ParsedAt:    parsedAt,
	}

	if _, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", filename)
		return page, true, nil
	}

	content := render.Frontmatter(p.cfg.ContentType, pageURL, parsedAt) + body
	if err := writeFile(outPath, []byte(content)); err != nil {
		return nil, false, fmt.Errorf("writing %s: %w", outPath, err)
	}

	if p.index != nil && !p.cfg.IndexDisabled {
		if err := p.index.Put(ctx, page, body); err != nil {
			fmt.Fprintf(w, "  warning: indexing failed: %v\n", err)
		}
	}

	fmt.Fprintf(w, "parsed: %s\n", filename)
	return page, false, nil
}

// ParseBatch processes multiple URLs, printing per-item status and
// returning a summary. It continues after individual failures and applies
// a delay between consecutive fetches.
func (p *Pipeline) ParseBatch(ctx context.Context, urls []string, w io.Writer) BatchResult {
	var result BatchResult
	for i, u := range urls {
		if i > 0 && p.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				result.Failed += len(urls) - i
				return result
			case <-time.After(p.cfg.Delay):
			}
		}
		page, wasSkipped, err := p.ParsePage(ctx, u, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", u, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Parsed++
		}
		result.Pages = append(result.Pages, page)
	}
	fmt.Fprintf(w, "\nBatch summary: %d parsed, %d skipped, %d failed (total: %d)\n",
		result.Parsed, result.Skipped, result.Failed, result.Total())
	return result
}

// writeFile writes content through a temporary file in the destination
// directory and renames it into place, so a failed run leaves no partial
// output behind.
func writeFile(destPath string, content []byte) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".parse-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing output: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
