package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Apple's
	// pages serve reduced markup to unknown agents, so the default mimics
	// a desktop browser.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxBodyBytes caps the response body size (default 10 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`
}

// RendererKind selects how page HTML is obtained.
type RendererKind string

const (
	// RendererAuto uses the browser for documentation pages and plain
	// HTTP for video pages.
	RendererAuto    RendererKind = "auto"
	RendererStatic  RendererKind = "static"
	RendererBrowser RendererKind = "browser"
)

// Valid reports whether the renderer kind is a supported value.
func (r RendererKind) Valid() bool {
	return r == RendererAuto || r == RendererStatic || r == RendererBrowser
}

// FetchConfig holds settings for the static HTTP fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// RateLimit is the maximum request rate in requests per second
	// (default 2).
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// MaxRedirects caps redirect following (default 5).
	MaxRedirects int `json:"max_redirects" yaml:"max_redirects"`
}

// BrowserConfig holds settings for the headless-browser renderer.
type BrowserConfig struct {
	// NavigateTimeout bounds page navigation and load (default 30s).
	NavigateTimeout time.Duration `json:"navigate_timeout" yaml:"navigate_timeout"`

	// WaitSelector is a CSS selector to wait for after load (default "h1",
	// which documentation pages populate from JavaScript).
	WaitSelector string `json:"wait_selector" yaml:"wait_selector"`

	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty launches a local headless Chrome.
	RemoteURL string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`
}

// ParseConfig holds settings for the parse pipeline.
type ParseConfig struct {
	// ContentType selects the extractor applied to each URL.
	ContentType ContentType `json:"content_type" yaml:"content_type"`

	// Renderer selects how page HTML is obtained.
	Renderer RendererKind `json:"renderer" yaml:"renderer"`

	// OutDir is the directory markdown files are written to (default ".").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Delay is the pause between consecutive fetches in a batch.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// IndexDisabled skips recording parsed pages in the local index.
	IndexDisabled bool `json:"index_disabled" yaml:"index_disabled"`
}

// IndexConfig holds settings for the local page index.
type IndexConfig struct {
	// Dir is the directory holding the index database (default
	// ~/.local/share/wwdc-parser, falling back to ".wwdc-parser").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Browser BrowserConfig `json:"browser" yaml:"browser"`
	Parse   ParseConfig   `json:"parse" yaml:"parse"`
	Index   IndexConfig   `json:"index" yaml:"index"`
}
