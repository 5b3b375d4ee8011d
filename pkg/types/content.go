package types

import "time"

// ContentType selects which kind of page a URL points at.
type ContentType string

const (
	ContentVideo    ContentType = "video"
	ContentDocument ContentType = "document"
)

// Valid reports whether the content type is one of the supported values.
func (c ContentType) Valid() bool {
	return c == ContentVideo || c == ContentDocument
}

// FileTag returns the short tag used in output filenames ("video" or "doc").
func (c ContentType) FileTag() string {
	if c == ContentDocument {
		return "doc"
	}
	return "video"
}

// ResourceKind classifies a related-resource link on a video page.
type ResourceKind string

const (
	ResourceDocument ResourceKind = "document"
	ResourceDownload ResourceKind = "download"
	ResourceVideo    ResourceKind = "video"
)

// Display returns the human-readable label used in rendered markdown.
func (k ResourceKind) Display() string {
	switch k {
	case ResourceDownload:
		return "Download"
	case ResourceVideo:
		return "Video"
	default:
		return "Documentation"
	}
}

// Video holds the content extracted from a WWDC session video page.
type Video struct {
	// Title is the session title from the page h1.
	Title string `json:"title" yaml:"title"`

	// URL is the page the content was fetched from.
	URL string `json:"url" yaml:"url"`

	// Overview is the session description paragraph.
	Overview string `json:"overview" yaml:"overview"`

	// Transcript is the full session transcript, sentences joined with spaces.
	Transcript string `json:"transcript,omitempty" yaml:"transcript,omitempty"`

	// CodeSamples lists the timestamped code listings shown in the session.
	CodeSamples []CodeSample `json:"code_samples,omitempty" yaml:"code_samples,omitempty"`

	// Resources lists related links (docs, downloads, videos).
	Resources []Resource `json:"resources,omitempty" yaml:"resources,omitempty"`
}

// CodeSample is one code listing from a video page. The page labels samples
// "MM:SS - Title"; Timestamp and Title carry the two halves.
type CodeSample struct {
	Title     string `json:"title" yaml:"title"`
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Code      string `json:"code" yaml:"code"`
	Language  string `json:"language" yaml:"language"`
}

// Resource is a related link on a video page.
type Resource struct {
	Title string       `json:"title" yaml:"title"`
	URL   string       `json:"url" yaml:"url"`
	Kind  ResourceKind `json:"kind" yaml:"kind"`
}

// Document holds the content extracted from an Apple Developer
// documentation page.
type Document struct {
	// Title is the page h1.
	Title string `json:"title" yaml:"title"`

	// URL is the page the content was fetched from.
	URL string `json:"url" yaml:"url"`

	// Description is the meta description, when present.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Overview is the introductory prose, paragraphs joined with newlines.
	Overview string `json:"overview,omitempty" yaml:"overview,omitempty"`

	// Notes are callout boxes rendered as "Label: text".
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Sections are the topic tables linking to child pages.
	Sections []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Section is one topic table on a documentation page.
type Section struct {
	Title string         `json:"title" yaml:"title"`
	Items []DocumentItem `json:"items" yaml:"items"`
}

// DocumentItem is one linked symbol or article inside a section.
type DocumentItem struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`

	// Kind is the decorator text (e.g. "class", "protocol"); "article"
	// when the page shows none.
	Kind string `json:"kind" yaml:"kind"`
}

// Page is an index record for a parsed page.
type Page struct {
	// Slug is the filename stem derived from the title (or URL hash).
	Slug string `json:"slug" yaml:"slug"`

	// URL is the source page URL.
	URL string `json:"url" yaml:"url"`

	// ContentType records which extractor produced the page.
	ContentType ContentType `json:"content_type" yaml:"content_type"`

	// Title is the extracted page title.
	Title string `json:"title" yaml:"title"`

	// OutputPath is the markdown file the page was written to.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Hash is the SHA-256 of the fetched body.
	Hash string `json:"hash,omitempty" yaml:"hash,omitempty"`

	// ParsedAt is when the page was parsed.
	ParsedAt time.Time `json:"parsed_at" yaml:"parsed_at"`
}
