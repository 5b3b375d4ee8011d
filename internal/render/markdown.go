// Package render serializes extracted page content to markdown files.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

// Video renders a WWDC session video to markdown: title, source URL,
// overview, then resources, code samples, and transcript when present.
func Video(v *types.Video) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", v.Title)
	fmt.Fprintf(&b, "> %s\n\n", v.URL)

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "%s\n\n", v.Overview)

	if len(v.Resources) > 0 {
		b.WriteString("## Resources\n")
		for _, r := range v.Resources {
			fmt.Fprintf(&b, "- [%s (%s)](%s)\n", r.Title, r.Kind.Display(), r.URL)
		}
		b.WriteString("\n")
	}

	if len(v.CodeSamples) > 0 {
		b.WriteString("## Code Samples\n")
		for _, s := range v.CodeSamples {
			if s.Timestamp != "" {
				fmt.Fprintf(&b, "### %s (%s)\n", s.Title, s.Timestamp)
			} else {
				fmt.Fprintf(&b, "### %s\n", s.Title)
			}
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", s.Language, s.Code)
		}
	}

	if v.Transcript != "" {
		b.WriteString("## Transcript\n")
		fmt.Fprintf(&b, "%s\n", v.Transcript)
	}

	return b.String()
}

// Document renders a documentation page to markdown: title, description,
// overview, notes, then one section per topic table.
func Document(d *types.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Description)
	}

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "%s\n\n", d.Overview)

	if len(d.Notes) > 0 {
		b.WriteString("## Notes\n")
		for _, n := range d.Notes {
			fmt.Fprintf(&b, "%s\n\n", n)
		}
	}

	for _, section := range d.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(&b, "### %s `%s`\n", item.Kind, item.Title)
			if item.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", item.Description)
			}
			if item.URL != "" {
				fmt.Fprintf(&b, "[Documentation](%s)\n\n", item.URL)
			}
		}
	}

	return b.String()
}

// Frontmatter returns the YAML frontmatter header prepended to every
// output file.
func Frontmatter(contentType types.ContentType, sourceURL string, parsedAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "source_url: %q\n", sourceURL)
	fmt.Fprintf(&b, "content_type: %q\n", string(contentType))
	fmt.Fprintf(&b, "parsed_at: %q\n", parsedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	return b.String()
}
