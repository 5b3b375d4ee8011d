package render

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

// forbidden lists the characters replaced in output filenames, plus space.
const forbidden = `/\:*?"<>| `

// Filename derives the output filename for a parsed page, e.g.
// "wwdc_video_meet_swiftui.md". An empty title falls back to a
// URL-hash slug.
func Filename(contentType types.ContentType, title, pageURL string) string {
	return fmt.Sprintf("wwdc_%s_%s.md", contentType.FileTag(), Slug(title, pageURL))
}

// Slug turns a page title into a filesystem-safe filename stem: forbidden
// characters and spaces become underscores and the result is lowercased.
// Empty titles hash the URL instead so the invocation still produces a
// stable name.
func Slug(title, pageURL string) string {
	slug := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbidden, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	slug = strings.ToLower(slug)
	if slug == "" {
		return urlHashSlug(pageURL)
	}
	return slug
}

func urlHashSlug(pageURL string) string {
	h := sha256.Sum256([]byte(pageURL))
	return fmt.Sprintf("page-%x", h[:8])
}
