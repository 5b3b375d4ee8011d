package render

import (
	"strings"
	"testing"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Meet SwiftUI", "meet_swiftui"},
		{"mixed case", "Build Apps for iPad", "build_apps_for_ipad"},
		{"forbidden chars", `What's new: SwiftUI/UIKit?`, "what's_new__swiftui_uikit_"},
		{"quotes and pipes", `"Async" | Await`, "_async___await"},
		{"surrounding space", "  Padded title  ", "padded_title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.title, "https://example.com"); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlugEmptyTitleFallsBackToHash(t *testing.T) {
	got := Slug("", "https://example.com/page")
	if !strings.HasPrefix(got, "page-") {
		t.Fatalf("Slug = %q, want page-<hash> fallback", got)
	}
	// Same URL, same slug; different URL, different slug.
	if again := Slug("", "https://example.com/page"); again != got {
		t.Errorf("hash slug should be stable: %q vs %q", got, again)
	}
	if other := Slug("", "https://example.com/other"); other == got {
		t.Errorf("hash slug should depend on URL")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name        string
		contentType types.ContentType
		title       string
		want        string
	}{
		{"video", types.ContentVideo, "Meet SwiftUI", "wwdc_video_meet_swiftui.md"},
		{"document", types.ContentDocument, "SwiftUI", "wwdc_doc_swiftui.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Filename(tt.contentType, tt.title, "https://example.com"); got != tt.want {
				t.Errorf("Filename = %q, want %q", got, tt.want)
			}
		})
	}
}
