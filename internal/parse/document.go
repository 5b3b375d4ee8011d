package parse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

// Selectors for Apple Developer documentation pages.
const (
	docTitleSel        = "h1"
	docDescriptionSel  = `meta[name="description"]`
	docOverviewSel     = ".content > p"
	docNoteSel         = ".note"
	docNoteLabelSel    = ".label"
	docNoteBodySel     = "p:not(.label)"
	docSectionSel      = ".contenttable-section"
	docSectionTitleSel = ".contenttable-title"
	docItemSel         = ".link-block"
	docItemTitleSel    = ".identifier, .decorated-title, code"
	docItemAltTitleSel = ".link span"
	docItemDescSel     = ".content"
	docItemKindSel     = ".decorator"
)

// appleDeveloperBase prefixes relative documentation links.
const appleDeveloperBase = "https://developer.apple.com"

// defaultItemKind is used when a link block carries no decorator.
const defaultItemKind = "article"

// ExtractDocument parses an Apple Developer documentation page. Only the
// title is required; description, overview, notes, and sections are
// optional.
func ExtractDocument(body []byte, pageURL string) (*types.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	title := collapseSpace(doc.Find(docTitleSel).First().Text())
	if title == "" {
		return nil, fmt.Errorf("missing title (%s)", docTitleSel)
	}

	description, _ := doc.Find(docDescriptionSel).First().Attr("content")
	description = collapseSpace(description)

	var paragraphs []string
	doc.Find(docOverviewSel).Each(func(_ int, s *goquery.Selection) {
		if t := richText(s); t != "" {
			paragraphs = append(paragraphs, t)
		}
	})

	var notes []string
	doc.Find(docNoteSel).Each(func(_ int, s *goquery.Selection) {
		label := collapseSpace(s.Find(docNoteLabelSel).First().Text())
		var bodyParts []string
		s.Find(docNoteBodySel).Each(func(_ int, p *goquery.Selection) {
			if t := richText(p); t != "" {
				bodyParts = append(bodyParts, t)
			}
		})
		text := strings.Join(bodyParts, "\n")
		if label == "" && text == "" {
			return
		}
		notes = append(notes, fmt.Sprintf("%s: %s", label, text))
	})

	var sections []types.Section
	doc.Find(docSectionSel).Each(func(_ int, s *goquery.Selection) {
		section := types.Section{
			Title: collapseSpace(s.Find(docSectionTitleSel).First().Text()),
		}
		s.Find(docItemSel).Each(func(_ int, item *goquery.Selection) {
			section.Items = append(section.Items, extractItem(item))
		})
		sections = append(sections, section)
	})

	return &types.Document{
		Title:       title,
		URL:         pageURL,
		Description: description,
		Overview:    strings.Join(paragraphs, "\n"),
		Notes:       notes,
		Sections:    sections,
	}, nil
}

// extractItem pulls one link block out of a topic section. The title comes
// from the symbol identifier or decorated title, falling back to the plain
// link span for articles.
func extractItem(item *goquery.Selection) types.DocumentItem {
	title := itemTitle(item)

	itemURL := ""
	if href, ok := item.Find("a").First().Attr("href"); ok && href != "" {
		itemURL = href
		if strings.HasPrefix(href, "/") {
			itemURL = appleDeveloperBase + href
		}
	}

	kind := collapseSpace(item.Find(docItemKindSel).First().Text())
	if kind == "" {
		kind = defaultItemKind
	}

	return types.DocumentItem{
		Title:       title,
		Description: richText(item.Find(docItemDescSel).First()),
		URL:         itemURL,
		Kind:        kind,
	}
}

func itemTitle(item *goquery.Selection) string {
	if t := item.Find(docItemTitleSel).First(); t.Length() > 0 {
		// Symbol names are broken with <wbr> and zero-width spaces for
		// line wrapping; joining the text nodes reassembles them.
		name := strings.ReplaceAll(t.Text(), "\u200b", "")
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return collapseSpace(item.Find(docItemAltTitleSel).First().Text())
}
