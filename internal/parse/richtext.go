package parse

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// sanitizer strips scripts, event handlers, and styling from page
// fragments before markdown conversion.
var sanitizer = bluemonday.UGCPolicy()

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// richText converts a page fragment to markdown so inline code, links,
// and emphasis survive into the output. If conversion fails or produces
// nothing, it falls back to the fragment's visible text.
func richText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	fragment, err := s.Html()
	if err != nil || strings.TrimSpace(fragment) == "" {
		return collapseSpace(s.Text())
	}

	clean := sanitizer.Sanitize(fragment)
	md, err := mdConverter.ConvertString(clean)
	if err != nil || strings.TrimSpace(md) == "" {
		return textOf(clean)
	}
	return strings.TrimSpace(md)
}

// textOf extracts the visible text of an HTML fragment, skipping script,
// style, and noscript subtrees.
func textOf(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return collapseSpace(fragment)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String()
}
