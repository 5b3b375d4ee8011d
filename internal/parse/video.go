// Package parse extracts structured content from WWDC video pages and
// Apple Developer documentation pages.
package parse

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wwdctools/wwdc-parser/pkg/types"
)

// Selectors for WWDC session video pages.
const (
	videoTitleSel      = "h1"
	videoOverviewSel   = ".supplement.details > p"
	videoTranscriptSel = ".supplement.transcript .sentence"
	videoCodeSel       = ".sample-code-main-container"
	videoResourcesSel  = ".links.small li"
)

// sampleLanguage is the fence language for WWDC code listings; session
// pages do not label the language and the samples are Swift.
const sampleLanguage = "swift"

// ExtractVideo parses a WWDC session video page. Title and overview are
// required; transcript, code samples, and resources are optional.
func ExtractVideo(body []byte, pageURL string) (*types.Video, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	title := collapseSpace(doc.Find(videoTitleSel).First().Text())
	if title == "" {
		return nil, fmt.Errorf("missing title (%s)", videoTitleSel)
	}

	overview := collapseSpace(doc.Find(videoOverviewSel).First().Text())
	if overview == "" {
		return nil, fmt.Errorf("missing overview (%s)", videoOverviewSel)
	}

	var sentences []string
	doc.Find(videoTranscriptSel).Each(func(_ int, s *goquery.Selection) {
		if t := collapseSpace(s.Text()); t != "" {
			sentences = append(sentences, t)
		}
	})

	var samples []types.CodeSample
	doc.Find(videoCodeSel).Each(func(_ int, s *goquery.Selection) {
		label := collapseSpace(s.Find("p").First().Text())
		code := strings.TrimRight(s.Find("code").First().Text(), "\n")
		if label == "" || code == "" {
			return
		}
		timestamp, sampleTitle := splitSampleLabel(label)
		samples = append(samples, types.CodeSample{
			Title:     sampleTitle,
			Timestamp: timestamp,
			Code:      code,
			Language:  sampleLanguage,
		})
	})

	var resources []types.Resource
	doc.Find(videoResourcesSel).Each(func(_ int, s *goquery.Selection) {
		link := s.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}
		class, _ := s.Attr("class")
		resources = append(resources, types.Resource{
			Title: collapseSpace(link.Text()),
			URL:   href,
			Kind:  resourceKind(class),
		})
	})

	return &types.Video{
		Title:       title,
		URL:         pageURL,
		Overview:    overview,
		Transcript:  strings.Join(sentences, " "),
		CodeSamples: samples,
		Resources:   resources,
	}, nil
}

// splitSampleLabel splits a code sample label of the form
// "10:40 - Setting scene association behavior" into timestamp and title.
// Labels without the separator become a bare title.
func splitSampleLabel(label string) (timestamp, title string) {
	if idx := strings.Index(label, " - "); idx >= 0 {
		return label[:idx], label[idx+3:]
	}
	return "", label
}

// resourceKind maps a resource list item's class attribute to a kind.
func resourceKind(class string) types.ResourceKind {
	switch {
	case strings.Contains(class, "document"):
		return types.ResourceDocument
	case strings.Contains(class, "download"):
		return types.ResourceDownload
	case strings.Contains(class, "video"):
		return types.ResourceVideo
	default:
		return types.ResourceDocument
	}
}

// collapseSpace trims a string and folds internal whitespace runs into
// single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
