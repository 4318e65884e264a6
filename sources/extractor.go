package sources

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHeadings   = 10
	maxBlocks     = 10
	maxCandidates = 5

	minTextChars     = 20 // texts of this length or shorter are dropped
	maxTitleChars    = 200
	maxContentChars  = 1000
	headingSelectors = "h1, h2, h3, h4"
	blockSelectors   = "article, div"
)

var blockClassRe = regexp.MustCompile(`(?i)post|article|news|update`)

// Candidate is a text block that may describe a competitor update.
type Candidate struct {
	Title   string
	Content string
	URL     string
}

// ExtractCandidates picks up to five text blocks from a page: headings first,
// then article/div blocks whose class looks like a news item. This is a
// heuristic and will happily return navigation text.
func ExtractCandidates(body []byte, pageURL string) ([]Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	headings := first(doc.Find(headingSelectors), maxHeadings)
	blocks := first(doc.Find(blockSelectors).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && blockClassRe.MatchString(class)
	}), maxBlocks)

	candidates := make([]Candidate, 0, maxCandidates)
	for _, sel := range append(headings, blocks...) {
		text := visibleText(sel)
		if utf8.RuneCountInString(text) <= minTextChars {
			continue
		}

		candidates = append(candidates, Candidate{
			Title:   truncate(text, maxTitleChars),
			Content: truncate(text, maxContentChars),
			URL:     pageURL,
		})
		if len(candidates) == maxCandidates {
			break
		}
	}

	return candidates, nil
}

func first(sel *goquery.Selection, limit int) []*goquery.Selection {
	n := sel.Length()
	if n > limit {
		n = limit
	}
	out := make([]*goquery.Selection, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sel.Eq(i))
	}
	return out
}

func visibleText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
