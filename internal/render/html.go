package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an HTML-formatted summary, one line per block element.
// Input without tags is returned trimmed.
func PlainText(raw string) string {
	if !strings.ContainsAny(raw, "<>") {
		return strings.TrimSpace(raw)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}

	doc.Find("script, style").Remove()

	var lines []string
	blocks := doc.Find("p, li, h1, h2, h3, h4, h5, h6, blockquote")
	if blocks.Length() == 0 {
		return collapse(doc.Text())
	}

	blocks.Each(func(_ int, s *goquery.Selection) {
		// nested blocks are emitted by their own match
		if s.Find("p, li").Length() > 0 {
			return
		}
		text := collapse(s.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "li" {
			text = "• " + text
		}
		lines = append(lines, text)
	})

	return strings.Join(lines, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
