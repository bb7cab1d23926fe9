package workday

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DescriptionText turns the HTML-escaped Course_Description into plain text
// with collapsed whitespace.
func DescriptionText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	unescaped := html.UnescapeString(raw)
	document, err := goquery.NewDocumentFromReader(strings.NewReader(unescaped))
	if err != nil {
		return strings.Join(strings.Fields(unescaped), " ")
	}

	var paragraphs []string
	document.Find("p").Each(func(i int, block *goquery.Selection) {
		if text := strings.Join(strings.Fields(block.Text()), " "); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n")
	}

	return strings.Join(strings.Fields(document.Text()), " ")
}
