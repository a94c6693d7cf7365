// Package extraction turns raw job-posting HTML into structured
// title/company/location fields via a generative-AI collaborator.
package extraction

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ReduceHTMLToText strips markup, scripts and styling from an HTML document
// and returns the human-visible text with every whitespace run collapsed to a
// single space. It is idempotent and never fails: malformed markup degrades
// to whatever text can be salvaged, an empty string in the worst case.
func ReduceHTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// net/html tolerates almost anything; if parsing still fails,
		// fall back to collapsing the raw input.
		return collapseWhitespace(html)
	}

	doc.Find("script, style, noscript, template, iframe, svg").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	return collapseWhitespace(text)
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
