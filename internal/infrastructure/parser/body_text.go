package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// elementNames are the tags article markup is built from. Anything else in
// angle brackets is treated as text, so "a<b and c>d" stays a comparison.
const elementNames = `a|abbr|article|aside|b|blockquote|body|br|caption|center|code|dd|div|dl|dt|em|` +
	`figcaption|figure|font|h[1-6]|head|header|footer|hr|html|i|iframe|img|li|meta|nav|noscript|` +
	`ol|p|pre|section|small|span|strong|style|script|sub|sup|table|tbody|td|th|thead|tr|u|ul`

var (
	// attributes must carry a value; a bare word after a tag name reads as prose
	markupExpr = regexp.MustCompile(`(?i)<(?:/(?:` + elementNames + `)\s*` +
		`|(?:` + elementNames + `)(?:\s+[-\w:.]+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s"'<>]+))*\s*/?` +
		`|!--[\s\S]*?--|!doctype\s[^<>]*)>`)
	spaceExpr = regexp.MustCompile(`\s+`)
)

// blockSelectors end a run of text; their content is separated by a space
// so words from adjacent paragraphs are not glued together.
const blockSelectors = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr, blockquote"

// PlainText reduces a scraped article body to whitespace-normalized text.
// Bodies without markup are only whitespace-normalized.
func PlainText(body string) string {
	if !LooksLikeHTML(body) {
		return collapseSpace(body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return collapseSpace(markupExpr.ReplaceAllString(body, " "))
	}

	doc.Find("script, style, noscript, iframe, figure figcaption").Remove()
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return collapseSpace(doc.Text())
}

// LooksLikeHTML reports whether the text carries at least one known HTML tag.
func LooksLikeHTML(text string) bool {
	return markupExpr.MatchString(text)
}

func collapseSpace(text string) string {
	return strings.TrimSpace(spaceExpr.ReplaceAllString(text, " "))
}
