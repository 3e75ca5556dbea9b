package seo

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// pageFeatures holds everything extracted from one HTML document.
type pageFeatures struct {
	title           string
	metaDescription string
	hasViewport     bool
	h1Tags          []string
	canonicalURL    string
	imageCount      int
	imagesNoAlt     int
	wordCount       int
	visibleText     string

	text strings.Builder
}

// extractFeatures parses the document and collects the features the rule set
// scores. Parsing is best-effort: x/net/html recovers from malformed markup,
// and anything not found simply stays at its zero value.
func extractFeatures(body []byte) *pageFeatures {
	f := &pageFeatures{}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return f
	}

	f.traverse(doc)
	f.visibleText = strings.TrimSpace(f.text.String())
	f.wordCount = len(splitWords(f.visibleText))
	return f
}

// traverse performs depth-first traversal of HTML nodes, skipping subtrees
// that never render visible text.
func (f *pageFeatures) traverse(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
		f.processElement(n)
	}

	if n.Type == html.TextNode {
		f.text.WriteString(n.Data)
		f.text.WriteByte(' ')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		f.traverse(c)
	}
}

// processElement extracts features from a single element.
func (f *pageFeatures) processElement(n *html.Node) {
	switch n.Data {
	case "title":
		if f.title == "" {
			f.title = strings.TrimSpace(textContent(n))
		}
	case "meta":
		f.processMeta(n)
	case "h1":
		if heading := strings.TrimSpace(textContent(n)); heading != "" {
			f.h1Tags = append(f.h1Tags, heading)
		}
	case "link":
		if strings.EqualFold(attrValue(n, "rel"), "canonical") && f.canonicalURL == "" {
			f.canonicalURL = attrValue(n, "href")
		}
	case "img":
		f.imageCount++
		if strings.TrimSpace(attrValue(n, "alt")) == "" {
			f.imagesNoAlt++
		}
	}
}

// processMeta handles the meta tags the analyzer cares about.
func (f *pageFeatures) processMeta(n *html.Node) {
	switch strings.ToLower(attrValue(n, "name")) {
	case "description":
		if f.metaDescription == "" {
			f.metaDescription = strings.TrimSpace(attrValue(n, "content"))
		}
	case "viewport":
		f.hasViewport = true
	}
}

// textContent concatenates all text nodes beneath n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// splitWords breaks text into words on any non-alphanumeric boundary.
func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
