package source

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/ppiankov/legalyze/internal/model"
)

// hiddenSelector lists elements whose text is never part of the document
const hiddenSelector = "script, style, noscript, iframe, template, nav, footer, header, aside"

var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "dd": true, "div": true,
	"dl": true, "dt": true, "figcaption": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "hr": true, "li": true, "main": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true, "body": true,
}

// HTMLExtractor extracts visible text from HTML pages
type HTMLExtractor struct{}

// NewHTMLExtractor creates an HTML extractor
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

func (e *HTMLExtractor) Name() string { return "html" }

func (e *HTMLExtractor) CanHandle(path string, contentType string) bool {
	return matches(path, contentType, []string{".html", ".htm", ".xhtml"}, []string{"text/html", "application/xhtml+xml"})
}

// Extract parses the page, drops hidden elements and returns block text
// one block per line
func (e *HTMLExtractor) Extract(_ context.Context, data []byte, _ string) (model.Document, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return model.Document{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return extractHTML(root, "html"), nil
}

func extractHTML(root *html.Node, fileType string) model.Document {
	doc := goquery.NewDocumentFromNode(root)

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	doc.Find(hiddenSelector).Remove()

	var blocks []string
	for _, n := range doc.Find("body").Nodes {
		blocks = append(blocks, visibleBlocks(n)...)
	}

	return model.Document{
		Content: strings.Join(blocks, "\n"),
		Metadata: model.DocumentMetadata{
			Title:     strings.Join(strings.Fields(title), " "),
			PageCount: 1,
			FileType:  fileType,
		},
	}
}

// visibleBlocks walks the tree and returns the whitespace-collapsed text of
// each block element
func visibleBlocks(n *html.Node) []string {
	var blocks []string
	var buf strings.Builder

	flush := func() {
		line := strings.Join(strings.Fields(buf.String()), " ")
		if line != "" {
			blocks = append(blocks, line)
		}
		buf.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "br" {
				flush()
				return
			}
			if blockElements[n.Data] {
				flush()
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				flush()
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	flush()
	return blocks
}
