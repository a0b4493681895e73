package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikey/llm-bid-scout/internal/core"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// GoqueryRenderer implements core.Renderer with a static DOM parser. The
// document is ready the moment parsing returns; the optional settle delay
// is kept for configurations written against renderers that need one.
type GoqueryRenderer struct {
	settleDelay time.Duration
	logger      *zap.Logger
}

var _ core.Renderer = (*GoqueryRenderer)(nil)

// NewGoqueryRenderer creates a renderer. settleDelay may be zero.
func NewGoqueryRenderer(settleDelay time.Duration, logger *zap.Logger) *GoqueryRenderer {
	return &GoqueryRenderer{
		settleDelay: settleDelay,
		logger:      logger,
	}
}

// Render parses raw HTML and extracts the visible text and hyperlinks in
// document order. Plain-text bodies parse as a single text node, so they
// come back as visible text with no links.
func (r *GoqueryRenderer) Render(ctx context.Context, raw string) (*core.RenderedDoc, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	if r.settleDelay > 0 {
		select {
		case <-time.After(r.settleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	root := doc.Selection
	if body := doc.Find("body"); body.Length() > 0 {
		root = body
	}

	ex := &extractor{links: []core.LinkCandidate{}}
	for _, node := range root.Nodes {
		ex.walk(node)
	}

	text := normalizeText(ex.text.String())
	r.logger.Debug("Rendered document",
		zap.Int("text_len", len(text)),
		zap.Int("links", len(ex.links)))

	return &core.RenderedDoc{
		VisibleText: text,
		Links:       ex.links,
	}, nil
}

// extractor walks the parsed tree once, collecting visible text and
// anchors in document order.
type extractor struct {
	text  strings.Builder
	links []core.LinkCandidate
}

func (e *extractor) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		e.text.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElement(n.Data) || hiddenByStyle(n) {
			return
		}
		if n.Data == "a" {
			e.captureAnchor(n)
		}
		if n.Data == "br" {
			e.text.WriteByte('\n')
			return
		}
	case html.DocumentNode:
		// walk children
	default:
		return
	}

	block := isBlock(n.Data)
	if block {
		e.text.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.walk(c)
	}
	if block {
		e.text.WriteByte('\n')
	}
}

// captureAnchor records a link candidate when the anchor has a navigable
// target. The anchor's text still flows into the visible body through the
// normal walk.
func (e *extractor) captureAnchor(n *html.Node) {
	href, ok := attrValue(n, "href")
	if !ok {
		return
	}
	href = strings.TrimSpace(href)
	if href == "" || skippedScheme(href) {
		return
	}
	e.links = append(e.links, core.LinkCandidate{
		Text: collapseSpace(subtreeText(n)),
		Href: href,
	})
}

// subtreeText collects the visible text of one subtree, used for anchor
// labels.
func subtreeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
			return
		}
		if node.Type == html.ElementNode && (skipElement(node.Data) || hiddenByStyle(node)) {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return b.String()
}

// skipElement reports elements whose content is never visible.
func skipElement(name string) bool {
	switch name {
	case "script", "style", "head", "noscript", "template", "title", "iframe":
		return true
	}
	return false
}

// isBlock reports elements that break lines in rendered output.
func isBlock(name string) bool {
	switch name {
	case "p", "div", "li", "ul", "ol", "tr", "td", "th", "table",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"section", "article", "header", "footer", "blockquote", "pre", "hr":
		return true
	}
	return false
}

// hiddenByStyle checks the markup-level visibility signals available to a
// static parser: the hidden attribute and inline display/visibility/
// opacity styles. Stylesheet-driven hiding is not resolved.
func hiddenByStyle(n *html.Node) bool {
	if _, ok := attrValue(n, "hidden"); ok {
		return true
	}
	style, ok := attrValue(n, "style")
	if !ok {
		return false
	}
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "display:none") ||
		strings.Contains(style, "visibility:hidden") ||
		strings.Contains(style, "opacity:0;") ||
		strings.HasSuffix(style, "opacity:0")
}

// skippedScheme filters targets that are not navigable documents.
func skippedScheme(href string) bool {
	lower := strings.ToLower(href)
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:", "cid:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeText produces the final visible text: NFC-normalized, spaces
// collapsed within lines, runs of blank lines reduced to one.
func normalizeText(s string) string {
	s = norm.NFC.String(s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = collapseSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	// Drop a trailing blank kept by the loop.
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
