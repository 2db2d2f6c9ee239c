package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"
)

// Heading is one entry in a post's table of contents.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// Rendered is sanitized article HTML plus its outline.
type Rendered struct {
	HTML template.HTML
	TOC  []Heading
}

// Renderer converts markdown bodies to sanitized HTML. Results are cached by
// source digest.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy

	mu    sync.RWMutex
	cache map[string]Rendered
}

// NewRenderer builds a renderer with GFM tables, typographic punctuation and
// generated heading ids.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: newArticlePolicy(),
		cache:  map[string]Rendered{},
	}
}

func newArticlePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("figure", "figcaption")
	policy.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4")
	policy.AllowAttrs("class").OnElements("figure", "figcaption", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Render converts src to sanitized HTML and extracts h2/h3 headings.
func (r *Renderer) Render(src string) (Rendered, error) {
	sum := sha256.Sum256([]byte(src))
	key := hex.EncodeToString(sum[:])

	r.mu.RLock()
	out, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return out, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return Rendered{}, fmt.Errorf("content: render markdown: %w", err)
	}
	clean := strings.TrimSpace(r.policy.Sanitize(buf.String()))
	toc, err := extractHeadings(clean)
	if err != nil {
		return Rendered{}, err
	}
	out = Rendered{HTML: template.HTML(clean), TOC: toc}

	r.mu.Lock()
	r.cache[key] = out
	r.mu.Unlock()
	return out, nil
}

func extractHeadings(doc string) ([]Heading, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("content: parse rendered html: %w", err)
	}
	var out []Heading
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3") {
			id := attr(n, "id")
			text := strings.TrimSpace(textContent(n))
			if id != "" && text != "" {
				level := 2
				if n.Data == "h3" {
					level = 3
				}
				out = append(out, Heading{ID: id, Text: text, Level: level})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

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
