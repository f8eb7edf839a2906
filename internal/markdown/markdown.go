// Package markdown converts post bodies to HTML and derives plain-text
// excerpts from the rendered output.
package markdown

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// Convert renders a Markdown body (frontmatter already removed) to HTML.
//
// Raw HTML in the source passes through unchanged; post sources are authored
// by the site owner, not untrusted input.
func Convert(body []byte) (string, error) {
	md := goldmark.New(goldmark.WithRendererOptions(ghtml.WithUnsafe()))
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Excerpt extracts the leading plain text from rendered HTML, truncated to
// at most maxRunes runes on a word boundary. Used for feed descriptions when
// a post has no subtitle.
func Excerpt(bodyHTML string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	root, err := html.Parse(strings.NewReader(bodyHTML))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "br":
				sb.WriteString(" ")
			}
		}
	}
	walk(root)

	text := strings.Join(strings.Fields(sb.String()), " ")
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}

	cut := maxRunes
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = maxRunes
	}
	return strings.TrimSpace(string(runes[:cut])) + "…"
}
