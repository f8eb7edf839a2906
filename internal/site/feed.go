package site

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell/inkwell/internal/config"
	ierrors "github.com/inkwell/inkwell/internal/errors"
	"github.com/inkwell/inkwell/internal/markdown"
)

const feedExcerptRunes = 280

// RenderFeed produces the RSS 2.0 document for the feedSize most recent
// posts. Posts must already be sorted newest first.
//
// guid and link are both {baseUrl}/posts/{id}.html, so published feed
// entries survive slug renames. pubDate is the RFC-822 style the RSS spec
// wants, with the time of day fixed at 00:00:00 GMT since posts carry only
// a calendar date.
func RenderFeed(posts []Post, site config.Website, feedSize int) (string, error) {
	if feedSize > 0 && len(posts) > feedSize {
		posts = posts[:feedSize]
	}

	base := strings.TrimRight(site.BaseURL, "/")
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <channel>\n")
	b.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(site.Title)))
	b.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(base)))
	b.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(site.Description)))
	b.WriteString(fmt.Sprintf(`    <atom:link href="%s/feed.xml" rel="self" type="application/rss+xml"/>`+"\n", escapeXML(base)))

	for _, post := range posts {
		pubDate, err := feedPubDate(post)
		if err != nil {
			return "", err
		}
		link := fmt.Sprintf("%s/posts/%s.html", base, post.ID)

		b.WriteString("    <item>\n")
		b.WriteString(fmt.Sprintf("      <title>%s</title>\n", escapeXML(post.Title)))
		b.WriteString(fmt.Sprintf("      <link>%s</link>\n", escapeXML(link)))
		b.WriteString(fmt.Sprintf("      <description>%s</description>\n", escapeXML(feedDescription(post))))
		b.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", pubDate))
		b.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", escapeXML(link)))
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String(), nil
}

// feedDescription prefers the author-written subtitle and falls back to a
// plain-text excerpt of the rendered body.
func feedDescription(post Post) string {
	if post.Subtitle != "" {
		return post.Subtitle
	}
	return markdown.Excerpt(string(post.BodyHTML), feedExcerptRunes)
}

func feedPubDate(post Post) (string, error) {
	parsed, err := time.Parse("2006-01-02", post.Date)
	if err != nil {
		return "", ierrors.InvalidPost(post.Slug+".md", "feed entry is missing a valid date")
	}
	return parsed.Format("Mon, 02 Jan 2006") + " 00:00:00 GMT", nil
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
