package domain

import (
	"html"
	"regexp"
	"strings"
	"time"
)

// Post is a community feed entry. HTML is rendered once at submission time;
// Likes always reflects the authoritative stored count.
type Post struct {
	ID        string
	UserID    string
	Author    string
	Content   string
	HTML      string
	Likes     int
	CreatedAt time.Time
}

var (
	boldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*]+)\*`)
	postLink = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)`)
)

// RenderPost converts the constrained markdown subset (bold, italic, links,
// line breaks) to HTML. The input is escaped first, so the only markup in the
// output is what the substitutions introduce.
func RenderPost(text string) string {
	s := html.EscapeString(text)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = postLink.ReplaceAllString(s, `<a href="$2" rel="noopener">$1</a>`)
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}
