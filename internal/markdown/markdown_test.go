package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvert_Heading_ProducesHTML(t *testing.T) {
	out, err := Convert([]byte("# Hello\n\nSome *emphasis*.\n"))
	require.NoError(t, err)
	require.Contains(t, out, "<h1>Hello</h1>")
	require.Contains(t, out, "<em>emphasis</em>")
}

func TestConvert_RawHTMLPassesThrough(t *testing.T) {
	out, err := Convert([]byte("before\n\n<img src=\"../images/photo.jpg\">\n\nafter\n"))
	require.NoError(t, err)
	require.Contains(t, out, `<img src="../images/photo.jpg">`)
}

func TestExcerpt_ShortText_ReturnedWhole(t *testing.T) {
	got := Excerpt("<p>Hello world.</p>", 200)
	require.Equal(t, "Hello world.", got)
}

func TestExcerpt_LongText_TruncatedOnWordBoundary(t *testing.T) {
	long := "<p>" + strings.Repeat("word ", 100) + "</p>"
	got := Excerpt(long, 40)
	require.True(t, strings.HasSuffix(got, "…"))
	require.LessOrEqual(t, len([]rune(got)), 41)
	require.NotContains(t, got, "wor…")
}

func TestExcerpt_StripsMarkup(t *testing.T) {
	got := Excerpt("<h1>Title</h1><p>Body with <a href=\"/x\">a link</a>.</p>", 200)
	require.NotContains(t, got, "<")
	require.Contains(t, got, "a link")
}
