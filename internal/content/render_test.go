package content

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesSanitizedHTMLAndOutline(t *testing.T) {
	r := NewRenderer()
	src := "Intro\n\n## Arrival at Ghalegaun\n\nText <script>alert(1)</script>\n\n### Ghatu Dance\n\n[link](https://example.com)\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"
	out, err := r.Render(src)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out.HTML)))
	require.NoError(t, err)
	require.Zero(t, doc.Find("script").Length())
	require.Equal(t, 1, doc.Find("table").Length())
	rel, _ := doc.Find("a").Attr("rel")
	require.Contains(t, rel, "nofollow")

	id, ok := doc.Find("h2").Attr("id")
	require.True(t, ok)
	require.Equal(t, "arrival-at-ghalegaun", id)

	require.Equal(t, []Heading{
		{ID: "arrival-at-ghalegaun", Text: "Arrival at Ghalegaun", Level: 2},
		{ID: "ghatu-dance", Text: "Ghatu Dance", Level: 3},
	}, out.TOC)
}

func TestRenderCachesBySource(t *testing.T) {
	r := NewRenderer()
	a, err := r.Render("## One")
	require.NoError(t, err)
	b, err := r.Render("## One")
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, r.cache, 1)

	_, err = r.Render("## Two")
	require.NoError(t, err)
	require.Len(t, r.cache, 2)
}

func TestRenderEmptyBody(t *testing.T) {
	out, err := NewRenderer().Render("")
	require.NoError(t, err)
	require.Empty(t, out.HTML)
	require.Empty(t, out.TOC)
}
