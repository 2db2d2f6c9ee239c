package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestSplitFrontMatter(t *testing.T) {
	fm, body := splitFrontMatter("---\r\ntitle: x\r\n---\r\n\r\nhello\r\n")
	require.Equal(t, "title: x", fm)
	require.Equal(t, "hello\n", body)

	fm, body = splitFrontMatter("no front matter")
	require.Empty(t, fm)
	require.Equal(t, "no front matter", body)

	fm, body = splitFrontMatter("\uFEFF---\ntitle: bom\n---\nbody")
	require.Equal(t, "title: bom", fm)
	require.Equal(t, "body", body)

	fm, body = splitFrontMatter("---\nunterminated")
	require.Empty(t, fm)
	require.Equal(t, "---\nunterminated", body)
}

func TestSanitizeSlug(t *testing.T) {
	cases := map[string]string{
		"Mad-Honey":         "mad-honey",
		" /everest/ ":       "everest",
		"../etc/passwd":     "",
		"a/b":               "",
		`a\b`:               "",
		"":                  "",
		"winter..tricks":    "",
		"poon-hill-sunrise": "poon-hill-sunrise",
	}
	for in, want := range cases {
		require.Equal(t, want, sanitizeSlug(in), in)
	}
}

func TestParseDate(t *testing.T) {
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), parseDate("2024-01-15"))
	require.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), parseDate("2024/01/05"))
	require.True(t, parseDate("someday").IsZero())
}

func TestPrettifySlug(t *testing.T) {
	require.Equal(t, "Island Peak Climb", prettifySlug("island-peak-climb"))
}

func TestCacheHonoursDuration(t *testing.T) {
	SetCacheDuration(time.Hour)
	t.Cleanup(func() { SetCacheDuration(5 * time.Minute) })

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "home.yaml"), "hero:\n  title: First\n")
	c := NewClient(dir)

	h, err := c.Home(context.Background())
	require.NoError(t, err)
	require.Equal(t, "First", h.Hero.Title)

	writeFile(t, filepath.Join(dir, "home.yaml"), "hero:\n  title: Second\n")
	h, err = c.Home(context.Background())
	require.NoError(t, err)
	require.Equal(t, "First", h.Hero.Title, "served from cache")

	c.SetDir(dir)
	h, err = c.Home(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Second", h.Hero.Title, "SetDir drops the cache")
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(t.TempDir()).Home(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMissingFilesReportNotFound(t *testing.T) {
	c := NewClient(t.TempDir())
	_, err := c.FAQ(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.Home(context.Background())
	require.ErrorIs(t, err, ErrNotFound)

	posts, err := c.ListPosts(context.Background(), ListPostsOptions{})
	require.NoError(t, err)
	require.Empty(t, posts)
	_, err = c.FeaturedPost(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSiteContentLoads(t *testing.T) {
	c := NewClient("../../content")
	ctx := context.Background()

	home, err := c.Home(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hike High Nepal", home.Hero.Title)
	require.Len(t, home.Treks, 6)
	require.Len(t, home.Testimonials, 3)
	require.Len(t, home.Testimonials[0].Stars(), 5)

	faq, err := c.FAQ(ctx)
	require.NoError(t, err)
	require.Len(t, faq.Categories, 6)
	require.Equal(t, 24, faq.QuestionCount())
	require.Len(t, faq.Questions(), 24)

	featured, err := c.FeaturedPost(ctx)
	require.NoError(t, err)
	require.Equal(t, "mad-honey-hunt-lamjung", featured.Slug)
}
