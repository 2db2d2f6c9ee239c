package content

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newBlogFixture(t *testing.T) *Client {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "blog", "older.md"), "---\ntitle: Older\ndate: 2023-01-01\ncategory: Trekking\ntags: [Annapurna]\n---\nbody")
	writeFile(t, filepath.Join(dir, "blog", "newer.md"), "---\ntitle: Newer\ndate: 2024-03-01\ncategory: Nature\n---\nbody")
	writeFile(t, filepath.Join(dir, "blog", "featured.md"), "---\ntitle: Pinned\ndate: 2022-06-01\nfeatured: true\ncategory: trekking\n---\nbody")
	writeFile(t, filepath.Join(dir, "blog", "untitled-notes.md"), "just text")
	writeFile(t, filepath.Join(dir, "blog", "README.txt"), "ignored")
	return NewClient(dir)
}

func TestListPostsOrdersFeaturedThenNewest(t *testing.T) {
	c := newBlogFixture(t)
	posts, err := c.ListPosts(context.Background(), ListPostsOptions{})
	require.NoError(t, err)

	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Slug
	}
	require.Equal(t, []string{"featured", "newer", "older", "untitled-notes"}, slugs)
	require.Equal(t, "Untitled Notes", posts[3].Title)
	require.Equal(t, "HikeHigh Nepal", posts[3].Author)
}

func TestListPostsFilters(t *testing.T) {
	c := newBlogFixture(t)
	ctx := context.Background()

	posts, err := c.ListPosts(ctx, ListPostsOptions{Category: "Trekking"})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	posts, err = c.ListPosts(ctx, ListPostsOptions{Search: "annapurna"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "older", posts[0].Slug)

	posts, err = c.ListPosts(ctx, ListPostsOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestListPostsReturnsCopies(t *testing.T) {
	c := newBlogFixture(t)
	posts, err := c.ListPosts(context.Background(), ListPostsOptions{Search: "annapurna"})
	require.NoError(t, err)
	posts[0].Tags[0] = "mutated"

	again, err := c.ListPosts(context.Background(), ListPostsOptions{Search: "annapurna"})
	require.NoError(t, err)
	require.Equal(t, "Annapurna", again[0].Tags[0])
}

func TestGetPost(t *testing.T) {
	c := newBlogFixture(t)
	p, err := c.GetPost(context.Background(), "Newer")
	require.NoError(t, err)
	require.Equal(t, "Newer", p.Title)
	require.Equal(t, "body", p.Body)

	_, err = c.GetPost(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.GetPost(context.Background(), "../blog/newer")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategoriesAreDistinct(t *testing.T) {
	c := newBlogFixture(t)
	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"trekking", "Nature"}, cats)
}

func TestInvalidFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "blog", "broken.md"), "---\ntitle: [unclosed\n---\nbody")
	_, err := NewClient(dir).GetPost(context.Background(), "broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
