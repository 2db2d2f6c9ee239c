package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/Ayoush26/HikeHighNepal/internal/content"
	"github.com/Ayoush26/HikeHighNepal/internal/gallery"
	"github.com/Ayoush26/HikeHighNepal/internal/inquiry"
)

func TestBuildGalleryViewMarksSentinel(t *testing.T) {
	l := gallery.NewLoader(gallery.NewCatalog(20, 1), gallery.WithClock(clock.NewMock()))
	t.Cleanup(l.Close)
	v := BuildGalleryView("v1", l.Snapshot(), 0, 20)

	require.Len(t, v.Items, 12)
	for _, it := range v.Items[:11] {
		require.False(t, it.Sentinel)
	}
	last := v.Items[11]
	require.True(t, last.Sentinel)
	require.Equal(t, "/gallery/v1/more?after=12", last.MoreURL)
	require.False(t, v.Exhausted)
	require.Empty(t, v.Message)
}

func TestBuildGalleryViewFragmentAndExhaustion(t *testing.T) {
	mock := clock.NewMock()
	l := gallery.NewLoader(gallery.NewCatalog(20, 1), gallery.WithClock(mock))
	t.Cleanup(l.Close)

	require.True(t, l.Reveal(12))
	mock.Add(gallery.DefaultLoadDelay)
	require.NoError(t, l.Wait(context.Background()))
	v := BuildGalleryView("v1", l.Snapshot(), 12, 20)
	require.Len(t, v.Items, 8)
	require.Equal(t, 13, v.Items[0].ID)
	require.True(t, v.Items[7].Sentinel)

	require.True(t, l.Reveal(20))
	mock.Add(gallery.DefaultLoadDelay)
	require.NoError(t, l.Wait(context.Background()))
	v = BuildGalleryView("v1", l.Snapshot(), 20, 20)
	require.Empty(t, v.Items)
	require.True(t, v.Exhausted)
	require.Equal(t, ExhaustedMessage, v.Message)
}

func TestNewGalleryItemFormats(t *testing.T) {
	img := gallery.Image{ID: 7, Likes: 1234, Date: time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)}
	it := NewGalleryItem(img)
	require.Equal(t, "1,234", it.Likes)
	require.Equal(t, "Jul 8, 2024", it.Date)
	require.Equal(t, "/gallery/photos/7", it.DetailURL)
}

func TestBuildChatView(t *testing.T) {
	w := inquiry.NewWidget(inquiry.NewWhatsApp(inquiry.DefaultRecipient), inquiry.WithClock(clock.NewMock()))
	t.Cleanup(w.Close)
	_, err := w.Submit(context.Background(), "Island Peak?")
	require.NoError(t, err)

	v := BuildChatView(w, "https://wa.me/1", "")
	require.Len(t, v.Messages, 1)
	require.False(t, v.Messages[0].FromUser)
	require.True(t, v.ShowContact)
	require.Equal(t, "Island Peak?", v.Draft)
	require.False(t, v.Sending)
	require.Equal(t, inquiry.QuickActions, v.QuickActions)
}

func TestBuildBlogViewSplitsFeatured(t *testing.T) {
	posts := []content.Post{
		{Slug: "a", Title: "A", Featured: true},
		{Slug: "b", Title: "B"},
	}
	v := BuildBlogView(posts, nil, "", "")
	require.NotNil(t, v.Featured)
	require.Equal(t, "a", v.Featured.Slug)
	require.Len(t, v.Posts, 1)

	v = BuildBlogView(posts, nil, "", "b")
	require.Nil(t, v.Featured)
	require.Len(t, v.Posts, 2)
}

func TestBuildPostViewSkipsSelfInRelated(t *testing.T) {
	p := content.Post{Slug: "a", Title: "A", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	v := BuildPostView(p, content.Rendered{}, []content.Post{p, {Slug: "b"}})
	require.Len(t, v.Related, 1)
	require.Equal(t, "January 15, 2024", v.LongDate)
	require.Equal(t, "/blog/a", v.Href)
}

func TestBuildHomeView(t *testing.T) {
	h := content.Home{Stats: []content.Stat{{Number: 500, Suffix: "+", Label: "Successful Expeditions"}}}
	v := BuildHomeView(h, []content.Post{{Slug: "x"}})
	require.Equal(t, []StatView{{Value: "500+", Label: "Successful Expeditions"}}, v.Stats)
	require.Len(t, v.Posts, 1)
}
