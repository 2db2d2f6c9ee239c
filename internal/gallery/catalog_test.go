package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewCatalogDescriptors(t *testing.T) {
	c := NewCatalog(DefaultCatalogSize, 7)
	require.Equal(t, 62, c.Len())

	first, ok := c.ByID(1)
	require.True(t, ok)
	require.Equal(t, "/images/1.jpeg?height=400&width=300", first.Src)
	require.Equal(t, "Breathtaking mountain vista 1", first.Title)
	require.Equal(t, "Everest Base Camp", first.Category)
	require.Equal(t, "Everest Region", first.Location)
	require.Equal(t, "HikeHigh Nepal", first.Photographer)
	require.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), first.Date)
	require.Equal(t, []string{"Everest Base Camp", "Everest Region", "Adventure", "Summit"}, first.Tags)
	require.Equal(t, "Amazing breathtaking mountain vista captured during our Everest Base Camp expedition.", first.Description)

	last, ok := c.ByID(62)
	require.True(t, ok)
	require.Equal(t, "/images/62.jpg?height=500&width=350", last.Src)

	for _, img := range c.Slice(0, c.Len()) {
		require.GreaterOrEqual(t, img.Likes, 10)
		require.Less(t, img.Likes, 110)
	}
}

func TestNewCatalogIsDeterministicPerSeed(t *testing.T) {
	a := NewCatalog(20, 42).Slice(0, 20)
	b := NewCatalog(20, 42).Slice(0, 20)
	require.Equal(t, a, b)
}

func TestCatalogSliceClampsAndCopies(t *testing.T) {
	c := NewCatalog(5, 1)
	require.Empty(t, c.Slice(5, 10))
	require.Empty(t, c.Slice(3, 2))
	require.Len(t, c.Slice(-3, 2), 2)
	require.Len(t, c.Slice(3, 99), 2)

	got := c.Slice(0, 1)
	got[0].Tags[0] = "mutated"
	got[0].Title = "mutated"
	again := c.Slice(0, 1)
	require.NotEqual(t, "mutated", again[0].Tags[0])
	require.NotEqual(t, "mutated", again[0].Title)
}

func TestCatalogCategoriesInOrder(t *testing.T) {
	cats := NewCatalog(DefaultCatalogSize, 1).Categories()
	require.Len(t, cats, 10)
	require.Equal(t, "Everest Base Camp", cats[0])
	require.Equal(t, "Local Life", cats[9])
}
