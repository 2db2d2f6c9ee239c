package gallery

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultCatalogSize is the number of photos published in the gallery.
const DefaultCatalogSize = 62

// Image is a single gallery photo descriptor.
type Image struct {
	ID           int
	Src          string
	Title        string
	Category     string
	Location     string
	Date         time.Time
	Likes        int
	Photographer string
	Description  string
	Tags         []string
}

var categories = []string{
	"Everest Base Camp",
	"Annapurna Circuit",
	"Peak Climbing",
	"Cultural Moments",
	"Landscapes",
	"Wildlife",
	"Villages",
	"Sunrise/Sunset",
	"Team Adventures",
	"Local Life",
}

var locations = []string{
	"Everest Region",
	"Annapurna Region",
	"Langtang Valley",
	"Manaslu Circuit",
	"Upper Mustang",
	"Dolpo",
	"Kanchenjunga",
	"Makalu Region",
}

var descriptions = []string{
	"Breathtaking mountain vista",
	"Cultural celebration moment",
	"Summit achievement",
	"Local village life",
	"Himalayan sunrise",
	"Traditional ceremony",
	"Adventure team photo",
	"Pristine landscape",
	"Wildlife encounter",
	"Authentic experience",
}

// Catalog is the fixed, ordered list of gallery images. It is never mutated
// after construction; all accessors return copies.
type Catalog struct {
	images []Image
}

// NewCatalog generates n image descriptors. The seed only affects like counts,
// so the same seed always yields an identical catalog.
func NewCatalog(n int, seed int64) *Catalog {
	if n < 0 {
		n = 0
	}
	rng := rand.New(rand.NewSource(seed))
	images := make([]Image, 0, n)
	for i := 0; i < n; i++ {
		images = append(images, describe(i, rng))
	}
	return &Catalog{images: images}
}

// CatalogFrom wraps an explicit image list.
func CatalogFrom(images []Image) *Catalog {
	cp := make([]Image, len(images))
	for i, img := range images {
		cp[i] = cloneImage(img)
	}
	return &Catalog{images: cp}
}

func describe(i int, rng *rand.Rand) Image {
	id := i + 1
	ext := "jpeg"
	if id > 47 {
		ext = "jpg"
	}
	category := categories[i%len(categories)]
	location := locations[i%len(locations)]
	desc := descriptions[i%len(descriptions)]
	photographer := "Adventure Team"
	if i%3 == 0 {
		photographer = "HikeHigh Nepal"
	}
	flavor := "Culture"
	if i%2 == 0 {
		flavor = "Adventure"
	}
	stage := "Journey"
	if i%3 == 0 {
		stage = "Summit"
	}
	return Image{
		ID:           id,
		Src:          fmt.Sprintf("/images/%d.%s?height=%d&width=%d", id, ext, 400+(i%3)*100, 300+(i%4)*50),
		Title:        fmt.Sprintf("%s %d", desc, id),
		Category:     category,
		Location:     location,
		Date:         time.Date(2024-i/12, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC),
		Likes:        rng.Intn(100) + 10,
		Photographer: photographer,
		Description:  fmt.Sprintf("Amazing %s captured during our %s expedition.", strings.ToLower(desc), category),
		Tags:         []string{category, location, flavor, stage},
	}
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.images)
}

// Slice returns a copy of images[lo:hi], clamped to the catalog bounds.
// Out-of-range requests yield an empty slice.
func (c *Catalog) Slice(lo, hi int) []Image {
	n := c.Len()
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return []Image{}
	}
	out := make([]Image, 0, hi-lo)
	for _, img := range c.images[lo:hi] {
		out = append(out, cloneImage(img))
	}
	return out
}

// ByID looks up a single image.
func (c *Catalog) ByID(id int) (Image, bool) {
	if c == nil {
		return Image{}, false
	}
	for _, img := range c.images {
		if img.ID == id {
			return cloneImage(img), true
		}
	}
	return Image{}, false
}

// Categories lists distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, img := range c.images {
		if _, ok := seen[img.Category]; ok {
			continue
		}
		seen[img.Category] = struct{}{}
		out = append(out, img.Category)
	}
	return out
}

func cloneImage(img Image) Image {
	cp := img
	if img.Tags != nil {
		cp.Tags = append([]string(nil), img.Tags...)
	}
	return cp
}
