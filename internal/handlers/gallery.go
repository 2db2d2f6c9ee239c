package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Ayoush26/HikeHighNepal/internal/format"
	"github.com/Ayoush26/HikeHighNepal/internal/gallery"
)

// ExhaustedMessage closes the gallery once every photo is visible.
const ExhaustedMessage = "You've seen all our amazing photos!"

// GalleryItem is one rendered photo card. The sentinel card carries the
// trigger for the next page.
type GalleryItem struct {
	ID           int
	Src          string
	Title        string
	Category     string
	Location     string
	Date         string
	ISODate      string
	Likes        string
	Photographer string
	Description  string
	Tags         []string
	DetailURL    string
	Sentinel     bool
	MoreURL      string
}

// GalleryView is the gallery page or an appended fragment.
type GalleryView struct {
	ViewID    string
	Items     []GalleryItem
	Total     int
	Loading   bool
	Exhausted bool
	Message   string
}

// MoreURL is the fragment endpoint revealed by the sentinel.
func MoreURL(viewID string, after int) string {
	return fmt.Sprintf("/gallery/%s/more?after=%s", url.PathEscape(viewID), strconv.Itoa(after))
}

// NewGalleryItem formats img for templates.
func NewGalleryItem(img gallery.Image) GalleryItem {
	return GalleryItem{
		ID:           img.ID,
		Src:          img.Src,
		Title:        img.Title,
		Category:     img.Category,
		Location:     img.Location,
		Date:         format.Date(img.Date),
		ISODate:      format.ISODate(img.Date),
		Likes:        format.Count(img.Likes),
		Photographer: img.Photographer,
		Description:  img.Description,
		Tags:         append([]string(nil), img.Tags...),
		DetailURL:    "/gallery/photos/" + strconv.Itoa(img.ID),
	}
}

// BuildGalleryView renders items from index `from` of snap. A full page
// passes 0; an appended fragment passes the previous visible count.
func BuildGalleryView(viewID string, snap gallery.Snapshot, from, total int) *GalleryView {
	if from < 0 || from > len(snap.Visible) {
		from = len(snap.Visible)
	}
	v := &GalleryView{
		ViewID:    viewID,
		Total:     total,
		Loading:   snap.State == gallery.Loading,
		Exhausted: snap.State == gallery.Exhausted,
	}
	if v.Exhausted {
		v.Message = ExhaustedMessage
	}
	for _, img := range snap.Visible[from:] {
		item := NewGalleryItem(img)
		if snap.HasMore() && img.ID == snap.Sentinel {
			item.Sentinel = true
			item.MoreURL = MoreURL(viewID, img.ID)
		}
		v.Items = append(v.Items, item)
	}
	return v
}
