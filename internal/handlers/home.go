package handlers

import (
	"github.com/Ayoush26/HikeHighNepal/internal/content"
	"github.com/Ayoush26/HikeHighNepal/internal/format"
)

// HomeView is the landing page payload.
type HomeView struct {
	Hero         content.Hero
	Stats        []StatView
	About        content.About
	Pricing      content.Pricing
	Treks        []content.Trek
	Testimonials []content.Testimonial
	Posts        []PostCard
	Gallery      *GalleryView
}

// StatView is a formatted headline figure.
type StatView struct {
	Value string
	Label string
}

// BuildHomeView assembles the landing page from its copy and recent posts.
func BuildHomeView(h content.Home, posts []content.Post) *HomeView {
	v := &HomeView{
		Hero:         h.Hero,
		About:        h.About,
		Pricing:      h.Pricing,
		Treks:        h.Treks,
		Testimonials: h.Testimonials,
	}
	for _, s := range h.Stats {
		v.Stats = append(v.Stats, StatView{Value: format.Stat(s.Number, s.Suffix), Label: s.Label})
	}
	for _, p := range posts {
		v.Posts = append(v.Posts, NewPostCard(p))
	}
	return v
}

// SiteFromHome copies contact and footer details into the shared Site.
func SiteFromHome(site Site, h content.Home) Site {
	site.Tagline = h.Hero.Tagline
	site.Phone = h.Contact.Phone
	site.Email = h.Contact.Email
	site.Location = h.Contact.Location
	site.Emergency = h.Contact.Emergency
	site.License = h.Footer.License
	site.Established = h.Footer.Established
	site.Footer = site.Footer[:0:0]
	for _, s := range h.Footer.Sections {
		site.Footer = append(site.Footer, FooterSection{Title: s.Title, Items: append([]string(nil), s.Items...)})
	}
	return site
}
