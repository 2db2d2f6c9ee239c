package handlers

import (
	"github.com/Ayoush26/HikeHighNepal/internal/nav"
	"github.com/Ayoush26/HikeHighNepal/internal/seo"
)

// Site carries business details shared by every page.
type Site struct {
	Name         string
	URL          string
	Tagline      string
	WhatsAppURL  string
	InstagramURL string
	Phone        string
	Email        string
	Location     string
	Emergency    string
	License      string
	Established  string
	Footer       []FooterSection
}

// FooterSection is a titled list of footer links.
type FooterSection struct {
	Title string
	Items []string
}

// PageData is the view model for every page using the shared layout.
type PageData struct {
	Title     string
	SEO       seo.Meta
	Analytics Analytics
	Site      Site
	CSRFToken string

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Optional per-page payloads
	Home    *HomeView
	Blog    *BlogView
	Post    *PostView
	FAQ     *FAQView
	Gallery *GalleryView
	Chat    *ChatView
}

// NewPageData wires navigation for path.
func NewPageData(path string, site Site) PageData {
	return PageData{
		Path:        path,
		Site:        site,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path, ""),
	}
}
