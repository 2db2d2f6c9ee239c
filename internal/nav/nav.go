package nav

import (
	"path"
	"strings"
)

// Item represents a top-level navigation item. Anchor items point at a
// section of the home page.
type Item struct {
	Path     string // e.g. "/blog" or "/#about"
	LabelKey string // copy key, e.g. "nav.blog"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/#about", LabelKey: "nav.about"},
	{Path: "/#services", LabelKey: "nav.services"},
	{Path: "/gallery", LabelKey: "nav.gallery"},
	{Path: "/#testimonials", LabelKey: "nav.reviews"},
	{Path: "/blog", LabelKey: "nav.blog"},
	{Path: "/faq", LabelKey: "nav.faq"},
	{Path: "/#contact", LabelKey: "nav.contact"},
}

// Build renders navigation items with active state given the current path.
// Anchor items are never marked active.
func Build(currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

func isActive(itemPath, currentPath string) bool {
	if strings.Contains(itemPath, "#") {
		return false
	}
	// exact or prefix boundary: "/blog" or "/blog/..."
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. The optional
// leaf label replaces the prettified last segment (e.g. a post title).
func Breadcrumbs(currentPath, leaf string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean(currentPath)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	href := ""
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		href += "/" + seg
		c := Crumb{Href: href, Label: titleFromSegment(seg), Active: i == len(parts)-1}
		if i == 0 {
			for _, it := range Main {
				if it.Path == href {
					c.LabelKey = it.LabelKey
					break
				}
			}
		}
		if c.Active && leaf != "" {
			c.Label = leaf
			c.LabelKey = ""
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// slugs are ASCII
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
