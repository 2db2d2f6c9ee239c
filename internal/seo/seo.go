package seo

import (
	"html/template"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Meta is the head metadata rendered by the base layout.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	Keywords    []string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []template.JS
}

// Defaults fills OpenGraph and Twitter fields from the page basics.
func (m Meta) Defaults(siteName, twitterHandle string) Meta {
	if m.OG.Title == "" {
		m.OG.Title = m.Title
	}
	if m.OG.Description == "" {
		m.OG.Description = m.Description
	}
	if m.OG.Type == "" {
		m.OG.Type = "website"
	}
	if m.OG.URL == "" {
		m.OG.URL = m.Canonical
	}
	if m.OG.SiteName == "" {
		m.OG.SiteName = siteName
	}
	if m.Twitter.Card == "" {
		m.Twitter.Card = "summary_large_image"
	}
	if m.Twitter.Site == "" {
		m.Twitter.Site = twitterHandle
	}
	if m.Twitter.Image == "" {
		m.Twitter.Image = m.OG.Image
	}
	if m.Robots == "" {
		m.Robots = "index,follow"
	}
	return m
}

// AbsoluteURL joins base and p unless p is already absolute.
func AbsoluteURL(base, p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}
