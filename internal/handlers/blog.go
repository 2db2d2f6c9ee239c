package handlers

import (
	"html/template"

	"github.com/Ayoush26/HikeHighNepal/internal/content"
	"github.com/Ayoush26/HikeHighNepal/internal/format"
)

// PostCard summarizes a post in listings.
type PostCard struct {
	Slug     string
	Href     string
	Title    string
	Subtitle string
	Excerpt  string
	Author   string
	Date     string
	ISODate  string
	ReadTime string
	Category string
	Image    string
	Featured bool
	Tags     []string
}

// NewPostCard formats p for templates.
func NewPostCard(p content.Post) PostCard {
	return PostCard{
		Slug:     p.Slug,
		Href:     "/blog/" + p.Slug,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Excerpt:  p.Excerpt,
		Author:   p.Author,
		Date:     format.Date(p.Date),
		ISODate:  format.ISODate(p.Date),
		ReadTime: p.ReadTime,
		Category: p.Category,
		Image:    p.Image,
		Featured: p.Featured,
		Tags:     append([]string(nil), p.Tags...),
	}
}

// BlogView is the blog index payload.
type BlogView struct {
	Featured   *PostCard
	Posts      []PostCard
	Categories []string
	Category   string
	Search     string
}

// BuildBlogView splits the featured post from the rest when no filter is
// active.
func BuildBlogView(posts []content.Post, categories []string, category, search string) *BlogView {
	v := &BlogView{Categories: categories, Category: category, Search: search}
	filtered := category != "" || search != ""
	for _, p := range posts {
		card := NewPostCard(p)
		if !filtered && v.Featured == nil && p.Featured {
			v.Featured = &card
			continue
		}
		v.Posts = append(v.Posts, card)
	}
	return v
}

// PostView is a rendered article.
type PostView struct {
	PostCard
	LongDate string
	Body     template.HTML
	TOC      []content.Heading
	Related  []PostCard
}

// BuildPostView combines a post with its rendered body and related posts.
func BuildPostView(p content.Post, r content.Rendered, related []content.Post) *PostView {
	v := &PostView{
		PostCard: NewPostCard(p),
		LongDate: format.LongDate(p.Date),
		Body:     r.HTML,
		TOC:      r.TOC,
	}
	for _, rp := range related {
		if rp.Slug == p.Slug {
			continue
		}
		v.Related = append(v.Related, NewPostCard(rp))
	}
	return v
}
