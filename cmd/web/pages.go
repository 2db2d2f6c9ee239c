package main

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ayoush26/HikeHighNepal/internal/content"
	"github.com/Ayoush26/HikeHighNepal/internal/format"
	handlersPkg "github.com/Ayoush26/HikeHighNepal/internal/handlers"
	mw "github.com/Ayoush26/HikeHighNepal/internal/middleware"
	"github.com/Ayoush26/HikeHighNepal/internal/nav"
	"github.com/Ayoush26/HikeHighNepal/internal/seo"
)

// homeGalleryPreview is the number of photos teased on the landing page.
const homeGalleryPreview = 8

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	home, err := contentClient.Home(ctx)
	if err != nil {
		serverError(w, r, "load home copy", err)
		return
	}
	posts, err := contentClient.ListPosts(ctx, content.ListPostsOptions{Limit: 3})
	if err != nil {
		mw.LoggerFrom(ctx).Warn("home: list posts", zap.Error(err))
	}

	vm := newPage(r, copyBundle.T("home.title"), copyBundle.T("brand.description"))
	vm.Home = handlersPkg.BuildHomeView(home, posts)
	preview := galleryViews.Catalog().Slice(0, homeGalleryPreview)
	vm.Home.Gallery = &handlersPkg.GalleryView{Total: galleryViews.Catalog().Len()}
	for _, img := range preview {
		vm.Home.Gallery.Items = append(vm.Home.Gallery.Items, handlersPkg.NewGalleryItem(img))
	}

	var sameAs []string
	if appCfg.InstagramURL != "" {
		sameAs = append(sameAs, appCfg.InstagramURL)
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.Script(seo.Organization(vm.Site.Name, appCfg.SiteURL, absoluteURL("/assets/img/logo.svg"), home.Contact.Phone, sameAs...)),
		seo.Script(seo.WebSite(vm.Site.Name, appCfg.SiteURL)),
	)
	finishSEO(&vm)
	renderPage(w, r, "home", vm)
}

// BlogIndexHandler lists posts with optional category and search filters.
func BlogIndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	category := strings.TrimSpace(q.Get("category"))
	search := strings.TrimSpace(q.Get("q"))

	posts, err := contentClient.ListPosts(ctx, content.ListPostsOptions{Category: category, Search: search})
	if err != nil {
		serverError(w, r, "list posts", err)
		return
	}
	categories, err := contentClient.Categories(ctx)
	if err != nil {
		mw.LoggerFrom(ctx).Warn("blog: categories", zap.Error(err))
	}

	vm := newPage(r, copyBundle.T("blog.title"), copyBundle.T("blog.description"))
	vm.Blog = handlersPkg.BuildBlogView(posts, categories, category, search)
	if category != "" || search != "" {
		// filtered listings are not canonical
		vm.SEO.Canonical = absoluteURL("/blog")
		vm.SEO.Robots = "noindex,follow"
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.Script(seo.BreadcrumbList(crumbItems(vm))))
	finishSEO(&vm)

	if mw.IsHTMX(ctx) && r.Header.Get("HX-Target") == "blog-results" {
		renderTemplate(w, r, "frag_blog_results", vm.Blog)
		return
	}
	renderPage(w, r, "blog", vm)
}

// BlogPostHandler renders a single article.
func BlogPostHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	post, err := contentClient.GetPost(ctx, chi.URLParam(r, "slug"))
	if errors.Is(err, content.ErrNotFound) {
		NotFoundHandler(w, r)
		return
	}
	if err != nil {
		serverError(w, r, "load post", err)
		return
	}
	rendered, err := markdown.Render(post.Body)
	if err != nil {
		serverError(w, r, "render post", err)
		return
	}
	related, err := contentClient.ListPosts(ctx, content.ListPostsOptions{Limit: 4})
	if err != nil {
		mw.LoggerFrom(ctx).Warn("blog: related posts", zap.Error(err))
	}

	title := firstNonEmpty(post.SEO.Title, post.Title)
	desc := firstNonEmpty(post.SEO.Description, post.Excerpt)
	vm := newPage(r, title, desc)
	vm.Post = handlersPkg.BuildPostView(post, rendered, related)
	vm.Breadcrumbs = nav.Breadcrumbs(r.URL.Path, post.Title)
	vm.SEO.Keywords = post.Tags
	vm.SEO.OG.Type = "article"
	if post.Image != "" {
		vm.SEO.OG.Image = absoluteURL(post.Image)
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.Script(seo.Article(post.Title, vm.SEO.Canonical, vm.SEO.OG.Image, post.Author, format.ISODate(post.Date), post.Tags)),
		seo.Script(seo.BreadcrumbList(crumbItems(vm))),
	)
	finishSEO(&vm)
	renderPage(w, r, "post", vm)
}

// FAQHandler renders the categorized questions.
func FAQHandler(w http.ResponseWriter, r *http.Request) {
	faq, err := contentClient.FAQ(r.Context())
	if err != nil {
		serverError(w, r, "load faq", err)
		return
	}
	vm := newPage(r, copyBundle.T("faq.title"), copyBundle.T("faq.description"))
	vm.FAQ = handlersPkg.BuildFAQView(faq)

	qas := make([]seo.QA, 0, faq.QuestionCount())
	for _, q := range faq.Questions() {
		qas = append(qas, seo.QA{Question: q.Question, Answer: q.Answer})
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.Script(seo.FAQPage(qas)),
		seo.Script(seo.BreadcrumbList(crumbItems(vm))),
	)
	finishSEO(&vm)
	renderPage(w, r, "faq", vm)
}

// NotFoundHandler renders the 404 page, or a JSON error for htmx.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusNotFound, copyBundle.T("errors.not_found"))
		return
	}
	vm := newPage(r, copyBundle.T("errors.not_found"), "")
	vm.SEO.Robots = "noindex"
	finishSEO(&vm)
	renderPageStatus(w, r, http.StatusNotFound, "error", vm)
}

// WhatsAppRedirectHandler sends visitors to the pre-filled booking chat.
func WhatsAppRedirectHandler(w http.ResponseWriter, r *http.Request) {
	link := whatsApp.DirectLink()
	if link == "" {
		NotFoundHandler(w, r)
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}

// RobotsHandler serves robots.txt pointing at the sitemap.
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	if appCfg.IsProd() {
		b.WriteString("Allow: /\n")
		b.WriteString("Disallow: /chat\n")
	} else {
		b.WriteString("Disallow: /\n")
	}
	b.WriteString("Sitemap: " + absoluteURL("/sitemap.xml") + "\n")
	_, _ = w.Write([]byte(b.String()))
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapHandler lists static pages and every blog post.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range []string{"/", "/gallery", "/blog", "/faq"} {
		set.URLs = append(set.URLs, sitemapURL{Loc: absoluteURL(p)})
	}
	posts, err := contentClient.ListPosts(r.Context(), content.ListPostsOptions{})
	if err != nil {
		mw.LoggerFrom(r.Context()).Warn("sitemap: list posts", zap.Error(err))
	}
	for _, p := range posts {
		u := sitemapURL{Loc: absoluteURL("/blog/" + p.Slug)}
		if !p.Date.IsZero() {
			u.LastMod = p.Date.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		mw.LoggerFrom(r.Context()).Error("sitemap: encode", zap.Error(err))
	}
}

func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	mw.LoggerFrom(r.Context()).Error(msg, zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, copyBundle.T("errors.server"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
