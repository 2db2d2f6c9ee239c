package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	handlersPkg "github.com/Ayoush26/HikeHighNepal/internal/handlers"
	mw "github.com/Ayoush26/HikeHighNepal/internal/middleware"
	"github.com/Ayoush26/HikeHighNepal/internal/nav"
	"github.com/Ayoush26/HikeHighNepal/internal/seo"
)

// templateSet keeps fragments in root and one clone per page, where the
// page's "page_<name>" template is bound to the layout's "content" slot.
type templateSet struct {
	root  *template.Template
	pages map[string]*template.Template
}

var (
	tmplMu    sync.RWMutex
	tmplCache *templateSet
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"now":   time.Now,
		"t":     func(key string) string { return copyBundle.T(key) },
		"tf":    func(key string, args ...any) string { return copyBundle.Tf(key, args...) },
		"join":  strings.Join,
		"lower": strings.ToLower,
		"add":   func(a, b int) int { return a + b },
		"crumb": crumbName,
	}
}

func parseTemplates() (*templateSet, error) {
	// ParseGlob doesn't support **, so walk the tree.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	root, err := template.New("_root").Funcs(funcMap()).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	set := &templateSet{root: root, pages: map[string]*template.Template{}}
	for _, t := range root.Templates() {
		name, ok := strings.CutPrefix(t.Name(), "page_")
		if !ok {
			continue
		}
		page, err := root.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone for %s: %w", name, err)
		}
		if _, err := page.New("content").Parse(fmt.Sprintf(`{{template %q .}}`, t.Name())); err != nil {
			return nil, fmt.Errorf("bind %s: %w", name, err)
		}
		set.pages[name] = page
	}
	return set, nil
}

func loadTemplates() (*templateSet, error) {
	set, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	tmplMu.Lock()
	tmplCache = set
	tmplMu.Unlock()
	return set, nil
}

// templates returns the cached set, reparsing on every call in dev mode.
func templates() (*templateSet, error) {
	if devMode {
		return parseTemplates()
	}
	tmplMu.RLock()
	set := tmplCache
	tmplMu.RUnlock()
	if set != nil {
		return set, nil
	}
	return loadTemplates()
}

// renderPage executes the base layout with the named page bound to it.
func renderPage(w http.ResponseWriter, r *http.Request, name string, vm handlersPkg.PageData) {
	renderPageStatus(w, r, http.StatusOK, name, vm)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, status int, name string, vm handlersPkg.PageData) {
	set, err := templates()
	if err != nil {
		templateFailure(w, r, "template parse error", err)
		return
	}
	page, ok := set.pages[name]
	if !ok {
		templateFailure(w, r, "template missing", fmt.Errorf("page %q not defined", name))
		return
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "base", vm); err != nil {
		templateFailure(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderTemplate executes a fragment for htmx swaps.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	set, err := templates()
	if err != nil {
		templateFailure(w, r, "template parse error", err)
		return
	}
	var buf bytes.Buffer
	if err := set.root.ExecuteTemplate(&buf, name, data); err != nil {
		templateFailure(w, r, "template exec error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func templateFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	mw.LoggerFrom(r.Context()).Error(msg, zap.Error(err))
	if devMode {
		mw.WriteError(w, r, http.StatusInternalServerError, fmt.Sprintf("%s: %v", msg, err))
		return
	}
	mw.WriteError(w, r, http.StatusInternalServerError, copyBundle.T("errors.server"))
}

// newPage builds the shared layout model for the current request.
func newPage(r *http.Request, title, description string) handlersPkg.PageData {
	vm := handlersPkg.NewPageData(r.URL.Path, siteInfo(r))
	vm.Title = title
	vm.CSRFToken = mw.CSRFToken(r)
	vm.Analytics = handlersPkg.Analytics{
		GA4MeasurementID: appCfg.GA4ID,
		GTMContainerID:   appCfg.GTMID,
		ConsentRequired:  appCfg.ConsentRequired,
	}
	vm.SEO = seo.Meta{
		Title:       title,
		Description: description,
		Canonical:   absoluteURL(r.URL.Path),
		OG:          seo.OpenGraph{Image: absoluteURL("/assets/img/og-default.jpg")},
	}
	return vm
}

// finishSEO applies layout defaults once a handler has set page-specific meta.
func finishSEO(vm *handlersPkg.PageData) {
	vm.SEO = vm.SEO.Defaults(copyBundle.T("brand.name"), copyBundle.T("brand.twitter"))
}

func siteInfo(r *http.Request) handlersPkg.Site {
	site := handlersPkg.Site{
		Name:         copyBundle.T("brand.name"),
		URL:          appCfg.SiteURL,
		WhatsAppURL:  "/contact/whatsapp",
		InstagramURL: appCfg.InstagramURL,
	}
	home, err := contentClient.Home(r.Context())
	if err != nil {
		mw.LoggerFrom(r.Context()).Warn("site info: load home copy", zap.Error(err))
		return site
	}
	return handlersPkg.SiteFromHome(site, home)
}

func absoluteURL(path string) string {
	return seo.AbsoluteURL(appCfg.SiteURL, path)
}

// crumbItems converts breadcrumbs to absolute JSON-LD entries.
func crumbItems(vm handlersPkg.PageData) []seo.BreadcrumbItem {
	items := make([]seo.BreadcrumbItem, 0, len(vm.Breadcrumbs))
	for _, c := range vm.Breadcrumbs {
		items = append(items, seo.BreadcrumbItem{Name: crumbName(c), Item: absoluteURL(c.Href)})
	}
	return items
}

func crumbName(c nav.Crumb) string {
	if c.LabelKey != "" {
		return copyBundle.T(c.LabelKey)
	}
	return c.Label
}
