package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ayoush26/HikeHighNepal/internal/gallery"
	handlersPkg "github.com/Ayoush26/HikeHighNepal/internal/handlers"
	mw "github.com/Ayoush26/HikeHighNepal/internal/middleware"
	"github.com/Ayoush26/HikeHighNepal/internal/nav"
	"github.com/Ayoush26/HikeHighNepal/internal/seo"
)

// GalleryHandler mounts a fresh loader and renders its first page.
func GalleryHandler(w http.ResponseWriter, r *http.Request) {
	viewID, loader := galleryViews.Mount()
	total := galleryViews.Catalog().Len()

	vm := newPage(r, copyBundle.T("gallery.title"), copyBundle.T("gallery.description"))
	vm.Gallery = handlersPkg.BuildGalleryView(viewID, loader.Snapshot(), 0, total)
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.Script(seo.ImageGallery(copyBundle.T("gallery.title"), vm.SEO.Canonical, total)),
		seo.Script(seo.BreadcrumbList(crumbItems(vm))),
	)
	finishSEO(&vm)
	// every render mounts a new view; never serve it from a cache
	w.Header().Set("Cache-Control", "no-store")
	renderPage(w, r, "gallery", vm)
}

// GalleryMoreFrag handles the sentinel becoming visible. It appends the next
// page after the load delay, or the end message once the catalog runs out.
// Triggers that do not start a load get 204 so htmx leaves the grid alone.
func GalleryMoreFrag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewID := chi.URLParam(r, "viewID")
	loader, ok := galleryViews.Get(viewID)
	if !ok {
		mw.LoggerFrom(ctx).Debug("gallery: unknown view", zap.String("view", viewID))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	after, err := strconv.Atoi(r.URL.Query().Get("after"))
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid after")
		return
	}
	if !loader.Reveal(after) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := loader.Wait(ctx); err != nil {
		// client went away; the load still completes server-side
		return
	}

	snap := loader.Snapshot()
	from := len(snap.Visible)
	for i, img := range snap.Visible {
		if img.ID == after {
			from = i + 1
			break
		}
	}
	renderTemplate(w, r, "frag_gallery_items", handlersPkg.BuildGalleryView(viewID, snap, from, galleryViews.Catalog().Len()))
}

// GalleryUnmountHandler tears a view down when the page is left.
func GalleryUnmountHandler(w http.ResponseWriter, r *http.Request) {
	galleryViews.Unmount(chi.URLParam(r, "viewID"))
	w.WriteHeader(http.StatusNoContent)
}

// GalleryPhotoFrag renders the lightbox for one photo. Direct visits get a
// standalone page.
func GalleryPhotoFrag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		NotFoundHandler(w, r)
		return
	}
	img, ok := galleryViews.Catalog().ByID(id)
	if !ok {
		NotFoundHandler(w, r)
		return
	}
	item := handlersPkg.NewGalleryItem(img)
	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_gallery_photo", item)
		return
	}

	vm := newPage(r, img.Title, img.Description)
	vm.Gallery = &handlersPkg.GalleryView{Items: []handlersPkg.GalleryItem{item}, Total: galleryViews.Catalog().Len()}
	vm.Breadcrumbs = nav.Breadcrumbs("/gallery/"+strconv.Itoa(img.ID), img.Title)
	vm.SEO.OG.Image = absoluteURL(img.Src)
	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.Script(seo.BreadcrumbList(crumbItems(vm))))
	finishSEO(&vm)
	renderPage(w, r, "photo", vm)
}

// galleryState reports the lifecycle state of a mounted view.
func galleryState(viewID string) (gallery.State, bool) {
	loader, ok := galleryViews.Get(viewID)
	if !ok {
		return 0, false
	}
	return loader.State(), true
}
