package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Ayoush26/HikeHighNepal/internal/config"
	"github.com/Ayoush26/HikeHighNepal/internal/content"
	"github.com/Ayoush26/HikeHighNepal/internal/gallery"
	"github.com/Ayoush26/HikeHighNepal/internal/i18n"
	"github.com/Ayoush26/HikeHighNepal/internal/inquiry"
	"github.com/Ayoush26/HikeHighNepal/internal/logging"
	mw "github.com/Ayoush26/HikeHighNepal/internal/middleware"
)

// catalogSeed fixes like counts across restarts.
const catalogSeed = 2016

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentDir   = "content"
	localesDir   = "locales"
	// devMode reparses templates on every request
	devMode bool

	appCfg        = &config.Config{}
	logger        = zap.NewNop()
	copyBundle    *i18n.Bundle
	contentClient *content.Client
	markdown      = content.NewRenderer()
	galleryViews  *gallery.Views
	chatStore     *inquiry.Store
	whatsApp      inquiry.WhatsApp
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.PublicDir, "public", cfg.PublicDir, "public assets directory")
	flag.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "content directory")
	flag.Parse()

	log, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := setup(cfg, log, nil); err != nil {
		log.Fatal("setup", zap.Error(err))
	}
	if !devMode {
		// parse templates once in production
		if _, err := loadTemplates(); err != nil {
			log.Fatal("parse templates", zap.Error(err))
		}
	}
	if cfg.SessionSigningKey == "" {
		log.Warn("session: using ephemeral signing key; set HIKEHIGH_WEB_SESSION_SIGNING_KEY for production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go runSweepers(ctx, cfg.SweepInterval)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(nil),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("web listening", zap.String("addr", cfg.Addr), zap.Bool("devMode", devMode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}
	closeAll()
	log.Info("web stopped")
}

// setup wires package-level dependencies from cfg. A nil clk uses wall time.
func setup(cfg *config.Config, log *zap.Logger, clk clock.Clock) error {
	if log == nil {
		log = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	appCfg = cfg
	logger = log
	devMode = cfg.Dev
	templatesDir = cfg.TemplatesDir
	publicDir = cfg.PublicDir
	contentDir = cfg.ContentDir

	mw.ConfigureSessions(cfg.SessionSigningKey, cfg.IsProd())

	bundle, err := i18n.Load(localesDir, i18n.DefaultLang)
	if err != nil {
		return err
	}
	copyBundle = bundle
	contentClient = content.NewClient(contentDir)

	galleryLog := log.Named("gallery")
	galleryViews = gallery.NewViews(
		gallery.NewCatalog(cfg.GallerySize, catalogSeed),
		cfg.GalleryViewTTL,
		clk,
		gallery.WithPageSize(cfg.GalleryPageSize),
		gallery.WithDelay(cfg.GalleryLoadDelay),
		gallery.WithOnLoad(func(added int, state gallery.State) {
			galleryLog.Debug("page loaded", zap.Int("added", added), zap.Stringer("state", state))
		}),
	)

	whatsApp = inquiry.NewWhatsApp(cfg.WhatsAppNumber)
	chatLog := log.Named("inquiry")
	chatStore = inquiry.NewStore(func() *inquiry.Widget {
		return inquiry.NewWidget(whatsApp,
			inquiry.WithClock(clk),
			inquiry.WithAckDelay(cfg.InquiryAckDelay),
			inquiry.WithLogger(chatLog),
		)
	}, cfg.InquirySessionTTL, clk)
	return nil
}

func newRouter(add func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/assets/*", mw.AssetsWithCache(filepath.Join(publicDir, "assets"), "/assets"))
	r.Handle("/images/*", mw.AssetsWithCache(filepath.Join(publicDir, "images"), "/images"))
	r.Get("/robots.txt", RobotsHandler)
	r.Get("/sitemap.xml", SitemapHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.Session)
		r.Use(mw.CSRF)

		r.Get("/", HomeHandler)
		r.Get("/blog", BlogIndexHandler)
		r.Get("/blog/{slug}", BlogPostHandler)
		r.Get("/faq", FAQHandler)

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", GalleryHandler)
			r.Get("/photos/{id}", GalleryPhotoFrag)
			r.Get("/{viewID}/more", GalleryMoreFrag)
			r.Delete("/{viewID}", GalleryUnmountHandler)
		})

		r.Route("/chat", func(r chi.Router) {
			r.Get("/", ChatHandler)
			r.Get("/transcript", ChatTranscriptFrag)
			r.Post("/messages", ChatMessageHandler)
			r.Post("/contact", ChatContactHandler)
		})
		r.Get("/contact/whatsapp", WhatsAppRedirectHandler)

		if add != nil {
			r.Group(add)
		}
		r.NotFound(NotFoundHandler)
	})
	return r
}

// runSweepers evicts idle gallery views and conversations until ctx ends.
func runSweepers(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			views := galleryViews.Sweep()
			chats := chatStore.Sweep()
			if views > 0 || chats > 0 {
				logger.Debug("swept idle state", zap.Int("views", views), zap.Int("conversations", chats))
			}
		}
	}
}

func closeAll() {
	if galleryViews != nil {
		galleryViews.Close()
	}
	if chatStore != nil {
		chatStore.Close()
	}
}
