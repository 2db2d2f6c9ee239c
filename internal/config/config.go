package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every site variable.
const EnvPrefix = "HIKEHIGH_WEB_"

// Config holds the environment driven configuration for the web server.
type Config struct {
	Addr string `env:"ADDR"`
	Env  string `env:"ENV" envDefault:"development"`
	Dev  bool   `env:"DEV" envDefault:"false"`

	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"templates"`
	PublicDir    string `env:"PUBLIC_DIR" envDefault:"public"`
	ContentDir   string `env:"CONTENT_DIR" envDefault:"content"`

	SessionSigningKey string `env:"SESSION_SIGNING_KEY"`
	SiteURL           string `env:"SITE_URL" envDefault:"https://hikehighnepal.com"`

	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"9779842597331"`
	InstagramURL   string `env:"INSTAGRAM_URL" envDefault:"https://www.instagram.com/hikehighnepal"`

	GalleryPageSize  int           `env:"GALLERY_PAGE_SIZE" envDefault:"12"`
	GalleryLoadDelay time.Duration `env:"GALLERY_LOAD_DELAY" envDefault:"800ms"`
	GallerySize      int           `env:"GALLERY_SIZE" envDefault:"62"`
	GalleryViewTTL   time.Duration `env:"GALLERY_VIEW_TTL" envDefault:"30m"`

	InquiryAckDelay   time.Duration `env:"INQUIRY_ACK_DELAY" envDefault:"1s"`
	InquirySessionTTL time.Duration `env:"INQUIRY_SESSION_TTL" envDefault:"2h"`

	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	GA4ID           string `env:"GA4_ID"`
	GTMID           string `env:"GTM_ID"`
	ConsentRequired bool   `env:"ANALYTICS_CONSENT_REQUIRED" envDefault:"false"`

	// LogLevel comes from the unprefixed LOG_LEVEL variable.
	LogLevel string
}

type platformEnv struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Dev      string `env:"DEV"`
	LogLevel string `env:"LOG_LEVEL"`
}

// Load reads optional .env files and parses the environment into Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	var platform platformEnv
	if err := env.Parse(&platform); err != nil {
		return nil, fmt.Errorf("parse platform env: %w", err)
	}
	if strings.TrimSpace(platform.Port) == "" {
		platform.Port = "8080"
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = ":" + platform.Port
	}
	cfg.LogLevel = platform.LogLevel
	// DEV is honoured as a fallback switch
	cfg.Dev = cfg.Dev || strings.TrimSpace(platform.Dev) != ""
	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	cfg.WhatsAppNumber = strings.TrimSpace(cfg.WhatsAppNumber)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.GalleryPageSize <= 0 {
		errs = append(errs, fmt.Errorf("%sGALLERY_PAGE_SIZE must be positive", EnvPrefix))
	}
	if c.GallerySize < 0 {
		errs = append(errs, fmt.Errorf("%sGALLERY_SIZE must not be negative", EnvPrefix))
	}
	if c.GalleryLoadDelay < 0 || c.InquiryAckDelay < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	if c.IsProd() && strings.TrimSpace(c.SessionSigningKey) == "" {
		errs = append(errs, fmt.Errorf("%sSESSION_SIGNING_KEY is required in prod", EnvPrefix))
	}
	return errors.Join(errs...)
}

// IsProd reports whether the server runs with production settings.
func (c *Config) IsProd() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "prod")
}
