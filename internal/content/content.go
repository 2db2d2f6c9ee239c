package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("content: not found")

const defaultContentDir = "content"

var (
	cacheTTLMu sync.RWMutex
	cacheTTL   = time.Minute * 5
)

// SetCacheDuration allows overriding the in-memory cache duration (primarily for tests).
func SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	cacheTTLMu.Lock()
	cacheTTL = d
	cacheTTLMu.Unlock()
}

func currentCacheTTL() time.Duration {
	cacheTTLMu.RLock()
	defer cacheTTLMu.RUnlock()
	return cacheTTL
}

// Client provides read-only access to the site's content directory.
type Client struct {
	dir string

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// NewClient constructs a Client reading from dir.
func NewClient(dir string) *Client {
	c := &Client{items: map[string]cacheEntry{}}
	c.SetDir(dir)
	return c
}

// SetDir configures the content directory and drops cached entries.
func (c *Client) SetDir(dir string) {
	if c == nil {
		return
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	c.mu.Lock()
	c.dir = dir
	c.items = map[string]cacheEntry{}
	c.mu.Unlock()
}

// Dir returns the configured content directory.
func (c *Client) Dir() string {
	if c == nil {
		return defaultContentDir
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if strings.TrimSpace(c.dir) == "" {
		return defaultContentDir
	}
	return c.dir
}

func (c *Client) cached(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.value, true
}

func (c *Client) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{value: v, expires: time.Now().Add(currentCacheTTL())}
}

// load returns the cached value for key or calls fetch and caches its result.
func load[T any](ctx context.Context, c *Client, key string, fetch func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if v, ok := c.cached(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	v, err := fetch()
	if err != nil {
		return zero, err
	}
	c.store(key, v)
	return v, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("content: parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimPrefix(input, "\uFEFF")
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006/01/02",
		"2006-1-2",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return slug
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsAny(slug, `/\`) || strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
