package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultLang is the only locale the site ships with.
const DefaultLang = "en"

// Bundle holds UI copy keyed by dotted identifiers such as "nav.gallery".
type Bundle struct {
	lang string
	dict map[string]string
}

// Load reads <dir>/<lang>.json. Nested objects are flattened into dotted keys.
func Load(dir, lang string) (*Bundle, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLang
	}
	raw, err := os.ReadFile(filepath.Join(dir, lang+".json"))
	if err != nil {
		return nil, fmt.Errorf("load locale %s: %w", lang, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", lang, err)
	}
	b := &Bundle{lang: lang, dict: map[string]string{}}
	flatten("", tree, b.dict)
	return b, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flatten(key, val, out)
		}
	}
}

// Lang returns the bundle's language tag.
func (b *Bundle) Lang() string {
	if b == nil {
		return DefaultLang
	}
	return b.lang
}

// T returns the copy for key, or the key itself when missing.
func (b *Bundle) T(key string) string {
	if b != nil {
		if v, ok := b.dict[key]; ok {
			return v
		}
	}
	return key
}

// Tf formats the copy for key with args.
func (b *Bundle) Tf(key string, args ...any) string {
	return fmt.Sprintf(b.T(key), args...)
}

// Keys lists every loaded key in sorted order.
func (b *Bundle) Keys() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.dict))
	for k := range b.dict {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
