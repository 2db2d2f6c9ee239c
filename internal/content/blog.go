package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Post is a blog article loaded from content/blog/<slug>.md.
type Post struct {
	Slug     string
	Title    string
	Subtitle string
	Excerpt  string
	Author   string
	Date     time.Time
	ReadTime string
	Category string
	Image    string
	Featured bool
	Tags     []string
	Body     string
	SEO      PostSEO
}

// PostSEO carries optional per-post metadata overrides.
type PostSEO struct {
	Title       string
	Description string
}

// ListPostsOptions controls post listing.
type ListPostsOptions struct {
	Category string
	Search   string
	Limit    int
}

type postFrontMatter struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Excerpt  string   `yaml:"excerpt"`
	Author   string   `yaml:"author"`
	Date     string   `yaml:"date"`
	ReadTime string   `yaml:"read_time"`
	Category string   `yaml:"category"`
	Image    string   `yaml:"image"`
	Featured bool     `yaml:"featured"`
	Tags     []string `yaml:"tags"`
	SEO      struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"seo"`
}

func (c *Client) blogDir() string {
	return filepath.Join(c.Dir(), "blog")
}

// ListPosts returns posts newest first, featured posts leading.
func (c *Client) ListPosts(ctx context.Context, opts ListPostsOptions) ([]Post, error) {
	posts, err := load(ctx, c, "blog:index", c.readPosts)
	if err != nil {
		return nil, err
	}
	return filterPosts(posts, opts), nil
}

// GetPost retrieves a single post by slug.
func (c *Client) GetPost(ctx context.Context, slug string) (Post, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Post{}, ErrNotFound
	}
	p, err := load(ctx, c, "blog:"+slug, func() (Post, error) {
		return readPost(filepath.Join(c.blogDir(), slug+".md"))
	})
	if err != nil {
		return Post{}, err
	}
	return clonePost(p), nil
}

// FeaturedPost returns the first featured post, or the newest one when none
// is flagged.
func (c *Client) FeaturedPost(ctx context.Context) (Post, error) {
	posts, err := c.ListPosts(ctx, ListPostsOptions{})
	if err != nil {
		return Post{}, err
	}
	if len(posts) == 0 {
		return Post{}, ErrNotFound
	}
	return posts[0], nil
}

// Categories returns the distinct post categories in listing order.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	posts, err := c.ListPosts(ctx, ListPostsOptions{})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range posts {
		if p.Category == "" || seen[strings.ToLower(p.Category)] {
			continue
		}
		seen[strings.ToLower(p.Category)] = true
		out = append(out, p.Category)
	}
	return out, nil
}

func (c *Client) readPosts() ([]Post, error) {
	entries, err := os.ReadDir(c.blogDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Post{}, nil
		}
		return nil, fmt.Errorf("content: list posts: %w", err)
	}
	posts := make([]Post, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		p, err := readPost(filepath.Join(c.blogDir(), e.Name()))
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	sortPosts(posts)
	return posts, nil
}

func readPost(path string) (Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return parsePost(strings.TrimSuffix(filepath.Base(path), ".md"), string(data))
}

func parsePost(slug, raw string) (Post, error) {
	fm, body := splitFrontMatter(raw)
	var meta postFrontMatter
	if fm != "" {
		if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
			return Post{}, fmt.Errorf("content: front matter %s: %w", slug, err)
		}
	}
	return Post{
		Slug:     slug,
		Title:    firstNonEmpty(meta.Title, prettifySlug(slug)),
		Subtitle: meta.Subtitle,
		Excerpt:  meta.Excerpt,
		Author:   firstNonEmpty(meta.Author, "HikeHigh Nepal"),
		Date:     parseDate(meta.Date),
		ReadTime: meta.ReadTime,
		Category: strings.TrimSpace(meta.Category),
		Image:    meta.Image,
		Featured: meta.Featured,
		Tags:     append([]string(nil), meta.Tags...),
		Body:     body,
		SEO: PostSEO{
			Title:       meta.SEO.Title,
			Description: meta.SEO.Description,
		},
	}, nil
}

func filterPosts(posts []Post, opts ListPostsOptions) []Post {
	category := strings.ToLower(strings.TrimSpace(opts.Category))
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if search != "" {
			hay := strings.ToLower(p.Title + " " + p.Excerpt + " " + strings.Join(p.Tags, " "))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		out = append(out, clonePost(p))
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}

func clonePost(p Post) Post {
	clone := p
	if p.Tags != nil {
		clone.Tags = append([]string(nil), p.Tags...)
	}
	return clone
}

func sortPosts(items []Post) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Featured != b.Featured {
			return a.Featured
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return strings.Compare(a.Slug, b.Slug) < 0
	})
}
