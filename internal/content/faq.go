package content

import (
	"context"
	"path/filepath"
	"strings"
)

// FAQ groups questions by topic.
type FAQ struct {
	Categories []FAQCategory `yaml:"categories"`
}

// FAQCategory is one topic block on the FAQ page.
type FAQCategory struct {
	Title string        `yaml:"title"`
	Icon  string        `yaml:"icon"`
	Color string        `yaml:"color"`
	FAQs  []FAQQuestion `yaml:"faqs"`
}

// FAQQuestion is a single question with its answer.
type FAQQuestion struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// QuestionCount returns the number of questions across all categories.
func (f FAQ) QuestionCount() int {
	n := 0
	for _, c := range f.Categories {
		n += len(c.FAQs)
	}
	return n
}

// Questions flattens every category in page order.
func (f FAQ) Questions() []FAQQuestion {
	out := make([]FAQQuestion, 0, f.QuestionCount())
	for _, c := range f.Categories {
		out = append(out, c.FAQs...)
	}
	return out
}

// FAQ loads content/faq.yaml.
func (c *Client) FAQ(ctx context.Context) (FAQ, error) {
	return load(ctx, c, "faq", func() (FAQ, error) {
		var f FAQ
		if err := readYAML(filepath.Join(c.Dir(), "faq.yaml"), &f); err != nil {
			return FAQ{}, err
		}
		cats := f.Categories[:0]
		for _, cat := range f.Categories {
			if strings.TrimSpace(cat.Title) == "" {
				continue
			}
			cats = append(cats, cat)
		}
		f.Categories = cats
		return f, nil
	})
}
