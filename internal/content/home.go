package content

import (
	"context"
	"path/filepath"
)

// Home holds the copy rendered on the landing page.
type Home struct {
	Hero         Hero          `yaml:"hero"`
	Stats        []Stat        `yaml:"stats"`
	About        About         `yaml:"about"`
	Pricing      Pricing       `yaml:"pricing"`
	Treks        []Trek        `yaml:"treks"`
	Testimonials []Testimonial `yaml:"testimonials"`
	Contact      ContactInfo   `yaml:"contact"`
	Footer       Footer        `yaml:"footer"`
}

type Hero struct {
	Badge   string `yaml:"badge"`
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
}

type Stat struct {
	Number int    `yaml:"number"`
	Suffix string `yaml:"suffix"`
	Label  string `yaml:"label"`
}

type About struct {
	Intro     string   `yaml:"intro"`
	Qualities []string `yaml:"qualities"`
	Badges    []string `yaml:"badges"`
}

type Pricing struct {
	Summary  string   `yaml:"summary"`
	Benefits []string `yaml:"benefits"`
	Steps    []string `yaml:"steps"`
}

// Trek is a service card in the "Services" section.
type Trek struct {
	Name        string   `yaml:"name"`
	Duration    string   `yaml:"duration"`
	Description string   `yaml:"description"`
	Difficulty  string   `yaml:"difficulty"`
	Altitude    string   `yaml:"altitude"`
	Highlights  []string `yaml:"highlights"`
	Color       string   `yaml:"color"`
}

type Testimonial struct {
	Text    string `yaml:"text"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Rating  int    `yaml:"rating"`
}

// Stars returns a slice sized to the rating for range loops in templates.
func (t Testimonial) Stars() []struct{} {
	n := t.Rating
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return make([]struct{}, n)
}

type ContactInfo struct {
	Location  string `yaml:"location"`
	Phone     string `yaml:"phone"`
	Email     string `yaml:"email"`
	Emergency string `yaml:"emergency"`
}

type Footer struct {
	License     string          `yaml:"license"`
	Established string          `yaml:"established"`
	Sections    []FooterSection `yaml:"sections"`
}

type FooterSection struct {
	Title string   `yaml:"title"`
	Items []string `yaml:"items"`
}

// Home loads content/home.yaml.
func (c *Client) Home(ctx context.Context) (Home, error) {
	return load(ctx, c, "home", func() (Home, error) {
		var h Home
		if err := readYAML(filepath.Join(c.Dir(), "home.yaml"), &h); err != nil {
			return Home{}, err
		}
		return h, nil
	})
}
