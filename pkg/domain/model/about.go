package model

import (
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Paragraph is a bullet of an article. Items nest further bullets below it.
type Paragraph struct {
	Heading  string      `yaml:"heading,omitempty"` // bold lead-in, e.g. "Objective:"
	Text     string      `yaml:"text,omitempty"`
	Emphasis bool        `yaml:"emphasis,omitempty"` // italic text such as project titles
	Ordered  bool        `yaml:"ordered,omitempty"`  // render Items as a numbered list
	Items    []Paragraph `yaml:"items,omitempty"`
}

// Article is a titled list of paragraphs
type Article struct {
	Title string      `yaml:"title"`
	Items []Paragraph `yaml:"items"`
}

// Document is a downloadable file relative to the site base path
type Document struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

// Image is a gallery picture relative to the site base path
type Image struct {
	Path    string `yaml:"path"`
	Caption string `yaml:"caption,omitempty"`
}

// About is the static informational content
type About struct {
	Research    Article    `yaml:"research"`
	Technical   Article    `yaml:"technical"`
	Impact      Article    `yaml:"impact"`
	Recognition Article    `yaml:"recognition"`
	Documents   []Document `yaml:"documents"`
	Gallery     []Image    `yaml:"gallery"`
}

// Validate validates the about content
func (a *About) Validate() error {
	for name, article := range map[string]Article{
		"research":    a.Research,
		"technical":   a.Technical,
		"impact":      a.Impact,
		"recognition": a.Recognition,
	} {
		if article.Title == "" {
			return goerr.New("article title is required", goerr.V("article", name))
		}
	}

	for i, doc := range a.Documents {
		if doc.Title == "" {
			return goerr.New("document title is required", goerr.V("index", i))
		}
		if err := validateAssetPath(doc.Path); err != nil {
			return goerr.Wrap(err, "invalid document path", goerr.V("index", i))
		}
	}

	for i, img := range a.Gallery {
		if err := validateAssetPath(img.Path); err != nil {
			return goerr.Wrap(err, "invalid image path", goerr.V("index", i))
		}
	}

	return nil
}

// validateAssetPath requires a relative path that stays under the base path
func validateAssetPath(p string) error {
	if p == "" {
		return goerr.New("asset path is required")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "://") {
		return goerr.New("asset path must be relative", goerr.V("path", p))
	}
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return goerr.New("asset path escapes base path", goerr.V("path", p))
	}
	return nil
}
