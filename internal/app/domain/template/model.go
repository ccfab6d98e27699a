// Package template defines the immutable creative layout catalog: canvas
// geometry, background assets and the ordered element list each promo
// template is built from.
package template

import "time"

// Format distinguishes the two supported canvas aspect ratios.
type Format string

const (
	// FormatStory is the 9:16 vertical canvas.
	FormatStory Format = "story"
	// FormatPost is the square canvas.
	FormatPost Format = "post"
)

// ElementType distinguishes image and text elements.
type ElementType string

const (
	ElementImage ElementType = "image"
	ElementText  ElementType = "text"
)

// Element source roles. The compositor resolves content from the owning
// release based on these.
const (
	SourceCoverArt     = "cover_art"
	SourceArtistName   = "artist_name"
	SourceTrackName    = "track_name"
	SourcePlatformLogo = "platform_logo"
	SourceCustomText   = "custom_text"
)

// Canvas is the template-native pixel space all element positions are
// authored in.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position is a point in canvas space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a fixed element extent in canvas pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SizeOption is a named size preset an element may offer.
type SizeOption struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextStyle describes how a text element is drawn.
type TextStyle struct {
	Font  string  `json:"font,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Align string  `json:"align,omitempty"`
}

// Animation describes an entrance animation used only for interactive
// previews; static renders and exports ignore it.
type Animation struct {
	Type     string  `json:"type"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Background references the template's default backdrop asset.
type Background struct {
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// Element is one placeable unit within a template.
type Element struct {
	ID           string       `json:"id"`
	Type         ElementType  `json:"type"`
	Source       string       `json:"source"`
	Position     Position     `json:"position"`
	Size         *Size        `json:"size,omitempty"`
	CornerRadius float64      `json:"cornerRadius,omitempty"`
	TextStyle    *TextStyle   `json:"textStyle,omitempty"`
	Animation    *Animation   `json:"animation,omitempty"`
	Allowed      []string     `json:"allowed,omitempty"`
	SizeOptions  []SizeOption `json:"sizeOptions,omitempty"`
}

// Template is a complete creative layout definition. Catalog data is
// read-only reference data, not user-owned.
type Template struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Format     Format     `json:"format"`
	Canvas     Canvas     `json:"canvas"`
	Background Background `json:"background"`
	Elements   []Element  `json:"elements"`
	CreatedAt  time.Time  `json:"createdAt,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt,omitempty"`
}

// Element returns the element with the given id, if present.
func (t Template) Element(id string) (Element, bool) {
	for _, el := range t.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// LogoElement returns the platform_logo element, if the template has one.
func (t Template) LogoElement() (Element, bool) {
	for _, el := range t.Elements {
		if el.Source == SourcePlatformLogo {
			return el, true
		}
	}
	return Element{}, false
}
