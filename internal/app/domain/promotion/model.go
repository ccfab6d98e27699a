// Package promotion defines the persisted promotion record: the slugged
// public landing page tying a release to its customized creative.
package promotion

import "time"

// ElementOverride is a sparse user customization layered over a template
// element's defaults. Pointer fields distinguish "unset" from zero so a
// merge never clobbers a previously set value.
type ElementOverride struct {
	Text           *string  `json:"text,omitempty"`
	X              *float64 `json:"x,omitempty"`
	Y              *float64 `json:"y,omitempty"`
	Scale          *float64 `json:"scale,omitempty"`
	SizeWidth      *float64 `json:"sizeWidth,omitempty"`
	SizeHeight     *float64 `json:"sizeHeight,omitempty"`
	SelectedBadges []string `json:"selectedBadges,omitempty"`
}

// IsZero reports whether the override carries no customization at all.
func (o ElementOverride) IsZero() bool {
	return o.Text == nil && o.X == nil && o.Y == nil && o.Scale == nil &&
		o.SizeWidth == nil && o.SizeHeight == nil && len(o.SelectedBadges) == 0
}

// BackgroundPosition is a pan expressed in percent; 50/50 is centered.
type BackgroundPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Background override defaults.
const (
	DefaultBackgroundScale = 1.1
	DefaultBackgroundBlur  = 0.0
)

// BackgroundOverride replaces or adjusts the template's default backdrop.
// An empty ImageURL means "use the template default".
type BackgroundOverride struct {
	ImageURL string             `json:"imageUrl,omitempty"`
	Position BackgroundPosition `json:"position"`
	Scale    float64            `json:"scale"`
	Blur     float64            `json:"blur"`
}

// NewBackgroundOverride returns an override with centered position and
// default zoom.
func NewBackgroundOverride() BackgroundOverride {
	return BackgroundOverride{
		Position: BackgroundPosition{X: 50, Y: 50},
		Scale:    DefaultBackgroundScale,
		Blur:     DefaultBackgroundBlur,
	}
}

// Customization is the saved editing state: which template, plus the sparse
// per-element and background overrides.
type Customization struct {
	TemplateID         string                     `json:"templateId"`
	ElementOverrides   map[string]ElementOverride `json:"elementOverrides,omitempty"`
	BackgroundOverride BackgroundOverride         `json:"backgroundOverride"`
}

// StreamingLink is one entry in the public landing page's platform list.
type StreamingLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	IsActive bool   `json:"isActive"`
}

// Promotion ties a release to a shareable landing page and its creative
// customization. Saves are last-write-wins; concurrent editors are not
// coordinated.
type Promotion struct {
	ID             string          `json:"id"`
	ReleaseID      string          `json:"releaseId"`
	Slug           string          `json:"slug"`
	StreamingLinks []StreamingLink `json:"streamingLinks"`
	Customization  Customization   `json:"customization"`
	IsPublished    bool            `json:"isPublished"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ActiveLinks returns the streaming links flagged active, in stored order.
func (p Promotion) ActiveLinks() []StreamingLink {
	var out []StreamingLink
	for _, l := range p.StreamingLinks {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out
}
