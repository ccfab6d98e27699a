// Package compose implements the shared creative compositor: it layers
// sparse user overrides on top of a template's defaults, explodes the
// platform logo element into positioned badge boxes and produces a
// render-ready composition. The same math serves the editor canvas, the
// thumbnail picker and the public landing page; only the scale factor and
// the interactive flag differ.
package compose

import (
	"strings"

	"github.com/KratoLib/promo_service/internal/app/domain/badge"
	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

// DefaultCustomText is the placeholder shown for custom_text elements the
// user has not edited.
const DefaultCustomText = "OUT NOW"

// backgroundDarken is the fixed dim applied over the backdrop so foreground
// text stays legible.
const backgroundDarken = 0.35

// ResolvedURLs carries the display URLs the caller has resolved so far.
// Each slot is filled independently as upstream lookups complete; Compose
// works with whatever is available.
type ResolvedURLs struct {
	BackgroundOverride string
	TemplateBackground string
	CoverArt           string
}

// Input bundles everything the compositor needs. Scale transforms the whole
// canvas uniformly; positions stay in template space.
type Input struct {
	Template    template.Template
	Release     release.Release
	Overrides   Overrides
	Resolved    ResolvedURLs
	Scale       float64
	Interactive bool
}

// BackgroundLayer is the composed backdrop: cover-fit image, panned and
// zoomed per override, blurred and darkened.
type BackgroundLayer struct {
	URL      string                       `json:"url,omitempty"`
	Position promotion.BackgroundPosition `json:"position"`
	Scale    float64                      `json:"scale"`
	Blur     float64                      `json:"blur"`
	Darken   float64                      `json:"darken"`
}

// RenderElement is one positioned visual unit of the composition, in
// template pixel space.
type RenderElement struct {
	ID           string               `json:"id"`
	OverrideID   string               `json:"overrideId"`
	Type         template.ElementType `json:"type"`
	Source       string               `json:"source"`
	BadgeID      string               `json:"badgeId,omitempty"`
	Position     template.Position    `json:"position"`
	Size         *template.Size       `json:"size,omitempty"`
	Scale        float64              `json:"scale"`
	CornerRadius float64              `json:"cornerRadius,omitempty"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	Text         string               `json:"text,omitempty"`
	TextStyle    *template.TextStyle  `json:"textStyle,omitempty"`
	Animation    *template.Animation  `json:"animation,omitempty"`
}

// Composition is the full render-ready layout for one surface.
type Composition struct {
	TemplateID  string          `json:"templateId"`
	Canvas      template.Canvas `json:"canvas"`
	Scale       float64         `json:"scale"`
	Interactive bool            `json:"interactive"`
	Background  BackgroundLayer `json:"background"`
	Elements    []RenderElement `json:"elements"`
}

// ScaleToFit returns the uniform factor that fits the canvas into a display
// container of the given width.
func ScaleToFit(canvas template.Canvas, containerWidth float64) float64 {
	if canvas.Width <= 0 || containerWidth <= 0 {
		return 1
	}
	return containerWidth / float64(canvas.Width)
}

// Compose merges template, release data and overrides into a positioned
// composition. It is pure: identical input yields an identical layout
// regardless of the order upstream URL resolutions completed in.
func Compose(in Input) Composition {
	scale := in.Scale
	if scale <= 0 {
		scale = 1
	}

	comp := Composition{
		TemplateID:  in.Template.ID,
		Canvas:      in.Template.Canvas,
		Scale:       scale,
		Interactive: in.Interactive,
		Background:  composeBackground(in),
	}

	for _, item := range ExpandElements(in.Template, in.Overrides) {
		comp.Elements = append(comp.Elements, composeElement(in, item))
	}
	return comp
}

// composeBackground applies the resolution priority chain: explicit
// background override, then the template's own backdrop, then the release
// cover art.
func composeBackground(in Input) BackgroundLayer {
	ov := in.Overrides.Background
	if ov.Scale == 0 {
		ov = promotion.NewBackgroundOverride()
	}
	layer := BackgroundLayer{
		Position: ov.Position,
		Scale:    ov.Scale,
		Blur:     ov.Blur,
		Darken:   backgroundDarken,
	}

	switch {
	case ov.ImageURL != "":
		// Override wins even while its URL is still resolving; falling back
		// would flash the wrong image depending on network order.
		layer.URL = pickURL(in.Resolved.BackgroundOverride, ov.ImageURL)
	case in.Template.Background.ImageURL != "":
		layer.URL = pickURL(in.Resolved.TemplateBackground, in.Template.Background.ImageURL)
	default:
		layer.URL = in.Resolved.CoverArt
	}
	return layer
}

func composeElement(in Input, item Renderable) RenderElement {
	el := item.Element
	ov := in.Overrides.Element(item.OverrideID)

	out := RenderElement{
		ID:           el.ID,
		OverrideID:   item.OverrideID,
		Type:         el.Type,
		Source:       el.Source,
		BadgeID:      item.BadgeID,
		Position:     el.Position,
		Size:         el.Size,
		Scale:        1,
		CornerRadius: el.CornerRadius,
		TextStyle:    el.TextStyle,
	}

	// Cover art placement is fixed; only the page background is adjustable.
	if el.Source != template.SourceCoverArt {
		if ov.X != nil {
			out.Position.X += *ov.X
		}
		if ov.Y != nil {
			out.Position.Y += *ov.Y
		}
	}
	if ov.Scale != nil && *ov.Scale > 0 {
		out.Scale = *ov.Scale
	}
	if ov.SizeWidth != nil && ov.SizeHeight != nil {
		out.Size = &template.Size{Width: *ov.SizeWidth, Height: *ov.SizeHeight}
	}

	switch el.Type {
	case template.ElementImage:
		out.ImageURL = imageURL(in, el, item.BadgeID)
	case template.ElementText:
		out.Text = textContent(in.Release, el, ov)
	}

	if in.Interactive {
		out.Animation = el.Animation
	}
	return out
}

func imageURL(in Input, el template.Element, badgeID string) string {
	switch el.Source {
	case template.SourceCoverArt:
		return in.Resolved.CoverArt
	case template.SourcePlatformLogo:
		if b, ok := badge.Lookup(badgeID); ok {
			return b.LogoURL
		}
		return ""
	default:
		return ""
	}
}

// textContent resolves what a text element displays: the user's override
// wins, otherwise the content derives from the element's source role.
func textContent(rel release.Release, el template.Element, ov promotion.ElementOverride) string {
	if ov.Text != nil {
		return *ov.Text
	}
	switch el.Source {
	case template.SourceArtistName:
		return rel.ArtistName
	case template.SourceTrackName:
		return rel.Title
	case template.SourceCustomText:
		return DefaultCustomText
	default:
		return ""
	}
}

// pickURL prefers the resolved display URL; an already absolute reference is
// usable as-is while resolution is still in flight.
func pickURL(resolved, raw string) string {
	if resolved != "" {
		return resolved
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return ""
}
