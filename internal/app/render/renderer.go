// Package render rasterizes compositions into PNG images on the server.
// The same layouts the editor shows are drawn here pixel for pixel, so a
// downloaded story matches its preview.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/KratoLib/promo_service/internal/app/compose"
	"github.com/KratoLib/promo_service/internal/app/domain/badge"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

const baseCanvasColor = "#111111"

// badgePlaceholderRadius rounds the fallback boxes drawn when a platform
// logo image is unavailable.
const badgePlaceholderRadius = 24.0

// Renderer draws compositions onto RGBA canvases.
type Renderer struct {
	fonts *fontSource
}

// New constructs a renderer. fontPath may be empty; text then falls back to
// a small built-in bitmap face.
func New(fontPath string) (*Renderer, error) {
	fonts, err := newFontSource(fontPath)
	if err != nil {
		return nil, err
	}
	return &Renderer{fonts: fonts}, nil
}

// Render rasterizes a composition. images maps display URLs to decoded
// pixels; elements whose URL is absent from the map degrade gracefully
// instead of failing the whole render.
func (r *Renderer) Render(comp compose.Composition, images map[string]image.Image) (*image.RGBA, error) {
	scale := comp.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(float64(comp.Canvas.Width)*scale + 0.5)
	h := int(float64(comp.Canvas.Height)*scale + 0.5)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas %dx%d", comp.Canvas.Width, comp.Canvas.Height)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(canvas, ParseHexColor(baseCanvasColor))

	r.drawBackground(canvas, comp.Background, images, scale)

	for _, el := range comp.Elements {
		switch el.Type {
		case template.ElementImage:
			r.drawImageElement(canvas, el, images, scale)
		case template.ElementText:
			if err := r.drawTextElement(canvas, el, scale); err != nil {
				return nil, err
			}
		}
	}
	return canvas, nil
}

func (r *Renderer) drawBackground(canvas *image.RGBA, bg compose.BackgroundLayer, images map[string]image.Image, scale float64) {
	src, ok := images[bg.URL]
	if bg.URL == "" || !ok {
		return
	}

	bounds := canvas.Bounds()
	layer := image.NewRGBA(bounds)
	srcBounds := src.Bounds()
	rect := coverFitRect(srcBounds.Dx(), srcBounds.Dy(), bounds.Dx(), bounds.Dy(),
		bg.Scale, bg.Position.X, bg.Position.Y)
	scaleInto(layer, rect, src)

	boxBlur(layer, int(bg.Blur*scale+0.5))
	darken(layer, bg.Darken)

	draw.Draw(canvas, bounds, layer, bounds.Min, draw.Over)
}

func (r *Renderer) drawImageElement(canvas *image.RGBA, el compose.RenderElement, images map[string]image.Image, scale float64) {
	src, haveImage := images[el.ImageURL]
	if el.ImageURL == "" {
		haveImage = false
	}

	boxW, boxH := elementBox(el, src, haveImage)
	if boxW <= 0 || boxH <= 0 {
		return
	}

	// el.Scale grows the box about its own center.
	drawW := boxW * el.Scale * scale
	drawH := boxH * el.Scale * scale
	x := el.Position.X*scale - (drawW-boxW*scale)/2
	y := el.Position.Y*scale - (drawH-boxH*scale)/2

	rect := image.Rect(int(x), int(y), int(x+drawW), int(y+drawH))
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}

	radius := el.CornerRadius * el.Scale * scale
	if haveImage {
		tile := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		scaleInto(tile, tile.Bounds(), src)
		drawRounded(canvas, rect, tile, radius)
		return
	}
	if el.BadgeID != "" {
		r.drawBadgePlaceholder(canvas, rect, el.BadgeID, radius, scale)
	}
}

// drawBadgePlaceholder paints a colored rounded box with the platform
// monogram when the logo asset is missing.
func (r *Renderer) drawBadgePlaceholder(canvas *image.RGBA, rect image.Rectangle, badgeID string, radius, scale float64) {
	b, ok := badge.Lookup(badgeID)
	if !ok {
		return
	}
	if radius < badgePlaceholderRadius*scale {
		radius = badgePlaceholderRadius * scale
	}

	tile := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	fill(tile, ParseHexColor(b.Color))
	drawRounded(canvas, rect, tile, radius)

	face, err := r.fonts.face(float64(rect.Dy()) * 0.4)
	if err != nil {
		return
	}
	cx := float64(rect.Min.X+rect.Max.X) / 2
	baseline := float64(rect.Min.Y) + float64(rect.Dy())*0.62
	drawText(canvas, badge.Monogram(b.Name), cx, baseline, face, color.White, "center")
}

func (r *Renderer) drawTextElement(canvas *image.RGBA, el compose.RenderElement, scale float64) error {
	if el.Text == "" || el.TextStyle == nil {
		return nil
	}
	face, err := r.fonts.face(el.TextStyle.Size * el.Scale * scale)
	if err != nil {
		return err
	}
	drawText(canvas, el.Text,
		el.Position.X*scale, el.Position.Y*scale,
		face, ParseHexColor(el.TextStyle.Color), el.TextStyle.Align)
	return nil
}

// elementBox returns the unscaled box an image element occupies, falling
// back to the source image's intrinsic size when the layout leaves it open.
func elementBox(el compose.RenderElement, src image.Image, haveImage bool) (float64, float64) {
	if el.Size != nil {
		return el.Size.Width, el.Size.Height
	}
	if haveImage {
		b := src.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	}
	return 0, 0
}

// drawRounded composites tile into rect clipped by a rounded-corner mask.
func drawRounded(dst *image.RGBA, rect image.Rectangle, tile image.Image, radius float64) {
	if radius <= 0 {
		draw.Draw(dst, rect, tile, tile.Bounds().Min, draw.Over)
		return
	}
	mask := roundedMask(rect.Dx(), rect.Dy(), radius)
	draw.DrawMask(dst, rect, tile, tile.Bounds().Min, mask, mask.Bounds().Min, draw.Over)
}

// roundedMask builds an alpha mask for a w-by-h rounded rectangle.
func roundedMask(w, h int, radius float64) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	maxR := float64(w) / 2
	if half := float64(h) / 2; half < maxR {
		maxR = half
	}
	if radius > maxR {
		radius = maxR
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if insideRounded(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h), radius) {
				mask.SetAlpha(x, y, color.Alpha{A: 0xFF})
			}
		}
	}
	return mask
}

func insideRounded(x, y, w, h, r float64) bool {
	var cx, cy float64
	switch {
	case x < r && y < r:
		cx, cy = r, r
	case x > w-r && y < r:
		cx, cy = w-r, r
	case x < r && y > h-r:
		cx, cy = r, h-r
	case x > w-r && y > h-r:
		cx, cy = w-r, h-r
	default:
		return true
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
