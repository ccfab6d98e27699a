package render

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontSource produces faces at requested sizes. Without a TTF it degrades to
// the fixed-size basicfont, which keeps rasterization working in minimal
// deployments and tests.
type fontSource struct {
	parsed *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

func newFontSource(fontPath string) (*fontSource, error) {
	src := &fontSource{faces: make(map[float64]font.Face)}
	if fontPath == "" {
		return src, nil
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fontPath, err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontPath, err)
	}
	src.parsed = parsed
	return src, nil
}

func (s *fontSource) face(size float64) (font.Face, error) {
	if s.parsed == nil {
		return basicfont.Face7x13, nil
	}
	if size <= 0 {
		size = 16
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if face, ok := s.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(s.parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face at %.0fpx: %w", size, err)
	}
	s.faces[size] = face
	return face, nil
}

// drawText renders text on dst. x is interpreted per align: the center for
// "center", the right edge for "right", otherwise the left edge. y is the
// text baseline.
func drawText(dst *image.RGBA, text string, x, y float64, face font.Face, c color.Color, align string) {
	if text == "" {
		return
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := d.MeasureString(text)

	switch align {
	case "center":
		d.Dot.X = fixed.Int26_6(x*64) - width/2
	case "right":
		d.Dot.X = fixed.Int26_6(x*64) - width
	default:
		d.Dot.X = fixed.Int26_6(x * 64)
	}
	d.Dot.Y = fixed.Int26_6(y * 64)
	d.DrawString(text)
}
