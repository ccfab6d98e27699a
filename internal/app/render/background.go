package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// coverFitRect computes where a source image lands when scaled to cover a
// dst-by-dst box. zoom multiplies the cover scale; panX/panY are percentages
// (0..100) steering which part of the overflow stays visible, 50 meaning
// centered.
func coverFitRect(srcW, srcH, dstW, dstH int, zoom, panX, panY float64) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rect(0, 0, dstW, dstH)
	}
	if zoom <= 0 {
		zoom = 1
	}

	scale := float64(dstW) / float64(srcW)
	if s := float64(dstH) / float64(srcH); s > scale {
		scale = s
	}
	scale *= zoom

	scaledW := float64(srcW) * scale
	scaledH := float64(srcH) * scale

	x := -(scaledW - float64(dstW)) * clampPercent(panX) / 100
	y := -(scaledH - float64(dstH)) * clampPercent(panY) / 100

	return image.Rect(int(x), int(y), int(x+scaledW), int(y+scaledH))
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// boxBlur applies a separable box blur in place. Radius is in pixels; zero or
// negative radii are no-ops.
func boxBlur(img *image.RGBA, radius int) {
	if radius <= 0 {
		return
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return
	}

	tmp := image.NewRGBA(bounds)
	blurHorizontal(img, tmp, radius)
	blurVertical(tmp, img, radius)
}

func blurHorizontal(src, dst *image.RGBA, radius int) {
	bounds := src.Bounds()
	window := float64(2*radius + 1)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b, a float64
			for dx := -radius; dx <= radius; dx++ {
				sx := x + dx
				if sx < bounds.Min.X {
					sx = bounds.Min.X
				}
				if sx >= bounds.Max.X {
					sx = bounds.Max.X - 1
				}
				i := src.PixOffset(sx, y)
				r += float64(src.Pix[i])
				g += float64(src.Pix[i+1])
				b += float64(src.Pix[i+2])
				a += float64(src.Pix[i+3])
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8(r / window)
			dst.Pix[i+1] = uint8(g / window)
			dst.Pix[i+2] = uint8(b / window)
			dst.Pix[i+3] = uint8(a / window)
		}
	}
}

func blurVertical(src, dst *image.RGBA, radius int) {
	bounds := src.Bounds()
	window := float64(2*radius + 1)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b, a float64
			for dy := -radius; dy <= radius; dy++ {
				sy := y + dy
				if sy < bounds.Min.Y {
					sy = bounds.Min.Y
				}
				if sy >= bounds.Max.Y {
					sy = bounds.Max.Y - 1
				}
				i := src.PixOffset(x, sy)
				r += float64(src.Pix[i])
				g += float64(src.Pix[i+1])
				b += float64(src.Pix[i+2])
				a += float64(src.Pix[i+3])
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8(r / window)
			dst.Pix[i+1] = uint8(g / window)
			dst.Pix[i+2] = uint8(b / window)
			dst.Pix[i+3] = uint8(a / window)
		}
	}
}

// darken multiplies the image toward black by the given opacity (0..1).
func darken(img *image.RGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	keep := 1 - opacity

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(float64(img.Pix[i]) * keep)
			img.Pix[i+1] = uint8(float64(img.Pix[i+1]) * keep)
			img.Pix[i+2] = uint8(float64(img.Pix[i+2]) * keep)
		}
	}
}

// scaleInto draws src scaled into rect on dst using a high quality kernel.
func scaleInto(dst *image.RGBA, rect image.Rectangle, src image.Image) {
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Over, nil)
}

// fill paints the whole image with a solid color.
func fill(img *image.RGBA, c color.Color) {
	xdraw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}
