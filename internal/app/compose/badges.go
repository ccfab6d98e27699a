package compose

import (
	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

// Badge row geometry. These constants must match the original template
// artwork; changing them shifts every saved creative.
const (
	// BadgeBoxSize is the square edge of one badge box in canvas pixels.
	BadgeBoxSize = 200.0
	// BadgeGap is the horizontal spacing between adjacent badge boxes.
	BadgeGap = 50.0
	// badgeRowBottomOffset is how far above the canvas bottom the row sits.
	badgeRowBottomOffset = 300.0
)

// BadgeRowPositions lays out n badge boxes as a horizontally centered row:
// total row width n*box + (n-1)*gap, left edge at canvasCenter - width/2,
// fixed y at canvasHeight - 300.
func BadgeRowPositions(canvas template.Canvas, n int) []template.Position {
	if n <= 0 {
		return nil
	}
	rowWidth := float64(n)*BadgeBoxSize + float64(n-1)*BadgeGap
	startX := float64(canvas.Width)/2 - rowWidth/2
	y := float64(canvas.Height) - badgeRowBottomOffset

	out := make([]template.Position, n)
	for i := 0; i < n; i++ {
		out[i] = template.Position{
			X: startX + float64(i)*(BadgeBoxSize+BadgeGap),
			Y: y,
		}
	}
	return out
}
