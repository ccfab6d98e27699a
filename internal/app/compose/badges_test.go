package compose

import (
	"testing"

	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

func TestBadgeRowPositionsCentered(t *testing.T) {
	canvas := template.Canvas{Width: 1080, Height: 1920}

	for n := 1; n <= 4; n++ {
		positions := BadgeRowPositions(canvas, n)
		if len(positions) != n {
			t.Fatalf("n=%d: expected %d positions, got %d", n, n, len(positions))
		}

		rowWidth := float64(n)*BadgeBoxSize + float64(n-1)*BadgeGap
		wantStart := float64(canvas.Width)/2 - rowWidth/2
		if positions[0].X != wantStart {
			t.Fatalf("n=%d: start X = %v, want %v", n, positions[0].X, wantStart)
		}

		for i, pos := range positions {
			if pos.Y != float64(canvas.Height)-300 {
				t.Fatalf("n=%d badge %d: Y = %v, want %v", n, i, pos.Y, float64(canvas.Height)-300)
			}
			if i > 0 {
				pitch := pos.X - positions[i-1].X
				if pitch != BadgeBoxSize+BadgeGap {
					t.Fatalf("n=%d badge %d: pitch = %v, want %v", n, i, pitch, BadgeBoxSize+BadgeGap)
				}
			}
		}

		// Row must be symmetric about the canvas midpoint.
		left := positions[0].X
		right := positions[n-1].X + BadgeBoxSize
		center := (left + right) / 2
		if center != float64(canvas.Width)/2 {
			t.Fatalf("n=%d: row center = %v, want %v", n, center, float64(canvas.Width)/2)
		}
	}
}

func TestBadgeRowPositionsKnownValues(t *testing.T) {
	// classic_story 1080x1920 with two badges: spotify at (315, 1620),
	// apple-music at (565, 1620).
	canvas := template.Canvas{Width: 1080, Height: 1920}
	positions := BadgeRowPositions(canvas, 2)

	if positions[0].X != 315 || positions[0].Y != 1620 {
		t.Fatalf("badge 0 at (%v, %v), want (315, 1620)", positions[0].X, positions[0].Y)
	}
	if positions[1].X != 565 || positions[1].Y != 1620 {
		t.Fatalf("badge 1 at (%v, %v), want (565, 1620)", positions[1].X, positions[1].Y)
	}
}

func TestBadgeRowPositionsEmpty(t *testing.T) {
	if got := BadgeRowPositions(template.Canvas{Width: 1080, Height: 1920}, 0); got != nil {
		t.Fatalf("expected nil for zero badges, got %v", got)
	}
}
