package compose

import (
	"errors"
	"reflect"
	"testing"

	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestMergeIsNonDestructive(t *testing.T) {
	ov := NewOverrides()

	if err := ov.Merge("header", promotion.ElementOverride{X: floatPtr(10)}); err != nil {
		t.Fatalf("merge x: %v", err)
	}
	if err := ov.Merge("header", promotion.ElementOverride{Scale: floatPtr(2)}); err != nil {
		t.Fatalf("merge scale: %v", err)
	}

	got := ov.Element("header")
	if got.X == nil || *got.X != 10 {
		t.Fatalf("x was clobbered: %#v", got)
	}
	if got.Scale == nil || *got.Scale != 2 {
		t.Fatalf("scale not applied: %#v", got)
	}
}

func TestCarryOverKeepsContentDropsGeometry(t *testing.T) {
	ov := NewOverrides()
	if err := ov.Merge("header", promotion.ElementOverride{
		Text: strPtr("OUT NOW"),
		X:    floatPtr(50),
	}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if err := ov.Merge("logo", promotion.ElementOverride{
		SelectedBadges: []string{"spotify", "tidal"},
		Y:              floatPtr(-20),
		Scale:          floatPtr(1.5),
	}); err != nil {
		t.Fatalf("merge logo: %v", err)
	}

	next := ov.CarryOver()

	header := next.Element("header")
	if header.Text == nil || *header.Text != "OUT NOW" {
		t.Fatalf("text did not survive: %#v", header)
	}
	if header.X != nil {
		t.Fatalf("x should be dropped on template switch: %#v", header)
	}

	logo := next.Element("logo")
	if !reflect.DeepEqual(logo.SelectedBadges, []string{"spotify", "tidal"}) {
		t.Fatalf("badge selection did not survive: %#v", logo)
	}
	if logo.Y != nil || logo.Scale != nil {
		t.Fatalf("geometry should be dropped: %#v", logo)
	}
}

func TestResetLayoutClearsEverything(t *testing.T) {
	ov := NewOverrides()
	if err := ov.Merge("header", promotion.ElementOverride{Text: strPtr("hi"), X: floatPtr(1)}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	ov.ResetLayout()
	if len(ov.Elements) != 0 {
		t.Fatalf("expected empty overrides, got %#v", ov.Elements)
	}
}

func TestDefaultBadgeSelection(t *testing.T) {
	ov := NewOverrides()
	got := ov.SelectedBadges("logo")
	want := []string{"spotify", "apple-music", "youtube-music"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("default selection = %v, want %v", got, want)
	}
}

func TestBadgeCapEnforced(t *testing.T) {
	ov := NewOverrides()
	four := []string{"spotify", "apple-music", "youtube-music", "deezer"}
	if err := ov.Merge("logo", promotion.ElementOverride{SelectedBadges: four}); err != nil {
		t.Fatalf("merge four: %v", err)
	}

	if err := ov.ToggleBadge("logo", "tidal"); !errors.Is(err, ErrTooManyBadges) {
		t.Fatalf("expected ErrTooManyBadges, got %v", err)
	}
	if got := ov.SelectedBadges("logo"); !reflect.DeepEqual(got, four) {
		t.Fatalf("selection changed after rejected toggle: %v", got)
	}

	five := append(append([]string(nil), four...), "tidal")
	if err := ov.Merge("logo", promotion.ElementOverride{SelectedBadges: five}); !errors.Is(err, ErrTooManyBadges) {
		t.Fatalf("expected ErrTooManyBadges on merge, got %v", err)
	}
}

func TestToggleBadgeRemoves(t *testing.T) {
	ov := NewOverrides()
	if err := ov.ToggleBadge("logo", "apple-music"); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	got := ov.SelectedBadges("logo")
	want := []string{"spotify", "youtube-music"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("selection after removal = %v, want %v", got, want)
	}
}
