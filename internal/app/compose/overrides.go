package compose

import (
	"fmt"

	"github.com/KratoLib/promo_service/internal/app/domain/badge"
	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
)

// ErrTooManyBadges is returned when a selection would exceed the badge cap.
var ErrTooManyBadges = fmt.Errorf("at most %d badges may be selected", badge.MaxSelected)

// Overrides is the working edit state for one promotion: sparse per-element
// customizations plus the background adjustment. The zero value is usable.
type Overrides struct {
	Elements   map[string]promotion.ElementOverride
	Background promotion.BackgroundOverride
}

// NewOverrides returns an empty edit state with the default background.
func NewOverrides() Overrides {
	return Overrides{
		Elements:   make(map[string]promotion.ElementOverride),
		Background: promotion.NewBackgroundOverride(),
	}
}

// FromCustomization rebuilds the edit state from a persisted customization.
func FromCustomization(c promotion.Customization) Overrides {
	ov := NewOverrides()
	for id, o := range c.ElementOverrides {
		ov.Elements[id] = o
	}
	if c.BackgroundOverride.Scale != 0 {
		ov.Background = c.BackgroundOverride
	}
	return ov
}

// Element returns the override for the given element id, or a zero override.
func (o Overrides) Element(id string) promotion.ElementOverride {
	if o.Elements == nil {
		return promotion.ElementOverride{}
	}
	return o.Elements[id]
}

// Merge folds the set fields of partial into the existing override for the
// element, creating the entry if absent. Unset fields never clobber
// previously set ones.
func (o *Overrides) Merge(elementID string, partial promotion.ElementOverride) error {
	if len(partial.SelectedBadges) > badge.MaxSelected {
		return ErrTooManyBadges
	}
	if o.Elements == nil {
		o.Elements = make(map[string]promotion.ElementOverride)
	}
	cur := o.Elements[elementID]
	if partial.Text != nil {
		cur.Text = partial.Text
	}
	if partial.X != nil {
		cur.X = partial.X
	}
	if partial.Y != nil {
		cur.Y = partial.Y
	}
	if partial.Scale != nil {
		cur.Scale = partial.Scale
	}
	if partial.SizeWidth != nil {
		cur.SizeWidth = partial.SizeWidth
	}
	if partial.SizeHeight != nil {
		cur.SizeHeight = partial.SizeHeight
	}
	if partial.SelectedBadges != nil {
		cur.SelectedBadges = append([]string(nil), partial.SelectedBadges...)
	}
	o.Elements[elementID] = cur
	return nil
}

// ResetLayout clears every element override. Text and badge selections are
// lost; the background adjustment is kept.
func (o *Overrides) ResetLayout() {
	o.Elements = make(map[string]promotion.ElementOverride)
}

// CarryOver prunes the state for a template switch: user-authored text and
// badge selections are content and survive, positional offsets and size
// tweaks are layout and are dropped so the new template's geometry applies.
func (o Overrides) CarryOver() Overrides {
	next := NewOverrides()
	next.Background = o.Background
	for id, ov := range o.Elements {
		kept := promotion.ElementOverride{
			Text:           ov.Text,
			SelectedBadges: append([]string(nil), ov.SelectedBadges...),
		}
		if !kept.IsZero() {
			next.Elements[id] = kept
		}
	}
	return next
}

// SelectedBadges returns the badge selection for the element, falling back
// to the default trio when the user has not chosen yet.
func (o Overrides) SelectedBadges(elementID string) []string {
	if sel := o.Element(elementID).SelectedBadges; len(sel) > 0 {
		if len(sel) > badge.MaxSelected {
			sel = sel[:badge.MaxSelected]
		}
		return append([]string(nil), sel...)
	}
	return badge.DefaultSelection()
}

// ToggleBadge adds or removes a badge from the element's selection. Adding
// beyond the cap is rejected and the selection is left unchanged.
func (o *Overrides) ToggleBadge(elementID, badgeID string) error {
	sel := o.SelectedBadges(elementID)
	for i, id := range sel {
		if id == badgeID {
			sel = append(sel[:i], sel[i+1:]...)
			return o.Merge(elementID, promotion.ElementOverride{SelectedBadges: sel})
		}
	}
	if len(sel) >= badge.MaxSelected {
		return ErrTooManyBadges
	}
	return o.Merge(elementID, promotion.ElementOverride{SelectedBadges: append(sel, badgeID)})
}

// Customization serializes the edit state for persistence under the given
// template id.
func (o Overrides) Customization(templateID string) promotion.Customization {
	c := promotion.Customization{
		TemplateID:         templateID,
		BackgroundOverride: o.Background,
	}
	if len(o.Elements) > 0 {
		c.ElementOverrides = make(map[string]promotion.ElementOverride, len(o.Elements))
		for id, ov := range o.Elements {
			if !ov.IsZero() {
				c.ElementOverrides[id] = ov
			}
		}
	}
	return c
}
