package compose

import (
	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

// Renderable is one concrete render item after synthetic expansion. For
// exploded badge boxes, Element is a synthetic copy positioned by
// BadgeRowPositions while OverrideID still keys the original logo element,
// so a shared drag offset or scale applies to the whole row.
type Renderable struct {
	Element    template.Element
	OverrideID string
	BadgeID    string
}

// ExpandElements converts the template's element list into render items.
// Every element maps to itself except platform_logo, which explodes into one
// square box per selected badge.
func ExpandElements(tpl template.Template, overrides Overrides) []Renderable {
	out := make([]Renderable, 0, len(tpl.Elements))
	for _, el := range tpl.Elements {
		if el.Source != template.SourcePlatformLogo {
			out = append(out, Renderable{Element: el, OverrideID: el.ID})
			continue
		}

		selected := allowedBadges(el, overrides.SelectedBadges(el.ID))
		positions := BadgeRowPositions(tpl.Canvas, len(selected))
		for i, badgeID := range selected {
			box := el
			box.ID = el.ID + ":" + badgeID
			box.Type = template.ElementImage
			box.Position = positions[i]
			box.Size = &template.Size{Width: BadgeBoxSize, Height: BadgeBoxSize}
			out = append(out, Renderable{Element: box, OverrideID: el.ID, BadgeID: badgeID})
		}
	}
	return out
}

// allowedBadges filters the selection down to the element's allow list, when
// the template declares one.
func allowedBadges(el template.Element, selected []string) []string {
	if len(el.Allowed) == 0 {
		return selected
	}
	allowed := make(map[string]struct{}, len(el.Allowed))
	for _, id := range el.Allowed {
		allowed[id] = struct{}{}
	}
	out := make([]string, 0, len(selected))
	for _, id := range selected {
		if _, ok := allowed[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
