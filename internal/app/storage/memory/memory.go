// Package memory provides an in-memory implementation of the storage
// interfaces. It is safe for concurrent use and is primarily intended for
// tests and local development.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
	"github.com/KratoLib/promo_service/internal/app/storage"
)

// Store is the in-memory implementation of the storage interfaces.
type Store struct {
	mu                  sync.RWMutex
	nextID              int64
	templates           map[string]template.Template
	templateOrder       []string
	releases            map[string]release.Release
	promotions          map[string]promotion.Promotion
	promotionsByRelease map[string]string
	promotionsBySlug    map[string]string
}

var _ storage.TemplateStore = (*Store)(nil)
var _ storage.PromotionStore = (*Store)(nil)
var _ storage.ReleaseStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:              1,
		templates:           make(map[string]template.Template),
		releases:            make(map[string]release.Release),
		promotions:          make(map[string]promotion.Promotion),
		promotionsByRelease: make(map[string]string),
		promotionsBySlug:    make(map[string]string),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// TemplateStore implementation ------------------------------------------------

func (s *Store) CreateTemplate(_ context.Context, tpl template.Template) (template.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tpl.ID == "" {
		tpl.ID = s.nextIDLocked()
	} else if _, exists := s.templates[tpl.ID]; exists {
		return template.Template{}, fmt.Errorf("template %s already exists", tpl.ID)
	}

	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	tpl.Elements = cloneElements(tpl.Elements)

	s.templates[tpl.ID] = tpl
	s.templateOrder = append(s.templateOrder, tpl.ID)
	return cloneTemplate(tpl), nil
}

func (s *Store) GetTemplate(_ context.Context, id string) (template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templates[id]
	if !ok {
		return template.Template{}, fmt.Errorf("template %s: %w", id, storage.ErrNotFound)
	}
	return cloneTemplate(tpl), nil
}

func (s *Store) ListTemplates(_ context.Context) ([]template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]template.Template, 0, len(s.templateOrder))
	for _, id := range s.templateOrder {
		result = append(result, cloneTemplate(s.templates[id]))
	}
	return result, nil
}

// PromotionStore implementation -----------------------------------------------

func (s *Store) CreatePromotion(_ context.Context, promo promotion.Promotion) (promotion.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if promo.ID == "" {
		promo.ID = s.nextIDLocked()
	} else if _, exists := s.promotions[promo.ID]; exists {
		return promotion.Promotion{}, fmt.Errorf("promotion %s already exists", promo.ID)
	}

	slugKey := strings.ToLower(promo.Slug)
	if existing, exists := s.promotionsBySlug[slugKey]; exists {
		return promotion.Promotion{}, fmt.Errorf("slug %s already taken by promotion %s", promo.Slug, existing)
	}
	if existing, exists := s.promotionsByRelease[promo.ReleaseID]; exists {
		return promotion.Promotion{}, fmt.Errorf("release %s already has promotion %s", promo.ReleaseID, existing)
	}

	now := time.Now().UTC()
	promo.CreatedAt = now
	promo.UpdatedAt = now

	s.promotions[promo.ID] = clonePromotion(promo)
	s.promotionsByRelease[promo.ReleaseID] = promo.ID
	if slugKey != "" {
		s.promotionsBySlug[slugKey] = promo.ID
	}
	return clonePromotion(promo), nil
}

func (s *Store) UpdatePromotion(_ context.Context, promo promotion.Promotion) (promotion.Promotion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.promotions[promo.ID]
	if !ok {
		return promotion.Promotion{}, fmt.Errorf("promotion %s: %w", promo.ID, storage.ErrNotFound)
	}

	newSlug := strings.ToLower(promo.Slug)
	oldSlug := strings.ToLower(original.Slug)
	if newSlug != oldSlug {
		if existing, exists := s.promotionsBySlug[newSlug]; exists && existing != promo.ID {
			return promotion.Promotion{}, fmt.Errorf("slug %s already taken by promotion %s", promo.Slug, existing)
		}
	}

	promo.ReleaseID = original.ReleaseID
	promo.CreatedAt = original.CreatedAt
	promo.UpdatedAt = time.Now().UTC()

	s.promotions[promo.ID] = clonePromotion(promo)
	if newSlug != oldSlug {
		delete(s.promotionsBySlug, oldSlug)
		if newSlug != "" {
			s.promotionsBySlug[newSlug] = promo.ID
		}
	}
	return clonePromotion(promo), nil
}

func (s *Store) GetPromotion(_ context.Context, id string) (promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promo, ok := s.promotions[id]
	if !ok {
		return promotion.Promotion{}, fmt.Errorf("promotion %s: %w", id, storage.ErrNotFound)
	}
	return clonePromotion(promo), nil
}

func (s *Store) GetPromotionByRelease(_ context.Context, releaseID string) (promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.promotionsByRelease[releaseID]; ok {
		return clonePromotion(s.promotions[id]), nil
	}
	return promotion.Promotion{}, fmt.Errorf("promotion for release %s: %w", releaseID, storage.ErrNotFound)
}

func (s *Store) GetPromotionBySlug(_ context.Context, slug string) (promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.promotionsBySlug[strings.ToLower(slug)]; ok {
		return clonePromotion(s.promotions[id]), nil
	}
	return promotion.Promotion{}, fmt.Errorf("promotion %s: %w", slug, storage.ErrNotFound)
}

func (s *Store) ListPromotions(_ context.Context) ([]promotion.Promotion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]promotion.Promotion, 0, len(s.promotions))
	for _, promo := range s.promotions {
		result = append(result, clonePromotion(promo))
	}
	return result, nil
}

// ReleaseStore implementation -------------------------------------------------

func (s *Store) CreateRelease(_ context.Context, rel release.Release) (release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rel.ID == "" {
		rel.ID = s.nextIDLocked()
	} else if _, exists := s.releases[rel.ID]; exists {
		return release.Release{}, fmt.Errorf("release %s already exists", rel.ID)
	}

	now := time.Now().UTC()
	rel.CreatedAt = now
	rel.UpdatedAt = now

	s.releases[rel.ID] = rel
	return rel, nil
}

func (s *Store) UpdateRelease(_ context.Context, rel release.Release) (release.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.releases[rel.ID]
	if !ok {
		return release.Release{}, fmt.Errorf("release %s: %w", rel.ID, storage.ErrNotFound)
	}

	rel.CreatedAt = original.CreatedAt
	rel.UpdatedAt = time.Now().UTC()

	s.releases[rel.ID] = rel
	return rel, nil
}

func (s *Store) GetRelease(_ context.Context, id string) (release.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rel, ok := s.releases[id]
	if !ok {
		return release.Release{}, fmt.Errorf("release %s: %w", id, storage.ErrNotFound)
	}
	return rel, nil
}

func (s *Store) ListReleases(_ context.Context) ([]release.Release, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]release.Release, 0, len(s.releases))
	for _, rel := range s.releases {
		result = append(result, rel)
	}
	return result, nil
}

// Helpers ---------------------------------------------------------------------

func cloneElements(src []template.Element) []template.Element {
	if len(src) == 0 {
		return nil
	}
	dst := make([]template.Element, len(src))
	copy(dst, src)
	for i := range dst {
		if dst[i].Size != nil {
			size := *dst[i].Size
			dst[i].Size = &size
		}
		if dst[i].TextStyle != nil {
			style := *dst[i].TextStyle
			dst[i].TextStyle = &style
		}
		if dst[i].Animation != nil {
			anim := *dst[i].Animation
			dst[i].Animation = &anim
		}
		dst[i].Allowed = append([]string(nil), dst[i].Allowed...)
		dst[i].SizeOptions = append([]template.SizeOption(nil), dst[i].SizeOptions...)
	}
	return dst
}

func cloneTemplate(tpl template.Template) template.Template {
	tpl.Elements = cloneElements(tpl.Elements)
	return tpl
}

func clonePromotion(promo promotion.Promotion) promotion.Promotion {
	promo.StreamingLinks = append([]promotion.StreamingLink(nil), promo.StreamingLinks...)
	if promo.Customization.ElementOverrides != nil {
		overrides := make(map[string]promotion.ElementOverride, len(promo.Customization.ElementOverrides))
		for id, ov := range promo.Customization.ElementOverrides {
			ov.SelectedBadges = append([]string(nil), ov.SelectedBadges...)
			overrides[id] = ov
		}
		promo.Customization.ElementOverrides = overrides
	}
	return promo
}
