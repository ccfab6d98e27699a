// Package templates serves the creative template catalog.
package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KratoLib/promo_service/internal/app/domain/template"
	"github.com/KratoLib/promo_service/internal/app/storage"
	"github.com/KratoLib/promo_service/pkg/logger"
)

// ErrEmptyCatalog is returned when neither the store nor the built-in
// defaults can supply a template. It should never happen in practice.
var ErrEmptyCatalog = errors.New("template catalog is empty")

// Service manages the template catalog.
type Service struct {
	store storage.TemplateStore
	log   *logger.Logger
}

// New constructs a template catalog service.
func New(store storage.TemplateStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("templates")
	}
	return &Service{store: store, log: log}
}

// List returns the catalog. An unseeded store falls back to the built-in
// defaults so callers always have layouts to offer.
func (s *Service) List(ctx context.Context) ([]template.Template, error) {
	stored, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return Defaults(), nil
	}
	return stored, nil
}

// Get retrieves a single template, consulting the built-in defaults when the
// store has not been seeded.
func (s *Service) Get(ctx context.Context, id string) (template.Template, error) {
	tpl, err := s.store.GetTemplate(ctx, id)
	if err == nil {
		return tpl, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return template.Template{}, err
	}
	stored, listErr := s.store.ListTemplates(ctx)
	if listErr != nil {
		return template.Template{}, listErr
	}
	if len(stored) == 0 {
		for _, def := range Defaults() {
			if def.ID == id {
				return def, nil
			}
		}
	}
	return template.Template{}, err
}

// Seed populates an empty store with the built-in defaults. A non-empty
// store is left untouched and its contents returned.
func (s *Service) Seed(ctx context.Context) ([]template.Template, error) {
	existing, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	seeded := make([]template.Template, 0, len(Defaults()))
	for _, def := range Defaults() {
		created, err := s.store.CreateTemplate(ctx, def)
		if err != nil {
			return nil, fmt.Errorf("seed template %s: %w", def.ID, err)
		}
		seeded = append(seeded, created)
	}
	s.log.WithField("count", len(seeded)).Info("template catalog seeded")
	return seeded, nil
}

// DefaultForFormat returns the first catalog template matching the format,
// or the first template at all when none match.
func (s *Service) DefaultForFormat(ctx context.Context, format template.Format) (template.Template, error) {
	catalog, err := s.List(ctx)
	if err != nil {
		return template.Template{}, err
	}
	if len(catalog) == 0 {
		return template.Template{}, ErrEmptyCatalog
	}
	for _, tpl := range catalog {
		if tpl.Format == format {
			return tpl, nil
		}
	}
	return catalog[0], nil
}

// Resolve returns the template for a saved customization. An unknown id
// falls back to the first catalog template; the substitution is logged
// because the viewer silently loses the layout they saved.
func (s *Service) Resolve(ctx context.Context, id string) (template.Template, bool, error) {
	if strings.TrimSpace(id) != "" {
		tpl, err := s.Get(ctx, id)
		if err == nil {
			return tpl, false, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return template.Template{}, false, err
		}
	}

	catalog, err := s.List(ctx)
	if err != nil {
		return template.Template{}, false, err
	}
	if len(catalog) == 0 {
		return template.Template{}, false, ErrEmptyCatalog
	}
	s.log.WithField("template_id", id).
		WithField("fallback_id", catalog[0].ID).
		Warn("saved template no longer in catalog; substituting first template")
	return catalog[0], true, nil
}
