// Package storage declares the persistence interfaces the promo services
// depend on. Implementations live in the memory and postgres subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// match it with errors.Is to distinguish "absent" from genuine failures.
var ErrNotFound = errors.New("not found")

// TemplateStore persists the creative template catalog.
type TemplateStore interface {
	CreateTemplate(ctx context.Context, tpl template.Template) (template.Template, error)
	GetTemplate(ctx context.Context, id string) (template.Template, error)
	ListTemplates(ctx context.Context) ([]template.Template, error)
}

// PromotionStore persists promotion records.
type PromotionStore interface {
	CreatePromotion(ctx context.Context, promo promotion.Promotion) (promotion.Promotion, error)
	UpdatePromotion(ctx context.Context, promo promotion.Promotion) (promotion.Promotion, error)
	GetPromotion(ctx context.Context, id string) (promotion.Promotion, error)
	GetPromotionByRelease(ctx context.Context, releaseID string) (promotion.Promotion, error)
	GetPromotionBySlug(ctx context.Context, slug string) (promotion.Promotion, error)
	ListPromotions(ctx context.Context) ([]promotion.Promotion, error)
}

// ReleaseStore persists the release records promotions attach to.
type ReleaseStore interface {
	CreateRelease(ctx context.Context, rel release.Release) (release.Release, error)
	UpdateRelease(ctx context.Context, rel release.Release) (release.Release, error)
	GetRelease(ctx context.Context, id string) (release.Release, error)
	ListReleases(ctx context.Context) ([]release.Release, error)
}
