// Package promotions manages the persisted promotion records and their
// public landing pages.
package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KratoLib/promo_service/internal/app/domain/badge"
	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/storage"
	"github.com/KratoLib/promo_service/pkg/logger"
)

// Service errors surfaced to the HTTP layer.
var (
	ErrSlugTaken     = errors.New("slug already in use")
	ErrEmptySlug     = errors.New("slug is empty after sanitization")
	ErrNotPublished  = errors.New("promotion is not published")
	ErrTooManyBadges = fmt.Errorf("at most %d badges may be selected", badge.MaxSelected)
)

// Service manages promotion records.
type Service struct {
	releases storage.ReleaseStore
	store    storage.PromotionStore
	log      *logger.Logger
}

// New constructs a promotion service.
func New(releases storage.ReleaseStore, store storage.PromotionStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("promotions")
	}
	return &Service{releases: releases, store: store, log: log}
}

// SaveInput is the create-or-update payload, keyed by release.
type SaveInput struct {
	ReleaseID      string
	Slug           string
	StreamingLinks []promotion.StreamingLink
	Customization  promotion.Customization
	IsPublished    *bool
}

// Save creates the promotion for a release or updates the existing one.
// Saves are last-write-wins; concurrent editors are not coordinated.
func (s *Service) Save(ctx context.Context, in SaveInput) (promotion.Promotion, error) {
	releaseID := strings.TrimSpace(in.ReleaseID)
	if releaseID == "" {
		return promotion.Promotion{}, fmt.Errorf("release_id is required")
	}
	rel, err := s.releases.GetRelease(ctx, releaseID)
	if err != nil {
		return promotion.Promotion{}, fmt.Errorf("release validation failed: %w", err)
	}

	slugSource := in.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = rel.Title
	}
	slug := MakeSlug(slugSource)
	if slug == "" {
		return promotion.Promotion{}, ErrEmptySlug
	}

	for id, ov := range in.Customization.ElementOverrides {
		if len(ov.SelectedBadges) > badge.MaxSelected {
			return promotion.Promotion{}, fmt.Errorf("element %s: %w", id, ErrTooManyBadges)
		}
	}
	if in.Customization.BackgroundOverride.Scale == 0 {
		in.Customization.BackgroundOverride = promotion.NewBackgroundOverride()
	}

	existing, err := s.store.GetPromotionByRelease(ctx, releaseID)
	switch {
	case err == nil:
		if err := s.checkSlugAvailable(ctx, slug, existing.ID); err != nil {
			return promotion.Promotion{}, err
		}
		existing.Slug = slug
		existing.StreamingLinks = in.StreamingLinks
		existing.Customization = in.Customization
		if in.IsPublished != nil {
			existing.IsPublished = *in.IsPublished
		}
		updated, err := s.store.UpdatePromotion(ctx, existing)
		if err != nil {
			return promotion.Promotion{}, err
		}
		s.log.WithField("promotion_id", updated.ID).
			WithField("release_id", releaseID).
			WithField("slug", updated.Slug).
			Info("promotion updated")
		return updated, nil

	case errors.Is(err, storage.ErrNotFound):
		if err := s.checkSlugAvailable(ctx, slug, ""); err != nil {
			return promotion.Promotion{}, err
		}
		promo := promotion.Promotion{
			ReleaseID:      releaseID,
			Slug:           slug,
			StreamingLinks: in.StreamingLinks,
			Customization:  in.Customization,
		}
		if in.IsPublished != nil {
			promo.IsPublished = *in.IsPublished
		}
		created, err := s.store.CreatePromotion(ctx, promo)
		if err != nil {
			return promotion.Promotion{}, err
		}
		s.log.WithField("promotion_id", created.ID).
			WithField("release_id", releaseID).
			WithField("slug", created.Slug).
			Info("promotion created")
		return created, nil

	default:
		return promotion.Promotion{}, err
	}
}

func (s *Service) checkSlugAvailable(ctx context.Context, slug, selfID string) error {
	owner, err := s.store.GetPromotionBySlug(ctx, slug)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner.ID != selfID {
		return fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}
	return nil
}

// GetByRelease returns the promotion for a release. The found flag is false
// when no promotion has been saved yet; that is not an error.
func (s *Service) GetByRelease(ctx context.Context, releaseID string) (promotion.Promotion, bool, error) {
	promo, err := s.store.GetPromotionByRelease(ctx, releaseID)
	if errors.Is(err, storage.ErrNotFound) {
		return promotion.Promotion{}, false, nil
	}
	if err != nil {
		return promotion.Promotion{}, false, err
	}
	return promo, true, nil
}

// GetBySlug returns a promotion regardless of publication state. Intended
// for authenticated editor surfaces.
func (s *Service) GetBySlug(ctx context.Context, slug string) (promotion.Promotion, error) {
	return s.store.GetPromotionBySlug(ctx, slug)
}

// GetPublic hydrates a published promotion and its release for the public
// landing page. Unpublished promotions are indistinguishable from absent
// ones to keep draft slugs unguessable.
func (s *Service) GetPublic(ctx context.Context, slug string) (promotion.Promotion, release.Release, error) {
	promo, err := s.store.GetPromotionBySlug(ctx, slug)
	if err != nil {
		return promotion.Promotion{}, release.Release{}, err
	}
	if !promo.IsPublished {
		return promotion.Promotion{}, release.Release{}, fmt.Errorf("promotion %s: %w", slug, storage.ErrNotFound)
	}
	rel, err := s.releases.GetRelease(ctx, promo.ReleaseID)
	if err != nil {
		return promotion.Promotion{}, release.Release{}, err
	}
	return promo, rel, nil
}

// SetPublished toggles the publication flag.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (promotion.Promotion, error) {
	promo, err := s.store.GetPromotion(ctx, id)
	if err != nil {
		return promotion.Promotion{}, err
	}
	if promo.IsPublished == published {
		return promo, nil
	}
	promo.IsPublished = published
	updated, err := s.store.UpdatePromotion(ctx, promo)
	if err != nil {
		return promotion.Promotion{}, err
	}
	s.log.WithField("promotion_id", id).
		WithField("published", published).
		Info("promotion publication state changed")
	return updated, nil
}
