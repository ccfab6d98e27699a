// Package releases maintains the release records promotions attach to.
// Records normally arrive from the main KratoLib catalog via backfill.
package releases

import (
	"context"
	"fmt"
	"strings"

	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/storage"
	"github.com/KratoLib/promo_service/pkg/logger"
)

// Service manages release records.
type Service struct {
	store storage.ReleaseStore
	log   *logger.Logger
}

// New constructs a release service.
func New(store storage.ReleaseStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("releases")
	}
	return &Service{store: store, log: log}
}

// Create registers a release record.
func (s *Service) Create(ctx context.Context, rel release.Release) (release.Release, error) {
	rel.Title = strings.TrimSpace(rel.Title)
	rel.ArtistName = strings.TrimSpace(rel.ArtistName)
	if rel.Title == "" {
		return release.Release{}, fmt.Errorf("title is required")
	}
	if rel.ArtistName == "" {
		return release.Release{}, fmt.Errorf("artist_name is required")
	}

	created, err := s.store.CreateRelease(ctx, rel)
	if err != nil {
		return release.Release{}, err
	}
	s.log.WithField("release_id", created.ID).
		WithField("title", created.Title).
		Info("release registered")
	return created, nil
}

// Get retrieves a release by id.
func (s *Service) Get(ctx context.Context, id string) (release.Release, error) {
	return s.store.GetRelease(ctx, id)
}

// List returns all known releases.
func (s *Service) List(ctx context.Context) ([]release.Release, error) {
	return s.store.ListReleases(ctx)
}
