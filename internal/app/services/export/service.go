// Package export renders saved promotions into downloadable PNG assets.
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/KratoLib/promo_service/internal/app/compose"
	"github.com/KratoLib/promo_service/internal/app/render"
	"github.com/KratoLib/promo_service/internal/app/services/media"
	"github.com/KratoLib/promo_service/internal/app/services/promotions"
	"github.com/KratoLib/promo_service/internal/app/services/templates"
	"github.com/KratoLib/promo_service/internal/app/storage"
	"github.com/KratoLib/promo_service/pkg/logger"
)

// Service renders promotions to PNG.
type Service struct {
	promotions *promotions.Service
	releases   storage.ReleaseStore
	templates  *templates.Service
	media      *media.Resolver
	fetcher    ImageFetcher
	renderer   *render.Renderer
	log        *logger.Logger
}

// New constructs an export service.
func New(
	promos *promotions.Service,
	releases storage.ReleaseStore,
	catalog *templates.Service,
	resolver *media.Resolver,
	fetcher ImageFetcher,
	renderer *render.Renderer,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.NewDefault("export")
	}
	if fetcher == nil {
		fetcher = NewHTTPFetcher()
	}
	return &Service{
		promotions: promos,
		releases:   releases,
		templates:  catalog,
		media:      resolver,
		fetcher:    fetcher,
		renderer:   renderer,
		log:        log,
	}
}

// Result is a finished export.
type Result struct {
	Filename string
	PNG      []byte
}

// RenderPNG composes and rasterizes the promotion saved for a release.
// The output matches the editor preview at full template resolution, with
// animations omitted.
func (s *Service) RenderPNG(ctx context.Context, releaseID string) (Result, error) {
	promo, found, err := s.promotions.GetByRelease(ctx, releaseID)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, fmt.Errorf("release %s has no promotion: %w", releaseID, storage.ErrNotFound)
	}
	rel, err := s.releases.GetRelease(ctx, releaseID)
	if err != nil {
		return Result{}, err
	}

	tpl, fellBack, err := s.templates.Resolve(ctx, promo.Customization.TemplateID)
	if err != nil {
		return Result{}, err
	}
	if fellBack {
		s.log.WithField("release_id", releaseID).
			WithField("template_id", tpl.ID).
			Warn("export uses substituted template")
	}

	overrides := compose.FromCustomization(promo.Customization)

	coverRef := rel.CoverArt.Ref
	if coverRef == "" {
		coverRef = rel.CoverArt.URL
	}
	refs := []string{overrides.Background.ImageURL, tpl.Background.ImageURL, coverRef}
	resolved, err := s.media.ResolveAll(ctx, refs)
	if err != nil {
		s.log.WithError(err).WithField("release_id", releaseID).
			Warn("some media refs failed to resolve; export continues degraded")
	}

	comp := compose.Compose(compose.Input{
		Template:  tpl,
		Release:   rel,
		Overrides: overrides,
		Resolved: compose.ResolvedURLs{
			BackgroundOverride: resolved[overrides.Background.ImageURL],
			TemplateBackground: resolved[tpl.Background.ImageURL],
			CoverArt:           resolved[coverRef],
		},
		Scale:       1,
		Interactive: false,
	})

	images := s.fetchImages(ctx, comp)

	img, err := s.renderer.Render(comp, images)
	if err != nil {
		return Result{}, fmt.Errorf("render promotion for release %s: %w", releaseID, err)
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return Result{}, err
	}

	s.log.WithField("release_id", releaseID).
		WithField("template_id", tpl.ID).
		WithField("bytes", buf.Len()).
		Info("promotion exported")

	return Result{
		Filename: exportFilename(rel.Title, tpl.ID),
		PNG:      buf.Bytes(),
	}, nil
}

// fetchImages downloads every asset the composition references. Failures are
// logged and skipped; the renderer substitutes placeholders.
func (s *Service) fetchImages(ctx context.Context, comp compose.Composition) map[string]image.Image {
	urls := make(map[string]bool)
	if comp.Background.URL != "" {
		urls[comp.Background.URL] = true
	}
	for _, el := range comp.Elements {
		if el.ImageURL != "" {
			urls[el.ImageURL] = true
		}
	}

	images := make(map[string]image.Image, len(urls))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			img, err := s.fetcher.Fetch(ctx, url)
			if err != nil {
				s.log.WithError(err).WithField("url", url).Warn("asset fetch failed")
				return
			}
			mu.Lock()
			images[url] = img
			mu.Unlock()
		}(url)
	}
	wg.Wait()
	return images
}

func exportFilename(releaseTitle, templateID string) string {
	slug := promotions.MakeSlug(releaseTitle)
	if slug == "" {
		slug = "promo"
	}
	return fmt.Sprintf("%s-%s.png", slug, templateID)
}
