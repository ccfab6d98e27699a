package app

import (
	"context"
	"fmt"

	"github.com/KratoLib/promo_service/internal/app/render"
	"github.com/KratoLib/promo_service/internal/app/services/export"
	"github.com/KratoLib/promo_service/internal/app/services/media"
	"github.com/KratoLib/promo_service/internal/app/services/promotions"
	"github.com/KratoLib/promo_service/internal/app/services/releases"
	"github.com/KratoLib/promo_service/internal/app/services/templates"
	"github.com/KratoLib/promo_service/internal/app/storage"
	"github.com/KratoLib/promo_service/internal/app/storage/memory"
	"github.com/KratoLib/promo_service/internal/app/system"
	"github.com/KratoLib/promo_service/internal/httputil"
	"github.com/KratoLib/promo_service/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Templates  storage.TemplateStore
	Promotions storage.PromotionStore
	Releases   storage.ReleaseStore
}

// Options carries the external integration points.
type Options struct {
	// MediaBaseURL locates the upstream media resolution service. Empty
	// means refs that are not already absolute URLs stay unresolved.
	MediaBaseURL string
	MediaAPIKey  string

	// MediaCache stores resolved URLs; nil selects the in-process cache.
	MediaCache media.Cache

	// MediaStats receives cache hit and miss counts.
	MediaStats media.Stats

	// FontPath is the TTF used for PNG exports; empty falls back to the
	// built-in bitmap face.
	FontPath string

	// Fetcher downloads creative assets for export; nil selects the HTTP
	// fetcher.
	Fetcher export.ImageFetcher
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Templates  *templates.Service
	Promotions *promotions.Service
	Releases   *releases.Service
	Media      *media.Resolver
	Export     *export.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, opts Options, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Templates == nil {
		stores.Templates = mem
	}
	if stores.Promotions == nil {
		stores.Promotions = mem
	}
	if stores.Releases == nil {
		stores.Releases = mem
	}

	manager := system.NewManager()

	templateService := templates.New(stores.Templates, log)
	releaseService := releases.New(stores.Releases, log)
	promotionService := promotions.New(stores.Releases, stores.Promotions, log)

	cache := opts.MediaCache
	if cache == nil {
		cache = media.NewMemoryCache()
	}
	var upstream *httputil.Client
	if opts.MediaBaseURL != "" {
		upstream = httputil.NewClient(httputil.ClientConfig{
			BaseURL: opts.MediaBaseURL,
			APIKey:  opts.MediaAPIKey,
		})
	} else {
		log.Warn("media base URL not set; only absolute asset URLs will resolve")
	}
	mediaResolver := media.NewResolver(upstream, cache, opts.MediaStats, log)

	renderer, err := render.New(opts.FontPath)
	if err != nil {
		return nil, fmt.Errorf("configure renderer: %w", err)
	}
	exportService := export.New(promotionService, stores.Releases, templateService,
		mediaResolver, opts.Fetcher, renderer, log)

	for _, name := range []string{"templates", "releases", "promotions", "media", "export"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:    manager,
		log:        log,
		Templates:  templateService,
		Promotions: promotionService,
		Releases:   releaseService,
		Media:      mediaResolver,
		Export:     exportService,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
