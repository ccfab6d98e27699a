package export

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/render"
	"github.com/KratoLib/promo_service/internal/app/services/media"
	"github.com/KratoLib/promo_service/internal/app/services/promotions"
	"github.com/KratoLib/promo_service/internal/app/services/templates"
	"github.com/KratoLib/promo_service/internal/app/storage/memory"
)

type stubFetcher struct {
	fetched map[string]int
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (image.Image, error) {
	if f.fetched == nil {
		f.fetched = make(map[string]int)
	}
	f.fetched[url]++
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img, nil
}

func newTestService(t *testing.T) (*Service, *stubFetcher, *memory.Store) {
	t.Helper()
	store := memory.New()

	catalog := templates.New(store, nil)
	promos := promotions.New(store, store, nil)
	resolver := media.NewResolver(nil, media.NewMemoryCache(), nil, nil)
	renderer, err := render.New("")
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}

	fetcher := &stubFetcher{}
	svc := New(promos, store, catalog, resolver, fetcher, renderer, nil)
	return svc, fetcher, store
}

func seedPromotion(t *testing.T, store *memory.Store, templateID string) release.Release {
	t.Helper()
	ctx := context.Background()

	rel, err := store.CreateRelease(ctx, release.Release{
		Title:      "Midnight Run",
		ArtistName: "The Night Shift",
		CoverArt:   release.CoverArt{URL: "https://cdn.example.com/cover.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateRelease() error = %v", err)
	}

	_, err = store.CreatePromotion(ctx, promotion.Promotion{
		ReleaseID: rel.ID,
		Slug:      "midnight-run",
		Customization: promotion.Customization{
			TemplateID:         templateID,
			BackgroundOverride: promotion.NewBackgroundOverride(),
		},
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("CreatePromotion() error = %v", err)
	}
	return rel
}

func TestService_RenderPNG(t *testing.T) {
	svc, fetcher, store := newTestService(t)
	rel := seedPromotion(t, store, "classic_story")

	result, err := svc.RenderPNG(context.Background(), rel.ID)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}

	if result.Filename != "midnight-run-classic_story.png" {
		t.Errorf("Filename = %s, want midnight-run-classic_story.png", result.Filename)
	}

	img, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 1080 || img.Bounds().Dy() != 1920 {
		t.Errorf("canvas = %dx%d, want 1080x1920", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if fetcher.fetched["https://cdn.example.com/cover.jpg"] == 0 {
		t.Error("cover art should have been fetched")
	}
}

func TestService_RenderPNG_TemplateFallback(t *testing.T) {
	svc, _, store := newTestService(t)
	rel := seedPromotion(t, store, "retired_template")

	result, err := svc.RenderPNG(context.Background(), rel.ID)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}

	// The saved template is gone; the first catalog entry takes its place.
	want := templates.Defaults()[0].ID
	if result.Filename != "midnight-run-"+want+".png" {
		t.Errorf("Filename = %s, want fallback template %s", result.Filename, want)
	}
}

func TestService_RenderPNG_NoPromotion(t *testing.T) {
	svc, _, store := newTestService(t)

	rel, err := store.CreateRelease(context.Background(), release.Release{
		Title:      "Unpromoted",
		ArtistName: "Nobody",
	})
	if err != nil {
		t.Fatalf("CreateRelease() error = %v", err)
	}

	if _, err := svc.RenderPNG(context.Background(), rel.ID); err == nil {
		t.Fatal("expected error for release without promotion")
	}
}

func TestExportFilename(t *testing.T) {
	if got := exportFilename("My Song!! Title", "classic_story"); got != "my-song-title-classic_story.png" {
		t.Errorf("exportFilename = %s", got)
	}
	if got := exportFilename("!!!", "bold_post"); got != "promo-bold_post.png" {
		t.Errorf("empty slug fallback = %s", got)
	}
}
