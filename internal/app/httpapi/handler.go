package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	app "github.com/KratoLib/promo_service/internal/app"
	"github.com/KratoLib/promo_service/internal/app/compose"
	"github.com/KratoLib/promo_service/internal/app/domain/badge"
	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
	"github.com/KratoLib/promo_service/internal/app/metrics"
	"github.com/KratoLib/promo_service/internal/app/services/promotions"
	"github.com/KratoLib/promo_service/internal/app/storage"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a mux exposing the promo REST API.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.healthz)
	mux.HandleFunc("/promo-templates", h.templates)
	mux.HandleFunc("/promo-templates/", h.templateResources)
	mux.HandleFunc("/badges", h.badges)
	mux.HandleFunc("/releases", h.releases)
	mux.HandleFunc("/releases/", h.releaseResources)
	mux.HandleFunc("/promotions", h.promotions)
	mux.HandleFunc("/promotions/", h.promotionResources)
	mux.HandleFunc("/media/resolve", h.mediaResolve)
	mux.HandleFunc("/p/", h.landing)
	return mux
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Templates --------------------------------------------------------------

func (h *handler) templates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if raw := r.URL.Query().Get("format"); raw != "" {
		format := template.Format(raw)
		if format != template.FormatStory && format != template.FormatPost {
			writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", raw))
			return
		}
		tpl, err := h.app.Templates.DefaultForFormat(r.Context(), format)
		if err != nil {
			writeError(w, statusFor(err, http.StatusNotFound), err)
			return
		}
		writeJSON(w, http.StatusOK, tpl)
		return
	}
	catalog, err := h.app.Templates.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *handler) templateResources(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/promo-templates"), "/")
	switch {
	case trimmed == "seed":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		seeded, err := h.app.Templates.Seed(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, seeded)

	case trimmed != "" && !strings.Contains(trimmed, "/"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		tpl, err := h.app.Templates.Get(r.Context(), trimmed)
		if err != nil {
			writeError(w, statusFor(err, http.StatusNotFound), err)
			return
		}
		writeJSON(w, http.StatusOK, tpl)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Badges -----------------------------------------------------------------

func (h *handler) badges(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"badges":      badge.List(),
		"maxSelected": badge.MaxSelected,
		"defaults":    badge.DefaultSelection(),
	})
}

// Releases ---------------------------------------------------------------

func (h *handler) releases(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var payload struct {
			Title      string `json:"title"`
			ArtistName string `json:"artistName"`
			CoverArt   struct {
				Ref string `json:"ref"`
				URL string `json:"url"`
			} `json:"coverArt"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		rel := release.Release{
			Title:      payload.Title,
			ArtistName: payload.ArtistName,
			CoverArt:   release.CoverArt{Ref: payload.CoverArt.Ref, URL: payload.CoverArt.URL},
		}
		created, err := h.app.Releases.Create(r.Context(), rel)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	case http.MethodGet:
		rels, err := h.app.Releases.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, rels)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handler) releaseResources(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/releases"), "/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rel, err := h.app.Releases.Get(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err, http.StatusNotFound), err)
		return
	}
	writeJSON(w, http.StatusOK, rel)
}

// Promotions -------------------------------------------------------------

type promotionPayload struct {
	ReleaseID      string                    `json:"releaseId"`
	Slug           string                    `json:"slug"`
	StreamingLinks []promotion.StreamingLink `json:"streamingLinks"`
	Customization  promotion.Customization   `json:"customization"`
	IsPublished    *bool                     `json:"isPublished"`
}

func (h *handler) promotions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload promotionPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	saved, err := h.app.Promotions.Save(r.Context(), promotions.SaveInput{
		ReleaseID:      payload.ReleaseID,
		Slug:           payload.Slug,
		StreamingLinks: payload.StreamingLinks,
		Customization:  payload.Customization,
		IsPublished:    payload.IsPublished,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, promotions.ErrSlugTaken):
			status = http.StatusConflict
		case errors.Is(err, storage.ErrNotFound):
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *handler) promotionResources(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.Trim(strings.TrimPrefix(r.URL.Path, "/promotions"), "/")
	parts := strings.Split(trimmed, "/")
	if len(parts) == 0 || parts[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch parts[0] {
	case "release":
		h.promotionByRelease(w, r, parts[1:])
	case "public":
		h.promotionPublic(w, r, parts[1:])
	default:
		h.promotionByID(w, r, parts)
	}
}

func (h *handler) promotionByRelease(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 || rest[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	releaseID := rest[0]

	if len(rest) == 1 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		promo, found, err := h.app.Promotions.GetByRelease(r.Context(), releaseID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if !found {
			writeError(w, http.StatusNotFound, fmt.Errorf("no promotion for release %s", releaseID))
			return
		}
		writeJSON(w, http.StatusOK, promo)
		return
	}

	switch rest[1] {
	case "export.png":
		h.exportPNG(w, r, releaseID)
	case "composition":
		h.editorComposition(w, r, releaseID)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *handler) promotionByID(w http.ResponseWriter, r *http.Request, parts []string) {
	promotionID := parts[0]

	if len(parts) == 2 && parts[1] == "publish" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			Published bool `json:"published"`
		}
		if err := decodeJSON(r.Body, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		updated, err := h.app.Promotions.SetPublished(r.Context(), promotionID, payload.Published)
		if err != nil {
			writeError(w, statusFor(err, http.StatusBadRequest), err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
		return
	}

	w.WriteHeader(http.StatusNotFound)
}

func (h *handler) promotionPublic(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) != 1 || rest[0] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	promo, rel, err := h.app.Promotions.GetPublic(r.Context(), rest[0])
	if err != nil {
		writeError(w, statusFor(err, http.StatusNotFound), err)
		return
	}
	comp, err := h.buildComposition(r.Context(), promo, rel, 1, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordComposition("landing")
	writeJSON(w, http.StatusOK, map[string]any{
		"promotion":   promo,
		"release":     rel,
		"composition": comp,
	})
}

// Export -----------------------------------------------------------------

func (h *handler) exportPNG(w http.ResponseWriter, r *http.Request, releaseID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	result, err := h.app.Export.RenderPNG(r.Context(), releaseID)
	metrics.RecordExport(time.Since(start), err == nil)
	if err != nil {
		writeError(w, statusFor(err, http.StatusInternalServerError), err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PNG)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

// Compositions -----------------------------------------------------------

// editorComposition returns the interactive layout the editor canvas renders.
func (h *handler) editorComposition(w http.ResponseWriter, r *http.Request, releaseID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	promo, found, err := h.app.Promotions.GetByRelease(r.Context(), releaseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Errorf("no promotion for release %s", releaseID))
		return
	}
	rel, err := h.app.Releases.Get(r.Context(), releaseID)
	if err != nil {
		writeError(w, statusFor(err, http.StatusNotFound), err)
		return
	}

	scale := 1.0
	if raw := r.URL.Query().Get("containerWidth"); raw != "" {
		width, err := strconv.ParseFloat(raw, 64)
		if err != nil || width <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid containerWidth %q", raw))
			return
		}
		tpl, _, resolveErr := h.app.Templates.Resolve(r.Context(), promo.Customization.TemplateID)
		if resolveErr != nil {
			writeError(w, http.StatusInternalServerError, resolveErr)
			return
		}
		scale = compose.ScaleToFit(tpl.Canvas, width)
	}

	comp, err := h.buildComposition(r.Context(), promo, rel, scale, true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordComposition("editor")
	writeJSON(w, http.StatusOK, comp)
}

// landing serves the hydrated public page document: the promotion, its
// release, a static composition and the streaming link rail. Entrance
// animations stay editor-only, so the composition is never interactive here.
func (h *handler) landing(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/p"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	promo, rel, err := h.app.Promotions.GetPublic(r.Context(), slug)
	if err != nil {
		writeError(w, statusFor(err, http.StatusNotFound), err)
		return
	}

	comp, err := h.buildComposition(r.Context(), promo, rel, 1, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	metrics.RecordComposition("landing")

	writeJSON(w, http.StatusOK, map[string]any{
		"promotion":   promo,
		"release":     rel,
		"composition": comp,
		"links":       landingLinks(promo.ActiveLinks()),
	})
}

type landingLink struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	LogoURL  string `json:"logoUrl,omitempty"`
	Color    string `json:"color,omitempty"`
	Monogram string `json:"monogram"`
}

// landingLinks decorates streaming links with badge branding so the page can
// render a button per platform without a second lookup.
func landingLinks(links []promotion.StreamingLink) []landingLink {
	out := make([]landingLink, 0, len(links))
	for _, link := range links {
		ll := landingLink{Platform: link.Platform, URL: link.URL}
		if b, ok := badge.Lookup(link.Platform); ok {
			ll.Name = b.Name
			ll.LogoURL = b.LogoURL
			ll.Color = b.Color
			ll.Monogram = badge.Monogram(b.Name)
		} else {
			ll.Name = link.Platform
			ll.Monogram = badge.Monogram(link.Platform)
		}
		out = append(out, ll)
	}
	return out
}

func (h *handler) buildComposition(ctx context.Context, promo promotion.Promotion, rel release.Release, scale float64, interactive bool) (compose.Composition, error) {
	tpl, _, err := h.app.Templates.Resolve(ctx, promo.Customization.TemplateID)
	if err != nil {
		return compose.Composition{}, err
	}
	overrides := compose.FromCustomization(promo.Customization)

	coverRef := rel.CoverArt.Ref
	if coverRef == "" {
		coverRef = rel.CoverArt.URL
	}
	// Resolution failures are not fatal: each slot degrades independently
	// and the resolver logs per-ref details.
	resolved, _ := h.app.Media.ResolveAll(ctx, []string{
		overrides.Background.ImageURL,
		tpl.Background.ImageURL,
		coverRef,
	})

	return compose.Compose(compose.Input{
		Template:  tpl,
		Release:   rel,
		Overrides: overrides,
		Resolved: compose.ResolvedURLs{
			BackgroundOverride: resolved[overrides.Background.ImageURL],
			TemplateBackground: resolved[tpl.Background.ImageURL],
			CoverArt:           resolved[coverRef],
		},
		Scale:       scale,
		Interactive: interactive,
	}), nil
}

// Media ------------------------------------------------------------------

func (h *handler) mediaResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload struct {
		Ref string `json:"ref"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	url, err := h.app.Media.Resolve(r.Context(), payload.Ref)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// Helpers ----------------------------------------------------------------

func statusFor(err error, fallback int) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return fallback
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
