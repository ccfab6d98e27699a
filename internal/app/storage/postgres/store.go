// Package postgres implements the storage interfaces backed by PostgreSQL.
// Nested documents (elements, overrides, links) are stored as JSONB columns;
// only the fields the service filters on get their own columns.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
	"github.com/KratoLib/promo_service/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.TemplateStore = (*Store)(nil)
var _ storage.PromotionStore = (*Store)(nil)
var _ storage.ReleaseStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func notFound(err error, what, key string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, key, storage.ErrNotFound)
	}
	return err
}

// --- TemplateStore ----------------------------------------------------------

func (s *Store) CreateTemplate(ctx context.Context, tpl template.Template) (template.Template, error) {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	backgroundJSON, err := json.Marshal(tpl.Background)
	if err != nil {
		return template.Template{}, err
	}
	elementsJSON, err := json.Marshal(tpl.Elements)
	if err != nil {
		return template.Template{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO promo_templates (id, name, format, canvas_width, canvas_height, background, elements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, tpl.ID, tpl.Name, string(tpl.Format), tpl.Canvas.Width, tpl.Canvas.Height, backgroundJSON, elementsJSON, tpl.CreatedAt, tpl.UpdatedAt)
	if err != nil {
		return template.Template{}, err
	}
	return tpl, nil
}

func (s *Store) GetTemplate(ctx context.Context, id string) (template.Template, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, format, canvas_width, canvas_height, background, elements, created_at, updated_at
		FROM promo_templates
		WHERE id = $1
	`, id)

	tpl, err := scanTemplate(row)
	if err != nil {
		return template.Template{}, notFound(err, "template", id)
	}
	return tpl, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]template.Template, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, format, canvas_width, canvas_height, background, elements, created_at, updated_at
		FROM promo_templates
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []template.Template
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tpl)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row scanner) (template.Template, error) {
	var (
		tpl           template.Template
		format        string
		backgroundRaw []byte
		elementsRaw   []byte
	)
	if err := row.Scan(&tpl.ID, &tpl.Name, &format, &tpl.Canvas.Width, &tpl.Canvas.Height, &backgroundRaw, &elementsRaw, &tpl.CreatedAt, &tpl.UpdatedAt); err != nil {
		return template.Template{}, err
	}
	tpl.Format = template.Format(format)
	if len(backgroundRaw) > 0 {
		_ = json.Unmarshal(backgroundRaw, &tpl.Background)
	}
	if len(elementsRaw) > 0 {
		_ = json.Unmarshal(elementsRaw, &tpl.Elements)
	}
	return tpl, nil
}

// --- PromotionStore ---------------------------------------------------------

func (s *Store) CreatePromotion(ctx context.Context, promo promotion.Promotion) (promotion.Promotion, error) {
	if promo.ReleaseID == "" {
		return promotion.Promotion{}, errors.New("release_id required")
	}
	if promo.ID == "" {
		promo.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	promo.CreatedAt = now
	promo.UpdatedAt = now
	promo.Slug = strings.ToLower(promo.Slug)

	linksJSON, err := json.Marshal(promo.StreamingLinks)
	if err != nil {
		return promotion.Promotion{}, err
	}
	customizationJSON, err := json.Marshal(promo.Customization)
	if err != nil {
		return promotion.Promotion{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO promotions (id, release_id, slug, streaming_links, customization, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, promo.ID, promo.ReleaseID, promo.Slug, linksJSON, customizationJSON, promo.IsPublished, promo.CreatedAt, promo.UpdatedAt)
	if err != nil {
		return promotion.Promotion{}, err
	}
	return promo, nil
}

func (s *Store) UpdatePromotion(ctx context.Context, promo promotion.Promotion) (promotion.Promotion, error) {
	existing, err := s.GetPromotion(ctx, promo.ID)
	if err != nil {
		return promotion.Promotion{}, err
	}

	promo.ReleaseID = existing.ReleaseID
	promo.CreatedAt = existing.CreatedAt
	promo.UpdatedAt = time.Now().UTC()
	promo.Slug = strings.ToLower(promo.Slug)

	linksJSON, err := json.Marshal(promo.StreamingLinks)
	if err != nil {
		return promotion.Promotion{}, err
	}
	customizationJSON, err := json.Marshal(promo.Customization)
	if err != nil {
		return promotion.Promotion{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE promotions
		SET slug = $2, streaming_links = $3, customization = $4, is_published = $5, updated_at = $6
		WHERE id = $1
	`, promo.ID, promo.Slug, linksJSON, customizationJSON, promo.IsPublished, promo.UpdatedAt)
	if err != nil {
		return promotion.Promotion{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return promotion.Promotion{}, fmt.Errorf("promotion %s: %w", promo.ID, storage.ErrNotFound)
	}
	return promo, nil
}

const promotionColumns = `id, release_id, slug, streaming_links, customization, is_published, created_at, updated_at`

func (s *Store) GetPromotion(ctx context.Context, id string) (promotion.Promotion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions WHERE id = $1
	`, id)
	promo, err := scanPromotion(row)
	if err != nil {
		return promotion.Promotion{}, notFound(err, "promotion", id)
	}
	return promo, nil
}

func (s *Store) GetPromotionByRelease(ctx context.Context, releaseID string) (promotion.Promotion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions WHERE release_id = $1
	`, releaseID)
	promo, err := scanPromotion(row)
	if err != nil {
		return promotion.Promotion{}, notFound(err, "promotion for release", releaseID)
	}
	return promo, nil
}

func (s *Store) GetPromotionBySlug(ctx context.Context, slug string) (promotion.Promotion, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions WHERE slug = $1
	`, strings.ToLower(slug))
	promo, err := scanPromotion(row)
	if err != nil {
		return promotion.Promotion{}, notFound(err, "promotion", slug)
	}
	return promo, nil
}

func (s *Store) ListPromotions(ctx context.Context) ([]promotion.Promotion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+promotionColumns+` FROM promotions ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []promotion.Promotion
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, promo)
	}
	return result, rows.Err()
}

func scanPromotion(row scanner) (promotion.Promotion, error) {
	var (
		promo            promotion.Promotion
		linksRaw         []byte
		customizationRaw []byte
	)
	if err := row.Scan(&promo.ID, &promo.ReleaseID, &promo.Slug, &linksRaw, &customizationRaw, &promo.IsPublished, &promo.CreatedAt, &promo.UpdatedAt); err != nil {
		return promotion.Promotion{}, err
	}
	if len(linksRaw) > 0 {
		_ = json.Unmarshal(linksRaw, &promo.StreamingLinks)
	}
	if len(customizationRaw) > 0 {
		_ = json.Unmarshal(customizationRaw, &promo.Customization)
	}
	return promo, nil
}

// --- ReleaseStore -----------------------------------------------------------

func (s *Store) CreateRelease(ctx context.Context, rel release.Release) (release.Release, error) {
	if rel.ID == "" {
		rel.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	rel.CreatedAt = now
	rel.UpdatedAt = now

	coverJSON, err := json.Marshal(rel.CoverArt)
	if err != nil {
		return release.Release{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO promo_releases (id, title, artist_name, cover_art, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rel.ID, rel.Title, rel.ArtistName, coverJSON, rel.CreatedAt, rel.UpdatedAt)
	if err != nil {
		return release.Release{}, err
	}
	return rel, nil
}

func (s *Store) UpdateRelease(ctx context.Context, rel release.Release) (release.Release, error) {
	existing, err := s.GetRelease(ctx, rel.ID)
	if err != nil {
		return release.Release{}, err
	}

	rel.CreatedAt = existing.CreatedAt
	rel.UpdatedAt = time.Now().UTC()

	coverJSON, err := json.Marshal(rel.CoverArt)
	if err != nil {
		return release.Release{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE promo_releases
		SET title = $2, artist_name = $3, cover_art = $4, updated_at = $5
		WHERE id = $1
	`, rel.ID, rel.Title, rel.ArtistName, coverJSON, rel.UpdatedAt)
	if err != nil {
		return release.Release{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return release.Release{}, fmt.Errorf("release %s: %w", rel.ID, storage.ErrNotFound)
	}
	return rel, nil
}

func (s *Store) GetRelease(ctx context.Context, id string) (release.Release, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, artist_name, cover_art, created_at, updated_at
		FROM promo_releases
		WHERE id = $1
	`, id)

	var (
		rel      release.Release
		coverRaw []byte
	)
	if err := row.Scan(&rel.ID, &rel.Title, &rel.ArtistName, &coverRaw, &rel.CreatedAt, &rel.UpdatedAt); err != nil {
		return release.Release{}, notFound(err, "release", id)
	}
	if len(coverRaw) > 0 {
		_ = json.Unmarshal(coverRaw, &rel.CoverArt)
	}
	return rel, nil
}

func (s *Store) ListReleases(ctx context.Context) ([]release.Release, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, artist_name, cover_art, created_at, updated_at
		FROM promo_releases
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []release.Release
	for rows.Next() {
		var (
			rel      release.Release
			coverRaw []byte
		)
		if err := rows.Scan(&rel.ID, &rel.Title, &rel.ArtistName, &coverRaw, &rel.CreatedAt, &rel.UpdatedAt); err != nil {
			return nil, err
		}
		if len(coverRaw) > 0 {
			_ = json.Unmarshal(coverRaw, &rel.CoverArt)
		}
		result = append(result, rel)
	}
	return result, rows.Err()
}
