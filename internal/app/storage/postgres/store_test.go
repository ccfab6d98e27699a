package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/KratoLib/promo_service/internal/app/domain/promotion"
	"github.com/KratoLib/promo_service/internal/app/domain/release"
	"github.com/KratoLib/promo_service/internal/app/domain/template"
	"github.com/KratoLib/promo_service/internal/app/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestCreateTemplate(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO promo_templates")).
		WithArgs("classic_story", "Classic Story", "story", 1080, 1920,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.CreateTemplate(context.Background(), template.Template{
		ID:     "classic_story",
		Name:   "Classic Story",
		Format: template.FormatStory,
		Canvas: template.Canvas{Width: 1080, Height: 1920},
	})
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestGetTemplate_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM promo_templates")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetTemplate(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestGetPromotionBySlug_LowercasesKey(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "release_id", "slug", "streaming_links", "customization", "is_published", "created_at", "updated_at",
	}).AddRow("p1", "r1", "midnight-run",
		[]byte(`[{"platform":"spotify","url":"https://open.spotify.com/track/1","isActive":true}]`),
		[]byte(`{"templateId":"classic_story","backgroundOverride":{"position":{"x":50,"y":50},"scale":1.1,"blur":0}}`),
		true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM promotions WHERE slug = $1")).
		WithArgs("midnight-run").
		WillReturnRows(rows)

	promo, err := store.GetPromotionBySlug(context.Background(), "Midnight-Run")
	if err != nil {
		t.Fatalf("GetPromotionBySlug() error = %v", err)
	}
	if promo.ID != "p1" || !promo.IsPublished {
		t.Errorf("promo = %+v", promo)
	}
	if len(promo.StreamingLinks) != 1 || promo.StreamingLinks[0].Platform != "spotify" {
		t.Errorf("StreamingLinks = %+v", promo.StreamingLinks)
	}
	if promo.Customization.TemplateID != "classic_story" {
		t.Errorf("TemplateID = %s", promo.Customization.TemplateID)
	}
	if promo.Customization.BackgroundOverride.Scale != 1.1 {
		t.Errorf("background scale = %v, want 1.1", promo.Customization.BackgroundOverride.Scale)
	}
}

func TestCreatePromotion_RequiresRelease(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.CreatePromotion(context.Background(), promotion.Promotion{Slug: "x"})
	if err == nil {
		t.Fatal("expected error without release_id")
	}
}

func TestUpdatePromotion_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM promotions WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.UpdatePromotion(context.Background(), promotion.Promotion{ID: "ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateRelease_AssignsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO promo_releases")).
		WithArgs(sqlmock.AnyArg(), "Midnight Run", "The Night Shift",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := store.CreateRelease(context.Background(), release.Release{
		Title:      "Midnight Run",
		ArtistName: "The Night Shift",
		CoverArt:   release.CoverArt{Ref: "covers/midnight-run.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateRelease() error = %v", err)
	}
	if created.ID == "" {
		t.Error("ID should be generated")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
