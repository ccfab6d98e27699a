package templates

import (
	"context"
	"testing"

	"github.com/KratoLib/promo_service/internal/app/storage/memory"
)

func TestList_UnseededFallsBackToDefaults(t *testing.T) {
	svc := New(memory.New(), nil)

	catalog, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(catalog) != len(Defaults()) {
		t.Fatalf("catalog size = %d, want %d", len(catalog), len(Defaults()))
	}
}

func TestSeed(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if len(seeded) != len(Defaults()) {
		t.Fatalf("seeded %d templates, want %d", len(seeded), len(Defaults()))
	}

	// Seeding again is a no-op.
	again, err := svc.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if len(again) != len(seeded) {
		t.Fatalf("second seed returned %d templates, want %d", len(again), len(seeded))
	}

	stored, err := store.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if len(stored) != len(Defaults()) {
		t.Fatalf("store holds %d templates, want %d", len(stored), len(Defaults()))
	}
}

func TestGet_DefaultWhenUnseeded(t *testing.T) {
	svc := New(memory.New(), nil)

	tpl, err := svc.Get(context.Background(), "classic_story")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if tpl.ID != "classic_story" {
		t.Errorf("ID = %s, want classic_story", tpl.ID)
	}
}

func TestResolve_KnownTemplate(t *testing.T) {
	svc := New(memory.New(), nil)

	tpl, fellBack, err := svc.Resolve(context.Background(), "minimal_story")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if fellBack {
		t.Error("known template should not fall back")
	}
	if tpl.ID != "minimal_story" {
		t.Errorf("ID = %s, want minimal_story", tpl.ID)
	}
}

func TestResolve_UnknownFallsBackToFirst(t *testing.T) {
	svc := New(memory.New(), nil)

	tpl, fellBack, err := svc.Resolve(context.Background(), "retired_layout")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !fellBack {
		t.Error("unknown template should report the substitution")
	}
	if tpl.ID != Defaults()[0].ID {
		t.Errorf("ID = %s, want first catalog entry %s", tpl.ID, Defaults()[0].ID)
	}
}

func TestResolve_SeededStoreKeepsOrder(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)
	ctx := context.Background()

	if _, err := svc.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	tpl, fellBack, err := svc.Resolve(ctx, "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !fellBack {
		t.Error("empty id should fall back")
	}
	if tpl.ID != Defaults()[0].ID {
		t.Errorf("fallback ID = %s, want insertion-ordered first %s", tpl.ID, Defaults()[0].ID)
	}
}

func TestDefaultForFormat(t *testing.T) {
	svc := New(memory.New(), nil)
	ctx := context.Background()

	story, err := svc.DefaultForFormat(ctx, "story")
	if err != nil {
		t.Fatalf("DefaultForFormat(story) error = %v", err)
	}
	if story.Format != "story" {
		t.Errorf("Format = %s, want story", story.Format)
	}

	post, err := svc.DefaultForFormat(ctx, "post")
	if err != nil {
		t.Fatalf("DefaultForFormat(post) error = %v", err)
	}
	if post.Format != "post" {
		t.Errorf("Format = %s, want post", post.Format)
	}
}
