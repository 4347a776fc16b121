package repository

import (
	"context"
	"testing"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/models"
)

func TestPostRepositoryKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepository(MockPosts(time.UTC)...)

	id, err := r.Create(ctx, &models.Post{
		Date:      time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Platforms: []string{models.PlatformYoutube},
		Status:    models.PostStatusScheduled,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	posts, err := r.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"1", "2", "3", id}
	if len(posts) != len(want) {
		t.Fatalf("got %d posts, want %d", len(posts), len(want))
	}
	for i, p := range posts {
		if p.ID != want[i] {
			t.Errorf("posts[%d].ID = %q, want %q", i, p.ID, want[i])
		}
	}
}

func TestPostRepositoryListByStatus(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepository(MockPosts(time.UTC)...)

	scheduled, _ := r.ListByStatus(ctx, models.PostStatusScheduled)
	published, _ := r.ListByStatus(ctx, models.PostStatusPublished)
	failed, _ := r.ListByStatus(ctx, models.PostStatusFailed)

	if len(scheduled) != 2 || len(published) != 1 || len(failed) != 0 {
		t.Errorf("got %d scheduled, %d published, %d failed", len(scheduled), len(published), len(failed))
	}
}

func TestPostRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewPostRepository(MockPosts(time.UTC)...)

	p, err := r.GetByID(ctx, "1")
	if err != nil || p == nil {
		t.Fatalf("GetByID: %v, %v", p, err)
	}
	p.Status = models.PostStatusFailed
	p.Platforms[0] = "tiktok"

	again, _ := r.GetByID(ctx, "1")
	if again.Status != models.PostStatusScheduled || again.Platforms[0] != models.PlatformInstagram {
		t.Errorf("stored post was mutated: %+v", again)
	}

	missing, err := r.GetByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for unknown id, got %v, %v", missing, err)
	}
}

func TestPostRepositoryRejectsDuplicateID(t *testing.T) {
	r := NewPostRepository(MockPosts(time.UTC)...)
	if _, err := r.Create(context.Background(), &models.Post{ID: "1"}); err == nil {
		t.Error("expected duplicate id error")
	}
}
