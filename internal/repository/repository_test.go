package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/blog-api/internal/mocks"
	"github.com/blog-api/internal/models"
)

func TestMockBlogRepository_CreateAndGet(t *testing.T) {
	repo := mocks.NewMockBlogRepository()
	ctx := context.Background()

	post := &models.BlogPost{
		Title:         "First Post",
		MainImage:     "123-cover.jpg",
		Content:       "<p>Hello</p>",
		ContentImages: []string{"123-inline.png"},
	}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if post.ID.IsZero() {
		t.Error("Create should assign an id")
	}
	if post.CreatedAt.IsZero() || post.UpdatedAt.IsZero() {
		t.Error("Create should set timestamps")
	}

	stored, err := repo.GetByID(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Title != "First Post" {
		t.Errorf("Expected title 'First Post', got %q", stored.Title)
	}
}

func TestMockBlogRepository_DuplicateTitle(t *testing.T) {
	repo := mocks.NewMockBlogRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &models.BlogPost{Title: "Same", MainImage: "a.jpg", Content: "a"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.Create(ctx, &models.BlogPost{Title: "Same", MainImage: "b.jpg", Content: "b"})
	if !errors.Is(err, models.ErrDuplicateTitle) {
		t.Errorf("Expected ErrDuplicateTitle, got %v", err)
	}

	exists, err := repo.TitleExists(ctx, "Same")
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if !exists {
		t.Error("TitleExists should report the stored title")
	}
}

func TestMockBlogRepository_FindAndUpdate(t *testing.T) {
	repo := mocks.NewMockBlogRepository()
	ctx := context.Background()

	post := &models.BlogPost{Title: "Before", MainImage: "old.jpg", Content: "<p>old</p>"}
	repo.Create(ctx, post)

	newMain := "new.jpg"
	updated, err := repo.FindAndUpdate(ctx, post.ID.Hex(), &models.BlogUpdate{MainImage: &newMain})
	if err != nil {
		t.Fatalf("FindAndUpdate failed: %v", err)
	}

	if updated.MainImage != "new.jpg" {
		t.Errorf("Expected swapped main image, got %q", updated.MainImage)
	}
	if updated.Title != "Before" {
		t.Errorf("Omitted field changed: %q", updated.Title)
	}

	_, err = repo.FindAndUpdate(ctx, "ffffffffffffffffffffffff", &models.BlogUpdate{MainImage: &newMain})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestMockBlogRepository_FindAndDelete(t *testing.T) {
	repo := mocks.NewMockBlogRepository()
	ctx := context.Background()

	post := &models.BlogPost{Title: "Doomed", MainImage: "x.jpg", Content: "x"}
	repo.Create(ctx, post)

	deleted, err := repo.FindAndDelete(ctx, post.ID.Hex())
	if err != nil {
		t.Fatalf("FindAndDelete failed: %v", err)
	}
	if deleted.Title != "Doomed" {
		t.Errorf("Expected deleted document back, got %+v", deleted)
	}

	if _, err := repo.GetByID(ctx, post.ID.Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if _, err := repo.FindAndDelete(ctx, post.ID.Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMockBlogRepository_GetAllAndCount(t *testing.T) {
	repo := mocks.NewMockBlogRepository()
	ctx := context.Background()

	repo.Create(ctx, &models.BlogPost{Title: "One", MainImage: "1.jpg", Content: "1"})
	repo.Create(ctx, &models.BlogPost{Title: "Two", MainImage: "2.jpg", Content: "2"})

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 posts, got %d", len(all))
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}
}
