package repository

import (
	"context"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

// BlogRepository defines the interface for blog post data operations
type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	GetAll(ctx context.Context) ([]*models.BlogPost, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	FindAndUpdate(ctx context.Context, id string, update *models.BlogUpdate) (*models.BlogPost, error)
	FindAndDelete(ctx context.Context, id string) (*models.BlogPost, error)
	Count(ctx context.Context) (int64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Blog BlogRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Blog: NewBlogRepo(db),
	}
}
