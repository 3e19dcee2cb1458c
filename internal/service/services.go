package service

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/storage"
)

// BlogService defines the interface for blog CRUD operations
type BlogService interface {
	Create(ctx context.Context, input *models.CreateBlogInput, mainImage *multipart.FileHeader, contentImages []*multipart.FileHeader) (*models.BlogPost, error)
	GetOne(ctx context.Context, id string) (*models.BlogPost, error)
	GetAll(ctx context.Context) ([]*models.BlogPost, error)
	Update(ctx context.Context, id string, input *models.UpdateBlogInput, mainImage *multipart.FileHeader, contentImages []*multipart.FileHeader) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) (*models.DeletedBlog, error)
	Count(ctx context.Context) (int64, error)
}

// CleanupService defines the interface for background file deletion
type CleanupService interface {
	StartProcessor(ctx context.Context)
	StopProcessor()
	Enqueue(filenames ...string)
}

// Services holds all service interfaces
type Services struct {
	Blog    BlogService
	Cleanup CleanupService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, files storage.FileStore, cfg *config.Config, log zerolog.Logger) *Services {
	cleanupSvc := newCleanupService(files, &cfg.Cleanup, log)
	blogSvc := newBlogService(repos.Blog, files, cleanupSvc, log)

	return &Services{
		Blog:    blogSvc,
		Cleanup: cleanupSvc,
	}
}
