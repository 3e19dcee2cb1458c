package service

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/storage"
)

// blogService is the concrete implementation of BlogService
type blogService struct {
	repo    repository.BlogRepository
	files   storage.FileStore
	cleanup CleanupService
	log     zerolog.Logger
}

// newBlogService creates a new BlogService
func newBlogService(repo repository.BlogRepository, files storage.FileStore, cleanup CleanupService, log zerolog.Logger) *blogService {
	return &blogService{
		repo:    repo,
		files:   files,
		cleanup: cleanup,
		log:     log.With().Str("service", "blog").Logger(),
	}
}

// Create validates the input, stores the uploaded files, then inserts the
// document. Files are written before the document so a stored post never
// references a file that was not written; if the insert fails, the
// just-written files are handed to the cleanup queue so a failed create does
// not strand uploads.
func (s *blogService) Create(ctx context.Context, input *models.CreateBlogInput, mainImage *multipart.FileHeader, contentImages []*multipart.FileHeader) (*models.BlogPost, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" || mainImage == nil {
		return nil, models.NewValidationError("title",
			"Title, MainImage, and Content are required for creating blog")
	}

	// Pre-check for a friendly message; the unique index is what actually
	// guarantees uniqueness under concurrent creates.
	exists, err := s.repo.TitleExists(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateTitle
	}

	mainFilename, err := s.files.SaveUpload(mainImage)
	if err != nil {
		return nil, err
	}

	written := []string{mainFilename}
	contentFilenames := []string{}
	for _, fh := range contentImages {
		name, err := s.files.SaveUpload(fh)
		if err != nil {
			s.cleanup.Enqueue(written...)
			return nil, err
		}
		written = append(written, name)
		contentFilenames = append(contentFilenames, name)
	}

	post := &models.BlogPost{
		Title:         input.Title,
		MainImage:     mainFilename,
		Content:       input.Content,
		ContentImages: contentFilenames,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.cleanup.Enqueue(written...)
		return nil, err
	}

	s.log.Info().
		Str("blog_id", post.ID.Hex()).
		Str("title", post.Title).
		Int("content_images", len(contentFilenames)).
		Msg("Blog created")

	return post, nil
}

// GetOne returns a single post by id
func (s *blogService) GetOne(ctx context.Context, id string) (*models.BlogPost, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAll returns all posts in store-default order; ordering is the client's
// concern
func (s *blogService) GetAll(ctx context.Context) ([]*models.BlogPost, error) {
	return s.repo.GetAll(ctx)
}

// Update changes only the supplied fields. Replacement files are written
// first, the document update commits, and only then are the replaced files
// enqueued for deletion, so the response never waits on (or fails because of)
// file cleanup. When new content images are supplied, the previous set is
// replaced wholesale.
func (s *blogService) Update(ctx context.Context, id string, input *models.UpdateBlogInput, mainImage *multipart.FileHeader, contentImages []*multipart.FileHeader) (*models.BlogPost, error) {
	prior, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := &models.BlogUpdate{}
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		update.Title = input.Title
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) != "" {
		update.Content = input.Content
	}

	written := []string{}
	if mainImage != nil {
		name, err := s.files.SaveUpload(mainImage)
		if err != nil {
			return nil, err
		}
		written = append(written, name)
		update.MainImage = &name
	}
	if len(contentImages) > 0 {
		names := []string{}
		for _, fh := range contentImages {
			name, err := s.files.SaveUpload(fh)
			if err != nil {
				s.cleanup.Enqueue(written...)
				return nil, err
			}
			written = append(written, name)
			names = append(names, name)
		}
		update.ContentImages = &names
	}

	updated, err := s.repo.FindAndUpdate(ctx, id, update)
	if err != nil {
		s.cleanup.Enqueue(written...)
		return nil, err
	}

	// Document committed; replaced files are now orphans.
	if update.MainImage != nil && prior.MainImage != "" {
		s.cleanup.Enqueue(prior.MainImage)
	}
	if update.ContentImages != nil && len(prior.ContentImages) > 0 {
		s.cleanup.Enqueue(prior.ContentImages...)
	}

	s.log.Info().
		Str("blog_id", id).
		Bool("main_image_replaced", update.MainImage != nil).
		Bool("content_images_replaced", update.ContentImages != nil).
		Msg("Blog updated")

	return updated, nil
}

// Delete removes the document and schedules deletion of its files. The
// response does not wait for the file deletions.
func (s *blogService) Delete(ctx context.Context, id string) (*models.DeletedBlog, error) {
	post, err := s.repo.FindAndDelete(ctx, id)
	if err != nil {
		return nil, err
	}

	if post.MainImage != "" {
		s.cleanup.Enqueue(post.MainImage)
	}
	if len(post.ContentImages) > 0 {
		s.cleanup.Enqueue(post.ContentImages...)
	}

	s.log.Info().
		Str("blog_id", id).
		Str("title", post.Title).
		Int("files_scheduled", 1+len(post.ContentImages)).
		Msg("Blog deleted")

	return &models.DeletedBlog{ID: post.ID.Hex(), Title: post.Title}, nil
}

// Count returns the number of stored posts
func (s *blogService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
