package mocks

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blog-api/internal/models"
)

// MockBlogService is a mock implementation of BlogService
type MockBlogService struct {
	Blogs       map[string]*models.BlogPost
	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
}

func NewMockBlogService() *MockBlogService {
	return &MockBlogService{
		Blogs: make(map[string]*models.BlogPost),
	}
}

func (m *MockBlogService) Create(ctx context.Context, input *models.CreateBlogInput, mainImage *multipart.FileHeader, contentImages []*multipart.FileHeader) (*models.BlogPost, error) {
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if input.Title == "" || input.Content == "" || mainImage == nil {
		return nil, models.NewValidationError("title",
			"Title, MainImage, and Content are required for creating blog")
	}
	for _, existing := range m.Blogs {
		if existing.Title == input.Title {
			return nil, models.ErrDuplicateTitle
		}
	}

	contentNames := []string{}
	for _, fh := range contentImages {
		contentNames = append(contentNames, fh.Filename)
	}

	now := time.Now().UTC()
	post := &models.BlogPost{
		ID:            primitive.NewObjectID(),
		Title:         input.Title,
		MainImage:     mainImage.Filename,
		Content:       input.Content,
		ContentImages: contentNames,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.Blogs[post.ID.Hex()] = post
	return post, nil
}

func (m *MockBlogService) GetOne(ctx context.Context, id string) (*models.BlogPost, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	post, ok := m.Blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return post, nil
}

func (m *MockBlogService) GetAll(ctx context.Context) ([]*models.BlogPost, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	posts := make([]*models.BlogPost, 0, len(m.Blogs))
	for _, post := range m.Blogs {
		posts = append(posts, post)
	}
	return posts, nil
}

func (m *MockBlogService) Update(ctx context.Context, id string, input *models.UpdateBlogInput, mainImage *multipart.FileHeader, contentImages []*multipart.FileHeader) (*models.BlogPost, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	post, ok := m.Blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if mainImage != nil {
		post.MainImage = mainImage.Filename
	}
	if len(contentImages) > 0 {
		names := []string{}
		for _, fh := range contentImages {
			names = append(names, fh.Filename)
		}
		post.ContentImages = names
	}
	post.UpdatedAt = time.Now().UTC()
	return post, nil
}

func (m *MockBlogService) Delete(ctx context.Context, id string) (*models.DeletedBlog, error) {
	if m.DeleteError != nil {
		return nil, m.DeleteError
	}
	post, ok := m.Blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(m.Blogs, id)
	return &models.DeletedBlog{ID: post.ID.Hex(), Title: post.Title}, nil
}

func (m *MockBlogService) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Blogs)), nil
}

// MockCleanupService records enqueued filenames instead of deleting files
type MockCleanupService struct {
	mu       sync.Mutex
	Enqueued []string
}

func NewMockCleanupService() *MockCleanupService {
	return &MockCleanupService{}
}

func (m *MockCleanupService) StartProcessor(ctx context.Context) {}

func (m *MockCleanupService) StopProcessor() {}

func (m *MockCleanupService) Enqueue(filenames ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enqueued = append(m.Enqueued, filenames...)
}

// EnqueuedFiles returns a snapshot of everything scheduled so far
func (m *MockCleanupService) EnqueuedFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Enqueued))
	copy(out, m.Enqueued)
	return out
}
