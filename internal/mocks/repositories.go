package mocks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/blog-api/internal/models"
)

// MockBlogRepository is a mock implementation of BlogRepository
type MockBlogRepository struct {
	Blogs       map[string]*models.BlogPost
	CreateError error
	GetError    error
	UpdateError error
	DeleteError error
	CreateCalls int
}

func NewMockBlogRepository() *MockBlogRepository {
	return &MockBlogRepository{
		Blogs: make(map[string]*models.BlogPost),
	}
}

func (m *MockBlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	for _, existing := range m.Blogs {
		if existing.Title == post.Title {
			return models.ErrDuplicateTitle
		}
	}
	post.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.ContentImages == nil {
		post.ContentImages = []string{}
	}
	m.Blogs[post.ID.Hex()] = post
	return nil
}

func (m *MockBlogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	post, ok := m.Blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	// Return a copy, like decoding a fresh document does
	clone := *post
	clone.ContentImages = append([]string(nil), post.ContentImages...)
	return &clone, nil
}

func (m *MockBlogRepository) GetAll(ctx context.Context) ([]*models.BlogPost, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	posts := make([]*models.BlogPost, 0, len(m.Blogs))
	for _, post := range m.Blogs {
		posts = append(posts, post)
	}
	return posts, nil
}

func (m *MockBlogRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	for _, post := range m.Blogs {
		if post.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockBlogRepository) FindAndUpdate(ctx context.Context, id string, update *models.BlogUpdate) (*models.BlogPost, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	post, ok := m.Blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.MainImage != nil {
		post.MainImage = *update.MainImage
	}
	if update.ContentImages != nil {
		post.ContentImages = *update.ContentImages
	}
	post.UpdatedAt = time.Now().UTC()
	return post, nil
}

func (m *MockBlogRepository) FindAndDelete(ctx context.Context, id string) (*models.BlogPost, error) {
	if m.DeleteError != nil {
		return nil, m.DeleteError
	}
	post, ok := m.Blogs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	delete(m.Blogs, id)
	return post, nil
}

func (m *MockBlogRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Blogs)), nil
}
