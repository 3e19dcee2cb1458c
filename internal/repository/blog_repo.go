package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/models"
)

// blogRepo is the concrete implementation of BlogRepository
type blogRepo struct {
	coll *mongo.Collection
}

// NewBlogRepo creates a new blog repository
func NewBlogRepo(db *database.DB) BlogRepository {
	return &blogRepo{coll: db.Collection(database.BlogCollection)}
}

// Create inserts a new blog post and assigns its id and timestamps.
// A unique-index violation on title is reported as ErrDuplicateTitle.
func (r *blogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.ContentImages == nil {
		post.ContentImages = []string{}
	}

	result, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateTitle
		}
		return models.NewStorageError("insert blog", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

// GetByID returns a single post. A malformed id or a missing document both
// resolve to ErrNotFound.
func (r *blogRepo) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	var post models.BlogPost
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, models.NewStorageError("find blog", err)
	}
	return &post, nil
}

// GetAll returns every post in store-default order
func (r *blogRepo) GetAll(ctx context.Context) ([]*models.BlogPost, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, models.NewStorageError("find blogs", err)
	}
	defer cursor.Close(ctx)

	posts := []*models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, models.NewStorageError("decode blogs", err)
	}
	return posts, nil
}

// TitleExists reports whether a post with the given title already exists
func (r *blogRepo) TitleExists(ctx context.Context, title string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"title": title}, options.Count().SetLimit(1))
	if err != nil {
		return false, models.NewStorageError("count by title", err)
	}
	return count > 0, nil
}

// FindAndUpdate applies the non-nil fields of update and returns the document
// as it stands after the update
func (r *blogRepo) FindAndUpdate(ctx context.Context, id string, update *models.BlogUpdate) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if update.MainImage != nil {
		set["main_image"] = *update.MainImage
	}
	if update.ContentImages != nil {
		set["content_images"] = *update.ContentImages
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.BlogPost
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrDuplicateTitle
		}
		return nil, models.NewStorageError("update blog", err)
	}
	return &post, nil
}

// FindAndDelete removes the post and returns the deleted document
func (r *blogRepo) FindAndDelete(ctx context.Context, id string) (*models.BlogPost, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	var post models.BlogPost
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, models.NewStorageError("delete blog", err)
	}
	return &post, nil
}

// Count returns the number of stored posts
func (r *blogRepo) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, models.NewStorageError("count blogs", err)
	}
	return count, nil
}
