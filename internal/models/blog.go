package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost represents one article in the blogs collection
type BlogPost struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	MainImage     string             `json:"mainImage" bson:"main_image"`
	Content       string             `json:"content" bson:"content"`
	ContentImages []string           `json:"contentImages" bson:"content_images"`
	CreatedAt     time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CreateBlogInput carries the form fields of a create request.
// The image files travel separately as multipart parts.
type CreateBlogInput struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// UpdateBlogInput carries the optional form fields of an update request.
// Nil means "field not supplied, keep the stored value".
type UpdateBlogInput struct {
	Title   *string `form:"title"`
	Content *string `form:"content"`
}

// BlogUpdate is the set of document fields an update writes.
// Only non-nil fields are applied.
type BlogUpdate struct {
	Title         *string
	Content       *string
	MainImage     *string
	ContentImages *[]string
}

// DeletedBlog is the confirmation payload returned by delete
type DeletedBlog struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
