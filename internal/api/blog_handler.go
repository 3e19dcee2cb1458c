package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
)

// BlogHandler handles the /api/blog endpoints
type BlogHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *BlogHandler {
	return &BlogHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "blog").Logger(),
	}
}

// GetAll handles GET /api/blog/get-all
func (h *BlogHandler) GetAll(c *gin.Context) {
	blogs, err := h.services.Blog.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Receiving blogs failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

// GetOne handles GET /api/blog/get-one/:id
func (h *BlogHandler) GetOne(c *gin.Context) {
	blog, err := h.services.Blog.GetOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Receiving blog failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// Create handles POST /api/blog
// Expects multipart form: title, content, mainImage (file), contentImages (files)
func (h *BlogHandler) Create(c *gin.Context) {
	input := &models.CreateBlogInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	mainImage := formFile(c, "mainImage")
	contentImages := formFiles(c, "contentImages")

	blog, err := h.services.Blog.Create(c.Request.Context(), input, mainImage, contentImages)
	if err != nil {
		h.respondError(c, err, "Creating blog failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "New Blog created successfully",
		"createdBlog": blog,
	})
}

// Update handles PUT /api/blog/:id
// All multipart fields are optional; omitted fields keep their stored values
func (h *BlogHandler) Update(c *gin.Context) {
	input := &models.UpdateBlogInput{}
	if title, ok := c.GetPostForm("title"); ok {
		input.Title = &title
	}
	if content, ok := c.GetPostForm("content"); ok {
		input.Content = &content
	}

	mainImage := formFile(c, "mainImage")
	contentImages := formFiles(c, "contentImages")

	blog, err := h.services.Blog.Update(c.Request.Context(), c.Param("id"), input, mainImage, contentImages)
	if err != nil {
		h.respondError(c, err, "Updating blog failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Blog updated successfully",
		"updatedBlog": blog,
	})
}

// Delete handles DELETE /api/blog/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	deleted, err := h.services.Blog.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Deleting blog failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Blog deleted successfully",
		"deletedBlog": deleted,
	})
}

// respondError maps service errors to HTTP statuses. Validation and conflict
// errors carry their message to the client; anything unexpected is logged and
// collapsed to a generic 500.
func (h *BlogHandler) respondError(c *gin.Context, err error, logMsg string) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.Is(err, models.ErrDuplicateTitle):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(logMsg)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// formFile returns the named file part, or nil when absent
func formFile(c *gin.Context, name string) *multipart.FileHeader {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

// formFiles returns all file parts under name, preserving submission order
func formFiles(c *gin.Context, name string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[name]
}
