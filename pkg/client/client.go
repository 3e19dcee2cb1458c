// Package client is the Go counterpart of the browser client's data layer:
// an API wrapper for the blog service, an in-memory post store with fetch
// status tracking, and content-image extraction for editor HTML.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/blog-api/internal/models"
)

// File is an in-memory file attached to a create or update request
type File struct {
	Name string
	Data []byte
}

// CreateRequest carries everything needed to create a post
type CreateRequest struct {
	Title         string
	Content       string
	MainImage     *File
	ContentImages []File
}

// UpdateRequest carries the optional fields of an update. Nil fields are not
// sent and keep their stored values.
type UpdateRequest struct {
	Title         *string
	Content       *string
	MainImage     *File
	ContentImages []File
}

// APIError is a non-2xx response decoded from the service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the blog service REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given base URL (e.g. "http://localhost:8080")
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a Client using the supplied http.Client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchAll returns every post
func (c *Client) FetchAll(ctx context.Context) ([]models.BlogPost, error) {
	var out struct {
		Blogs []models.BlogPost `json:"blogs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/blog/get-all", nil, "", &out); err != nil {
		return nil, err
	}
	return out.Blogs, nil
}

// Get returns a single post by id
func (c *Client) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	var out struct {
		Blog *models.BlogPost `json:"blog"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/blog/get-one/"+id, nil, "", &out); err != nil {
		return nil, err
	}
	return out.Blog, nil
}

// Create submits a new post as a multipart request
func (c *Client) Create(ctx context.Context, req *CreateRequest) (*models.BlogPost, error) {
	body, contentType, err := buildMultipart(req.Title != "", req.Title, req.Content != "", req.Content, req.MainImage, req.ContentImages)
	if err != nil {
		return nil, err
	}

	var out struct {
		Message     string           `json:"message"`
		CreatedBlog *models.BlogPost `json:"createdBlog"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/blog", body, contentType, &out); err != nil {
		return nil, err
	}
	return out.CreatedBlog, nil
}

// Update submits changed fields for an existing post
func (c *Client) Update(ctx context.Context, id string, req *UpdateRequest) (*models.BlogPost, error) {
	title, content := "", ""
	if req.Title != nil {
		title = *req.Title
	}
	if req.Content != nil {
		content = *req.Content
	}
	body, contentType, err := buildMultipart(req.Title != nil, title, req.Content != nil, content, req.MainImage, req.ContentImages)
	if err != nil {
		return nil, err
	}

	var out struct {
		Message     string           `json:"message"`
		UpdatedBlog *models.BlogPost `json:"updatedBlog"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/blog/"+id, body, contentType, &out); err != nil {
		return nil, err
	}
	return out.UpdatedBlog, nil
}

// Delete removes a post and returns the confirmation payload
func (c *Client) Delete(ctx context.Context, id string) (*models.DeletedBlog, error) {
	var out struct {
		Message     string              `json:"message"`
		DeletedBlog *models.DeletedBlog `json:"deletedBlog"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/blog/"+id, nil, "", &out); err != nil {
		return nil, err
	}
	return out.DeletedBlog, nil
}

// do issues one request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Message string `json:"message"`
		}
		message := "request failed"
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			message = errBody.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// buildMultipart assembles a multipart body with the optional title/content
// fields, the main image part, and one contentImages part per file
func buildMultipart(hasTitle bool, title string, hasContent bool, content string, mainImage *File, contentImages []File) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if hasTitle {
		if err := w.WriteField("title", title); err != nil {
			return nil, "", err
		}
	}
	if hasContent {
		if err := w.WriteField("content", content); err != nil {
			return nil, "", err
		}
	}
	if mainImage != nil {
		part, err := w.CreateFormFile("mainImage", mainImage.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(mainImage.Data); err != nil {
			return nil, "", err
		}
	}
	for _, img := range contentImages {
		part, err := w.CreateFormFile("contentImages", img.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
