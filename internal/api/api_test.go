package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blog-api/internal/api"
	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/mocks"
	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/service"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockBlogService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockBlog := mocks.NewMockBlogService()
	mockCleanup := mocks.NewMockCleanupService()

	services := &service.Services{
		Blog:    mockBlog,
		Cleanup: mockCleanup,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:          "8080",
			AllowedOrigin: "http://localhost:5173",
		},
		Upload: config.UploadConfig{
			Dir:           t.TempDir(),
			MaxUploadSize: 10 * 1024 * 1024,
		},
	}

	log := zerolog.Nop()
	router := api.NewRouter(services, cfg, log)

	return router, mockBlog
}

// multipartBody builds a multipart request body with the given fields and files
func multipartBody(t *testing.T, fields map[string]string, files map[string][]string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	for field, names := range files {
		for _, name := range names {
			part, err := w.CreateFormFile(field, name)
			if err != nil {
				t.Fatalf("CreateFormFile failed: %v", err)
			}
			part.Write([]byte("image-bytes"))
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("multipart close failed: %v", err)
	}
	return buf, w.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "blog-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, mockBlog := setupTestRouter(t)
	mockBlog.Blogs["a"] = &models.BlogPost{Title: "A"}
	mockBlog.Blogs["b"] = &models.BlogPost{Title: "B"}

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["blogs"].(float64) != 2 {
		t.Errorf("Expected 2 blogs, got %v", db["blogs"])
	}
}

func TestCreateBlogEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	body, contentType := multipartBody(t,
		map[string]string{"title": "Hello World", "content": "<p>Hi</p>"},
		map[string][]string{
			"mainImage":     {"cover.jpg"},
			"contentImages": {"inline-1.png", "inline-2.png"},
		})

	req := httptest.NewRequest("POST", "/api/blog", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Message     string          `json:"message"`
		CreatedBlog models.BlogPost `json:"createdBlog"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.CreatedBlog.Title != "Hello World" {
		t.Errorf("Expected title 'Hello World', got %q", response.CreatedBlog.Title)
	}
	if response.CreatedBlog.ID.IsZero() {
		t.Error("Expected assigned id in response")
	}
	if len(response.CreatedBlog.ContentImages) != 2 {
		t.Errorf("Expected 2 content images, got %d", len(response.CreatedBlog.ContentImages))
	}
}

func TestCreateBlogMissingFields(t *testing.T) {
	router, _ := setupTestRouter(t)

	// No main image file
	body, contentType := multipartBody(t,
		map[string]string{"title": "Hello", "content": "<p>Hi</p>"}, nil)

	req := httptest.NewRequest("POST", "/api/blog", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateBlogDuplicateTitle(t *testing.T) {
	router, mockBlog := setupTestRouter(t)
	mockBlog.Blogs["existing"] = &models.BlogPost{Title: "Taken"}

	body, contentType := multipartBody(t,
		map[string]string{"title": "Taken", "content": "<p>different content</p>"},
		map[string][]string{"mainImage": {"other.jpg"}})

	req := httptest.NewRequest("POST", "/api/blog", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for duplicate title, got %d", w.Code)
	}
}

func TestGetOneNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("GET", "/api/blog/get-one/ffffffffffffffffffffffff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetAllEndpoint(t *testing.T) {
	router, mockBlog := setupTestRouter(t)
	mockBlog.Blogs["a"] = &models.BlogPost{Title: "First"}

	req := httptest.NewRequest("GET", "/api/blog/get-all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		Blogs []models.BlogPost `json:"blogs"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if len(response.Blogs) != 1 {
		t.Errorf("Expected 1 blog, got %d", len(response.Blogs))
	}
}

func TestUpdateBlogEndpoint(t *testing.T) {
	router, mockBlog := setupTestRouter(t)
	post := &models.BlogPost{Title: "Old", Content: "<p>old</p>", MainImage: "old.jpg"}
	mockBlog.Blogs["abc123"] = post

	body, contentType := multipartBody(t,
		map[string]string{"title": "New"}, nil)

	req := httptest.NewRequest("PUT", "/api/blog/abc123", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		UpdatedBlog models.BlogPost `json:"updatedBlog"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.UpdatedBlog.Title != "New" {
		t.Errorf("Expected updated title 'New', got %q", response.UpdatedBlog.Title)
	}
	if response.UpdatedBlog.Content != "<p>old</p>" {
		t.Errorf("Omitted field changed: %q", response.UpdatedBlog.Content)
	}
}

func TestUpdateBlogNotFound(t *testing.T) {
	router, _ := setupTestRouter(t)

	body, contentType := multipartBody(t, map[string]string{"title": "New"}, nil)
	req := httptest.NewRequest("PUT", "/api/blog/unknown", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestDeleteBlogEndpoint(t *testing.T) {
	router, mockBlog := setupTestRouter(t)
	post := &models.BlogPost{Title: "Doomed"}
	mockBlog.Blogs["abc123"] = post

	req := httptest.NewRequest("DELETE", "/api/blog/abc123", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		DeletedBlog models.DeletedBlog `json:"deletedBlog"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response.DeletedBlog.Title != "Doomed" {
		t.Errorf("Expected deleted title 'Doomed', got %q", response.DeletedBlog.Title)
	}

	// Second delete on the same id
	req = httptest.NewRequest("DELETE", "/api/blog/abc123", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on repeated delete, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/blog/get-all", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 204 {
		t.Errorf("Expected status 204 for preflight, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
		t.Errorf("Expected configured origin, got %q", origin)
	}
}
