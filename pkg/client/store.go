package client

import (
	"context"
	"sync"

	"github.com/blog-api/internal/models"
)

// FetchStatus tracks the lifecycle of the initial fetch-all
type FetchStatus string

const (
	StatusIdle      FetchStatus = "idle"
	StatusLoading   FetchStatus = "loading"
	StatusSucceeded FetchStatus = "succeeded"
	StatusFailed    FetchStatus = "failed"
)

// Store owns the canonical in-memory list of posts for a UI. It mirrors the
// service through four mutations (set-all, add, remove, replace) and guards
// the initial fetch with a status flag rather than request deduplication.
type Store struct {
	client *Client

	mu      sync.Mutex
	items   []models.BlogPost
	status  FetchStatus
	lastErr error
}

// NewStore creates a Store backed by the given API client
func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		status: StatusIdle,
	}
}

// Status returns the current fetch status
func (s *Store) Status() FetchStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error from the last failed fetch, if any
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Items returns a snapshot of the current post list
func (s *Store) Items() []models.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BlogPost, len(s.items))
	copy(out, s.items)
	return out
}

// EnsureFresh triggers the fetch-all exactly once: it only issues a request
// when the status is idle, so concurrent callers in the loading state (and
// callers after a success or failure) are no-ops.
func (s *Store) EnsureFresh(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusIdle {
		err := s.lastErr
		s.mu.Unlock()
		return err
	}
	s.status = StatusLoading
	s.mu.Unlock()

	blogs, err := s.client.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.lastErr = err
		return err
	}
	s.status = StatusSucceeded
	s.lastErr = nil
	s.items = blogs
	return nil
}

// SetAll replaces the whole list
func (s *Store) SetAll(posts []models.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.BlogPost(nil), posts...)
}

// Add appends one post
func (s *Store) Add(post models.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, post)
}

// Remove filters out the post with the given id
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID.Hex() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// Replace swaps the stored post that shares the given post's id
func (s *Store) Replace(post models.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, item := range s.items {
		if item.ID == post.ID {
			s.items[i] = post
			return
		}
	}
}
