package mocks

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockFileStore is an in-memory FileStore
type MockFileStore struct {
	mu          sync.Mutex
	Files       map[string][]byte
	SaveError   error
	RemoveError error
	RemoveCalls int
	saveSeq     int
}

func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		Files: make(map[string][]byte),
	}
}

func (m *MockFileStore) Save(originalName string, r io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return "", m.SaveError
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.saveSeq++
	name := fmt.Sprintf("%d-%s", m.saveSeq, originalName)
	m.Files[name] = data
	return name, nil
}

func (m *MockFileStore) SaveUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return m.Save(fh.Filename, src)
}

func (m *MockFileStore) Remove(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveCalls++
	if m.RemoveError != nil {
		return m.RemoveError
	}
	delete(m.Files, filename)
	return nil
}

func (m *MockFileStore) Exists(filename string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Files[filename]
	return ok
}

func (m *MockFileStore) Dir() string {
	return "mock"
}

// RemoveCallCount returns how many times Remove has been called
func (m *MockFileStore) RemoveCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.RemoveCalls
}
