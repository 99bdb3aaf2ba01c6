package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// Storage is the durable key-value store the session persists into. The
// browser original used localStorage; library consumers supply whatever
// backing fits (memory, a file, a keyring).
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// MemoryStorage is an in-process Storage, suitable for tests and short-lived
// tools.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// FileStorage is a Storage persisted as a JSON file, so a session survives
// process restarts the way a browser session survives a page reload.
type FileStorage struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// OpenFileStorage loads the store at path, creating an empty one if the file
// does not exist yet.
func OpenFileStorage(path string) (*FileStorage, error) {
	data := make(map[string]string)

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, err
		}
	}

	return &FileStorage{path: path, data: data}, nil
}

func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *FileStorage) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.persist()
}

func (f *FileStorage) Delete(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.persist()
}

// persist writes the store back out. The file holds a session token, so keep
// it owner-readable only. Write failures leave the in-memory state intact.
func (f *FileStorage) persist() {
	raw, err := json.Marshal(f.data)
	if err != nil {
		return
	}
	_ = os.WriteFile(f.path, raw, 0o600)
}
