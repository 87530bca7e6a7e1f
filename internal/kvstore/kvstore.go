package kvstore

import (
	"errors"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// Store is a durable string key-value store.
// Get reports ok=false for keys that were never written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Disk persists values as one file per key under a base directory.
type Disk struct {
	d        *diskv.Diskv
	basePath string
}

// OpenDisk creates a diskv-backed store rooted at basePath.
func OpenDisk(basePath string) (*Disk, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("kvstore: base path is required")
	}
	return &Disk{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath returns the directory values are stored under.
func (s *Disk) BasePath() string {
	return s.basePath
}

func (s *Disk) Get(key string) (string, bool, error) {
	k := SanitizeKey(key)
	if !s.d.Has(k) {
		return "", false, nil
	}
	val, err := s.d.Read(k)
	if err != nil {
		return "", false, err
	}
	return string(val), true, nil
}

func (s *Disk) Set(key, value string) error {
	return s.d.Write(SanitizeKey(key), []byte(value))
}

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// SanitizeKey converts a store key to a safe file name.
func SanitizeKey(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "-")
	return replacer.Replace(key)
}
