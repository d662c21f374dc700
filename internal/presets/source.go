package presets

import "sync"

// Source holds the current catalogue for a path and can reload it.
// It is safe for concurrent use.
type Source struct {
	path string

	mu      sync.RWMutex
	catalog *Catalog
}

// NewSource loads the catalogue at path, or the built-in one when path is
// empty.
func NewSource(path string) (*Source, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, catalog: c}, nil
}

// Path returns the file the source reads, or "" for the built-in catalogue.
func (s *Source) Path() string {
	return s.path
}

// Catalog returns the most recently loaded catalogue.
func (s *Source) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Reload re-reads the file. On error the previous catalogue is kept.
func (s *Source) Reload() error {
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
	return nil
}
