package recent

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// MaxEntries is the default cap on how many sources the store remembers.
const MaxEntries = 20

// Entry records one recently opened source.
type Entry struct {
	Path    string    `json:"path"`
	Opened  time.Time `json:"opened"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mtime"`
	Exists  bool      `json:"exists"`
}

// Store persists the recently-opened list as a JSON file, newest first.
type Store struct {
	path string
	max  int
}

// DefaultPath returns the per-user store location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".loupe", "recent.json"), nil
}

// NewStore opens a store at path. A max of zero or less keeps the
// default cap.
func NewStore(path string, max int) *Store {
	if max <= 0 {
		max = MaxEntries
	}
	return &Store{path: path, max: max}
}

// Add records path as the most recently opened source, deduplicating by
// path and dropping the oldest entry past the cap.
func (s *Store) Add(path string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	kept := make([]Entry, 0, len(entries)+1)
	kept = append(kept, Entry{Path: path, Opened: time.Now()})
	for _, e := range entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	if len(kept) > s.max {
		kept = kept[:s.max]
	}
	return s.save(kept)
}

// List returns the stored entries newest first, with size, modification
// time, and existence refreshed from the filesystem.
func (s *Store) List() ([]Entry, error) {
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		info, err := os.Stat(entries[i].Path)
		if err != nil {
			entries[i].Exists = false
			entries[i].Size = 0
			continue
		}
		entries[i].Exists = true
		entries[i].Size = info.Size()
		entries[i].ModTime = info.ModTime()
	}
	return entries, nil
}

// Remove drops path from the store.
func (s *Store) Remove(path string) error {
	entries, err := s.load()
	if err != nil {
		return err
	}
	kept := entries[:0]
	for _, e := range entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	return s.save(kept)
}

// Clear empties the store.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
