package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists profiles as a single JSON document. Writes go through
// a temp file plus rename so a crash never leaves a torn file behind.
type FileStore struct {
	mu       sync.Mutex
	path     string
	profiles map[string]Profile
}

// NewFileStore loads (or initializes) the profile document at path.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{path: path, profiles: make(map[string]Profile)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	if len(data) == 0 {
		return store, nil
	}
	if err := json.Unmarshal(data, &store.profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return store, nil
}

func (s *FileStore) LoadOrCreateProfile(name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile, ok := s.profiles[name]; ok {
		return profile, nil
	}
	profile := Profile{Name: name, UpdatedAt: time.Now()}
	s.profiles[name] = profile
	return profile, s.flushLocked()
}

func (s *FileStore) UpdateProfile(name string, xp, maxXP float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profiles[name]
	profile.Name = name
	profile.XP = xp
	profile.MaxXP = maxXP
	profile.UpdatedAt = time.Now()
	s.profiles[name] = profile
	return s.flushLocked()
}

func (s *FileStore) RecordPickup(name string, stats PickupStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profiles[name]
	profile.Name = name
	profile.Pickups++
	if stats.XP > profile.XP {
		profile.XP = stats.XP
	}
	profile.UpdatedAt = time.Now()
	s.profiles[name] = profile
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace profiles: %w", err)
	}
	return nil
}
