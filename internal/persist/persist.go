// Package persist is the profile persistence collaborator. Everything in it
// is fire-and-forget from the simulation's point of view: failures are
// logged and swallowed, and the tick loop never waits on it.
package persist

import (
	"sync"
	"time"
)

// Profile is the durable progress attached to a display name.
type Profile struct {
	Name      string    `json:"name"`
	XP        float64   `json:"xp"`
	MaxXP     float64   `json:"maxXp"`
	Pickups   int       `json:"pickups"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PickupStats describes one star collection for the pickup log.
type PickupStats struct {
	StarID int     `json:"starId"`
	Team   string  `json:"team"`
	XP     float64 `json:"xp"`
}

// Store is the persistence contract. Implementations must be safe for
// concurrent use; the recorder calls them from its own goroutine.
type Store interface {
	LoadOrCreateProfile(name string) (Profile, error)
	UpdateProfile(name string, xp, maxXP float64) error
	RecordPickup(name string, stats PickupStats) error
}

// MemoryStore keeps profiles in process memory. It backs tests and runs
// without a configured profile file.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile)}
}

func (s *MemoryStore) LoadOrCreateProfile(name string) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile, ok := s.profiles[name]; ok {
		return profile, nil
	}
	profile := Profile{Name: name, UpdatedAt: time.Now()}
	s.profiles[name] = profile
	return profile, nil
}

func (s *MemoryStore) UpdateProfile(name string, xp, maxXP float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profiles[name]
	profile.Name = name
	profile.XP = xp
	profile.MaxXP = maxXP
	profile.UpdatedAt = time.Now()
	s.profiles[name] = profile
	return nil
}

func (s *MemoryStore) RecordPickup(name string, stats PickupStats) error {
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
	return nil
}
