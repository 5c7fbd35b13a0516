package persist

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"star-rush/server/logging"
)

func TestFileStoreSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.LoadOrCreateProfile("corsair"); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := store.UpdateProfile("corsair", 40, 100); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if err := store.RecordPickup("corsair", PickupStats{StarID: 2, Team: "red", XP: 50}); err != nil {
		t.Fatalf("record pickup: %v", err)
	}

	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	profile, err := reloaded.LoadOrCreateProfile("corsair")
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.XP != 50 || profile.MaxXP != 100 || profile.Pickups != 1 {
		t.Fatalf("unexpected reloaded profile: %+v", profile)
	}
}

func TestMemoryStoreLoadOrCreate(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.LoadOrCreateProfile("corsair")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Name != "corsair" {
		t.Fatalf("unexpected profile: %+v", first)
	}

	if err := store.UpdateProfile("corsair", 30, 100); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := store.LoadOrCreateProfile("corsair")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if again.XP != 30 {
		t.Fatalf("expected persisted xp, got %+v", again)
	}
}

type failingStore struct {
	mu    sync.Mutex
	calls int
}

func (s *failingStore) LoadOrCreateProfile(name string) (Profile, error) {
	return Profile{}, errors.New("store offline")
}

func (s *failingStore) UpdateProfile(string, float64, float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("store offline")
}

func (s *failingStore) RecordPickup(string, PickupStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("store offline")
}

func TestRecorderSwallowsStoreFailures(t *testing.T) {
	var mu sync.Mutex
	var events []logging.Event
	capture := logging.PublisherFunc(func(_ context.Context, event logging.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, event)
	})

	store := &failingStore{}
	recorder := NewRecorder(store, capture)

	recorder.UpdateProfile("corsair", 10, 100)
	recorder.RecordPickup("corsair", PickupStats{StarID: 0, Team: "blue", XP: 10})
	recorder.Close()

	store.mu.Lock()
	calls := store.calls
	store.mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected both jobs attempted, got %d", calls)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("expected two failure events, got %d", len(events))
	}
	for _, event := range events {
		if event.Type != EventWriteFailed {
			t.Fatalf("unexpected event type %q", event.Type)
		}
	}
}

func TestRecorderCloseRacesEnqueue(t *testing.T) {
	store := NewMemoryStore()
	recorder := NewRecorder(store, logging.NopPublisher{})

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 200; j++ {
				recorder.UpdateProfile("corsair", float64(j), 100)
				recorder.RecordPickup("corsair", PickupStats{StarID: j % 5, Team: "red", XP: 10})
			}
		}()
	}

	close(start)
	recorder.Close()
	wg.Wait()

	// Enqueues after Close are inert, as is a second Close.
	recorder.UpdateProfile("corsair", 99, 100)
	recorder.Close()
}

func TestRecorderSkipsUnnamedShips(t *testing.T) {
	store := &failingStore{}
	recorder := NewRecorder(store, logging.NopPublisher{})

	recorder.UpdateProfile("", 10, 100)
	recorder.Close()

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.calls != 0 {
		t.Fatalf("expected unnamed progress to be skipped, got %d calls", store.calls)
	}
}
