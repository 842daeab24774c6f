package session

import (
	"errors"
	"testing"
	"time"

	"group-order-client/internal/backend"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newClockedStore(t *testing.T, ttl time.Duration) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(func() (API, error) {
		return backend.New(backend.Options{BaseURL: "http://backend.invalid"})
	}, ttl, nil)
	store.now = clock.Now
	return store, clock
}

func TestStoreCreateAndGet(t *testing.T) {
	store, _ := newClockedStore(t, time.Hour)

	id, ctrl, err := store.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" || ctrl == nil {
		t.Fatalf("expected id and controller")
	}
	got, ok := store.Get(id)
	if !ok || got != ctrl {
		t.Fatalf("expected stored controller back")
	}
	if _, ok := store.Get("unknown"); ok {
		t.Fatalf("expected unknown id to miss")
	}

	other, _, err := store.Create()
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if other == id {
		t.Fatalf("expected distinct ids")
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", store.Len())
	}
}

func TestStoreCreateFactoryError(t *testing.T) {
	store := NewStore(func() (API, error) {
		return nil, errors.New("no backend")
	}, time.Hour, nil)
	if _, _, err := store.Create(); err == nil {
		t.Fatalf("expected factory error")
	}
	if store.Len() != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestStoreGetExpiresIdleSession(t *testing.T) {
	store, clock := newClockedStore(t, time.Hour)
	id, _, _ := store.Create()

	clock.now = clock.now.Add(50 * time.Minute)
	if _, ok := store.Get(id); !ok {
		t.Fatalf("expected session alive within ttl")
	}

	// the previous Get slid lastSeen forward
	clock.now = clock.now.Add(50 * time.Minute)
	if _, ok := store.Get(id); !ok {
		t.Fatalf("expected session alive after touch")
	}

	clock.now = clock.now.Add(61 * time.Minute)
	if _, ok := store.Get(id); ok {
		t.Fatalf("expected idle session expired")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired session removed")
	}
}

func TestStoreSweep(t *testing.T) {
	store, clock := newClockedStore(t, time.Hour)
	stale, _, _ := store.Create()
	clock.now = clock.now.Add(45 * time.Minute)
	fresh, _, _ := store.Create()

	removed := store.Sweep(clock.now.Add(30 * time.Minute))
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok := store.Get(stale); ok {
		t.Fatalf("expected stale session gone")
	}
	if _, ok := store.Get(fresh); !ok {
		t.Fatalf("expected fresh session kept")
	}
}

func TestStoreSweepWithoutTTLKeepsEverything(t *testing.T) {
	store, clock := newClockedStore(t, 0)
	store.Create()
	if removed := store.Sweep(clock.now.Add(1000 * time.Hour)); removed != 0 {
		t.Fatalf("expected nothing removed, got %d", removed)
	}
}
