package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"group-order-client/internal/backend"
)

// fakeBackend answers like the order service with canned responses per path
// and records every request path it sees.
type fakeBackend struct {
	t      *testing.T
	mu     sync.Mutex
	routes map[string]func(w http.ResponseWriter, body map[string]any)
	hits   []string
	bodies map[string]map[string]any
	srv    *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{
		t:      t,
		routes: make(map[string]func(w http.ResponseWriter, body map[string]any)),
		bodies: make(map[string]map[string]any),
	}
	fb.srv = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.srv.Close)
	return fb
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	fb.mu.Lock()
	fb.hits = append(fb.hits, r.URL.Path)
	fb.bodies[r.URL.Path] = body
	handler, ok := fb.routes[r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		respond(w, http.StatusNotFound, map[string]any{"success": false, "message": "Not found"})
		return
	}
	handler(w, body)
}

func (fb *fakeBackend) on(path string, status int, payload any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.routes[path] = func(w http.ResponseWriter, _ map[string]any) {
		respond(w, status, payload)
	}
}

func (fb *fakeBackend) count(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, hit := range fb.hits {
		if hit == path {
			n++
		}
	}
	return n
}

func (fb *fakeBackend) total() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.hits)
}

func (fb *fakeBackend) lastBody(path string) map[string]any {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.bodies[path]
}

func (fb *fakeBackend) controller() *Controller {
	fb.t.Helper()
	client, err := backend.New(backend.Options{BaseURL: fb.srv.URL})
	if err != nil {
		fb.t.Fatalf("backend client: %v", err)
	}
	return NewController(client, nil)
}

func respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

var (
	testUser = map[string]any{"id": 1, "name": "Ada", "email": "ada@example.com"}
	testMenu = map[string]any{"menu_items": []map[string]any{
		{"id": 1, "name": "Fresh Noodles", "description": "Handmade fresh noodles (VG)", "category": "Noodles/Rice", "price": 4.00},
		{"id": 6, "name": "Broccoli", "description": "Fresh steamed broccoli", "category": "Vegetables", "price": 4.00},
		{"id": 3, "name": "Rice Cakes", "description": "Traditional Korean rice cakes (GF) (VG)", "category": "Noodles/Rice", "price": 4.00},
	}}
)
