package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/louisbranch/adminpanel/internal/services/admin/user"
)

const seedUsersJSON = `[
	{"id": 1, "name": "Ada", "email": "ada@example.com"},
	{"id": 2, "name": "Grace", "email": "grace@example.com"},
	{"id": "u-3", "name": "Linus", "email": "linus@example.com"}
]`

// fakeUsersAPI serves the upstream users API from memory.
type fakeUsersAPI struct {
	mu         sync.Mutex
	users      []user.User
	nextID     int
	listStatus int
	location   string
	requests   []string
}

func newFakeUsersAPI(t *testing.T) (*fakeUsersAPI, *httptest.Server) {
	t.Helper()
	api := &fakeUsersAPI{nextID: 10}
	if err := json.Unmarshal([]byte(seedUsersJSON), &api.users); err != nil {
		t.Fatalf("decode seed users: %v", err)
	}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeUsersAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	switch {
	case r.URL.Path == "/api/users" && r.Method == http.MethodGet:
		if f.listStatus != 0 {
			http.Error(w, "unavailable", f.listStatus)
			return
		}
		writeJSON(w, f.users)
	case r.URL.Path == "/api/users" && r.Method == http.MethodPost:
		var draft user.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		var created user.User
		_ = json.Unmarshal([]byte(`{"id":`+strconv.Itoa(f.nextID)+`}`), &created)
		f.nextID++
		created.Name = draft.Name
		created.Email = draft.Email
		f.users = append(f.users, created)
		writeJSON(w, created)
	case strings.HasPrefix(r.URL.Path, "/api/users/") && r.Method == http.MethodPut:
		var record user.User
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		f.users = user.Replace(f.users, record)
		writeJSON(w, record)
	case strings.HasPrefix(r.URL.Path, "/api/users/") && r.Method == http.MethodDelete:
		id := user.NewID(strings.TrimPrefix(r.URL.Path, "/api/users/"))
		f.users = user.Remove(f.users, id)
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/api/live-location" && r.Method == http.MethodGet:
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(f.location))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeUsersAPI) setListStatus(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listStatus = status
}

func (f *fakeUsersAPI) setLocation(payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.location = payload
}

func (f *fakeUsersAPI) requestCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, request := range f.requests {
		if strings.HasPrefix(request, prefix) {
			count++
		}
	}
	return count
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
