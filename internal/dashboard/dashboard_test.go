package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/litscout/litscout/internal/api"
	"github.com/litscout/litscout/internal/auth"
	"github.com/litscout/litscout/internal/config"
	"github.com/litscout/litscout/internal/notify"
	"github.com/litscout/litscout/internal/prefs"
)

type fixture struct {
	server  *Server
	session *auth.Session
	store   *auth.Store
	prefs   *prefs.Store
}

func setupTest(t *testing.T, backend http.HandlerFunc, loggedIn bool) *fixture {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	store := auth.NewStore(filepath.Join(dir, "session.json"))
	session := auth.NewSession(store)
	if loggedIn {
		if err := session.Login("test-token", "user@example.com"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
	}

	prefStore := prefs.NewStore(filepath.Join(dir, "prefs.json"))
	client := api.New(srv.URL, session, 0)
	notifier := notify.NewWithWriter(nopWriter{})

	server := New(config.DashboardConfig{Port: 0}, client, session, prefStore, nil, notifier, zerolog.Nop())
	return &fixture{server: server, session: session, store: store, prefs: prefStore}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func get(t *testing.T, f *fixture, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	f.server.Router().ServeHTTP(w, req)
	return w
}

func postForm(t *testing.T, f *fixture, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.server.Router().ServeHTTP(w, req)
	return w
}

func TestProtectedPathsRedirectToLogin(t *testing.T) {
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend reached without a session")
	}, false)

	for _, path := range []string{"/", "/projects", "/recent", "/projects/view/kidney/files"} {
		w := get(t, f, path)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Errorf("GET %s: code=%d location=%q", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestRootProbeRedirects(t *testing.T) {
	tests := []struct {
		name     string
		respond  func(w http.ResponseWriter)
		location string
	}{
		{"no projects", func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode([]string{})
		}, "/projects/create"},
		{"unreadable listing", func(w http.ResponseWriter) {
			w.Write([]byte(`{"weird":"shape"}`))
		}, "/projects/create"},
		{"server error", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusInternalServerError)
		}, "/projects/create"},
		{"has projects", func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode([]string{"users/u1/kidney/"})
		}, "/projects"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
				tt.respond(w)
			}, true)

			w := get(t, f, "/")
			if w.Code != http.StatusSeeOther || w.Header().Get("Location") != tt.location {
				t.Errorf("code=%d location=%q, want %q", w.Code, w.Header().Get("Location"), tt.location)
			}
		})
	}
}

func TestRootProbeNeverCached(t *testing.T) {
	calls := 0
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode([]string{"users/u1/kidney/"})
	}, true)

	get(t, f, "/")
	get(t, f, "/")
	if calls != 2 {
		t.Errorf("probe ran %d times for 2 requests", calls)
	}
}

func TestExpiredSessionGatesBackToLogin(t *testing.T) {
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, true)

	w := get(t, f, "/")
	if w.Header().Get("Location") != "/login" {
		t.Errorf("location = %q", w.Header().Get("Location"))
	}
	if f.session.Authenticated() {
		t.Error("session still authenticated after backend 401")
	}
	if token, _, _ := f.store.Load(); token != "" {
		t.Error("stored token survived a 401")
	}
}

func TestLoginFlow(t *testing.T) {
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/login" {
			t.Errorf("unexpected backend path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "fresh-token"})
	}, false)

	w := postForm(t, f, "/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"hunter22"},
	})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("code=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	if !f.session.Authenticated() || f.session.Token() != "fresh-token" {
		t.Error("session not established")
	}
	if token, email, _ := f.store.Load(); token != "fresh-token" || email != "user@example.com" {
		t.Errorf("stored session = %q/%q", token, email)
	}
}

func TestLoginFailureStaysOnLogin(t *testing.T) {
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, false)

	w := postForm(t, f, "/login", url.Values{
		"email":    {"user@example.com"},
		"password": {"wrong"},
	})
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "/login?error=") {
		t.Errorf("location = %q", location)
	}
	if f.session.Authenticated() {
		t.Error("session established despite failed login")
	}
}

func TestSidebarToggle(t *testing.T) {
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]string{})
	}, true)

	if !f.prefs.SidebarOpen() {
		t.Fatal("sidebar should default to open")
	}

	postForm(t, f, "/prefs/sidebar", nil)
	if f.prefs.SidebarOpen() {
		t.Error("sidebar still open after toggle")
	}

	postForm(t, f, "/prefs/sidebar", nil)
	if !f.prefs.SidebarOpen() {
		t.Error("sidebar still closed after second toggle")
	}
}

func TestFilesPageGroupsBySource(t *testing.T) {
	f := setupTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/services/get_all_file_and_folders" {
			t.Errorf("unexpected backend path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]string{
			"users/u1/kidney/pubmed/topicA/file_1.pdf",
			"users/u1/kidney/includes/topicA/file_2.pdf",
			"users/u1/kidney/exports/results.csv",
		})
	}, true)

	w := get(t, f, "/projects/view/kidney/files")
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"file 1.pdf", "file 2.pdf", "results.csv", "PubMed", "Included"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestNotificationHubFansOut(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	if hub.ClientCount() != 0 {
		t.Fatal("fresh hub has clients")
	}
	// Without clients, Notify must be a no-op that does not block.
	hub.Notify(notify.Notification{Level: notify.LevelSuccess, Message: "hello"})
}
