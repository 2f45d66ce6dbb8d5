package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	store := testStore(t)

	if err := store.Save("tok-123", "researcher@example.com"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	token, email, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token: got %q, want %q", token, "tok-123")
	}
	if email != "researcher@example.com" {
		t.Errorf("email: got %q, want %q", email, "researcher@example.com")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := testStore(t)

	token, _, err := store.Load()
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if token != "" {
		t.Errorf("expected empty token for missing file, got %q", token)
	}
}

func TestStoreClear(t *testing.T) {
	store := testStore(t)

	if err := store.Save("tok", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("expected session file removed, stat err = %v", err)
	}

	// Clearing again must not error.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear of absent file failed: %v", err)
	}
}

func TestStoreFilePermissions(t *testing.T) {
	store := testStore(t)
	if err := store.Save("tok", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("session file permissions: got %o, want 0600", perm)
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := testStore(t)

	sess := NewSession(store)
	sess.Initialize()
	if sess.Authenticated() {
		t.Fatal("fresh session should be unauthenticated")
	}

	if err := sess.Login("tok-abc", "a@b.com"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !sess.Authenticated() {
		t.Fatal("session should be authenticated after Login")
	}

	// A second session over the same store restores the token at Initialize.
	restored := NewSession(store)
	restored.Initialize()
	if !restored.Authenticated() || restored.Token() != "tok-abc" {
		t.Fatalf("restored session: authenticated=%v token=%q", restored.Authenticated(), restored.Token())
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if sess.Authenticated() {
		t.Fatal("session should be unauthenticated after Logout")
	}
}

func TestSessionInitializeCorruptFile(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	sess := NewSession(store)
	sess.Initialize()
	if sess.Authenticated() {
		t.Fatal("corrupt session file must demote to logged out")
	}
}

func TestSessionExpire(t *testing.T) {
	store := testStore(t)
	sess := NewSession(store)
	if err := sess.Login("tok", ""); err != nil {
		t.Fatal(err)
	}

	sess.Expire()
	if sess.Authenticated() {
		t.Fatal("session should be unauthenticated after Expire")
	}
	if token, _, _ := store.Load(); token != "" {
		t.Errorf("expected store cleared after Expire, got token %q", token)
	}
}

func TestTokenExpiry(t *testing.T) {
	store := testStore(t)
	sess := NewSession(store)

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "researcher@example.com",
		"exp": exp.Unix(),
	})
	signed, err := jwtToken.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if err := sess.Login(signed, ""); err != nil {
		t.Fatal(err)
	}

	got, ok := sess.TokenExpiry()
	if !ok {
		t.Fatal("expected expiry for JWT token")
	}
	if !got.Equal(exp) {
		t.Errorf("expiry: got %v, want %v", got, exp)
	}

	// Opaque tokens carry no expiry.
	if err := sess.Login("opaque-token", ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := sess.TokenExpiry(); ok {
		t.Error("expected no expiry for opaque token")
	}
}
