package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetchWritesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<AddOns></AddOns>"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), ".cache", "addon_catalog.xml")
	f := New(0)

	got, err := f.Fetch(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if got != dest {
		t.Errorf("Fetch returned %q, want %q", got, dest)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "<AddOns></AddOns>" {
		t.Errorf("destination content = %q", data)
	}
}

func TestFetchCreatesParentDirs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "a", "b", "c", "catalog.xml")
	if _, err := New(0).Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("destination missing: %v", err)
	}
}

func TestFetchOverwritesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("new"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "catalog.xml")
	if err := os.WriteFile(dest, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := New(0).Fetch(context.Background(), srv.URL, dest); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "new" {
		t.Errorf("destination content = %q, want overwrite", data)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(0).Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "c.xml"))
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error should wrap ErrNetwork, got %v", err)
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(0).Fetch(context.Background(), url, filepath.Join(t.TempDir(), "c.xml"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error should wrap ErrNetwork, got %v", err)
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New(20 * time.Millisecond).Fetch(context.Background(), srv.URL, filepath.Join(t.TempDir(), "c.xml"))
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("timeout should wrap ErrNetwork, got %v", err)
	}
}

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.xml")
	if err := os.WriteFile(src, []byte("<AddOns/>"), 0644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "out", "catalog.xml")
	if _, err := New(0).Fetch(context.Background(), src, dest); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	data, _ := os.ReadFile(dest)
	if string(data) != "<AddOns/>" {
		t.Errorf("destination content = %q", data)
	}
}

func TestFetchMissingLocalFile(t *testing.T) {
	_, err := New(0).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.xml"), filepath.Join(t.TempDir(), "c.xml"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("error should wrap ErrIO, got %v", err)
	}
}

func TestFetchUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// Parent "directory" is a regular file; MkdirAll must fail.
	_, err := New(0).Fetch(context.Background(), srv.URL, filepath.Join(blocker, "c.xml"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("error should wrap ErrIO, got %v", err)
	}
}
