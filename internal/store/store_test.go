package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// Both backends must behave the same through the interface.
var (
	_ Storage = (*SQLite)(nil)
	_ Storage = (*Memory)(nil)
)

func openTemp(t *testing.T) *SQLite {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "aagag.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	var name string
	err = st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Fatalf("kv table not created: %v", err)
	}
	if name != "kv" {
		t.Errorf("expected table name 'kv', got %q", name)
	}
}

func TestStorageContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Storage{
		"sqlite": func(t *testing.T) Storage { return openTemp(t) },
		"memory": func(t *testing.T) Storage { return NewMemory() },
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			st := open(t)

			if _, ok, err := st.Get("missing"); err != nil || ok {
				t.Errorf("expected missing key, got ok=%v err=%v", ok, err)
			}

			if err := st.Set("애객 세끼 For Web-favorites", `[{"name":"X","region":"seoul"}]`); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			v, ok, err := st.Get("애객 세끼 For Web-favorites")
			if err != nil || !ok {
				t.Fatalf("Get failed: ok=%v err=%v", ok, err)
			}
			if v != `[{"name":"X","region":"seoul"}]` {
				t.Errorf("unexpected value %q", v)
			}

			if err := st.Set("애객 세끼 For Web-favorites", "[]"); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			if v, _, _ := st.Get("애객 세끼 For Web-favorites"); v != "[]" {
				t.Errorf("expected overwritten value, got %q", v)
			}

			if err := st.Remove("애객 세끼 For Web-favorites"); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if _, ok, _ := st.Get("애객 세끼 For Web-favorites"); ok {
				t.Error("key should be gone after Remove")
			}
			if err := st.Remove("never-set"); err != nil {
				t.Errorf("removing an absent key should succeed, got %v", err)
			}

			if err := st.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if err := st.Set("k", "v"); !errors.Is(err, ErrClosed) {
				t.Errorf("expected ErrClosed after Close, got %v", err)
			}
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aagag.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := st.Set("last-region", "incheon"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()

	v, ok, err := st.Get("last-region")
	if err != nil || !ok || v != "incheon" {
		t.Errorf("expected incheon after reopen, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestPersistent(t *testing.T) {
	if !openTemp(t).Persistent() {
		t.Error("SQLite should be persistent")
	}
	if NewMemory().Persistent() {
		t.Error("Memory should not be persistent")
	}
}

func TestOpenOrMemoryFallback(t *testing.T) {
	// A path inside a regular file can never be opened as a database.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got := OpenOrMemory(filepath.Join(blocker, "nested", "aagag.db"))
	defer got.Close()
	if got.Persistent() {
		t.Error("expected memory fallback for an unusable path")
	}

	empty := OpenOrMemory("")
	if empty.Persistent() {
		t.Error("expected memory storage for an empty path")
	}

	ok := OpenOrMemory(filepath.Join(dir, "aagag.db"))
	defer ok.Close()
	if !ok.Persistent() {
		t.Error("expected SQLite storage for a usable path")
	}
}

func TestConcurrentAccess(t *testing.T) {
	st := openTemp(t)

	var wg sync.WaitGroup
	// Channel to collect errors from goroutines (testing.T methods are not goroutine-safe)
	errCh := make(chan error, 20)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := st.Set(fmt.Sprintf("key-%d", n), fmt.Sprintf("value-%d", n)); err != nil {
				errCh <- fmt.Errorf("Set failed for writer %d: %v", n, err)
			}
		}(i)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, _, err := st.Get(fmt.Sprintf("key-%d", n)); err != nil {
				errCh <- fmt.Errorf("Get failed for reader %d: %v", n, err)
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}

	for i := 0; i < 10; i++ {
		v, ok, err := st.Get(fmt.Sprintf("key-%d", i))
		if err != nil || !ok || v != fmt.Sprintf("value-%d", i) {
			t.Errorf("key-%d: got %q ok=%v err=%v", i, v, ok, err)
		}
	}
}
