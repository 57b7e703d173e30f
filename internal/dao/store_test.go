package dao

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestStoreSharesConnection(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sgallery.db"))
	defer store.Close()

	const callers = 8
	conns := make([]*SGDB, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := store.Open()
			if err != nil {
				t.Error("could not open store: ", err)
				return
			}
			conns[i] = conn
		}(i)
	}
	wg.Wait()
	for i := 1; i < callers; i++ {
		if conns[i] != conns[0] {
			t.Fatal("concurrent opens must share a single connection")
		}
	}
}

func TestStoreRetriesFailedOpen(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nosuchdir")
	store := NewStore(filepath.Join(missing, "sgallery.db"))
	defer store.Close()

	if _, err := store.Open(); err == nil {
		t.Fatal("expected open to fail on a missing directory")
	}
	if err := os.Mkdir(missing, 0755); err != nil {
		t.Fatal("could not create directory: ", err)
	}
	//a failed initialization must not be cached
	if _, err := store.Open(); err != nil {
		t.Error("expected retry to succeed got ", err)
	}
}

func TestStoreInvalidate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sgallery.db"))
	defer store.Close()

	first, err := store.Open()
	if err != nil {
		t.Fatal("could not open store: ", err)
	}
	store.Invalidate()
	second, err := store.Open()
	if err != nil {
		t.Fatal("could not reopen store: ", err)
	}
	if first == second {
		t.Error("expected a fresh connection after invalidate")
	}
}
