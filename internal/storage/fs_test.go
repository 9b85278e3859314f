package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	key, err := s.Put("img/logo.png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatal(err)
	}
	if key != "img/logo.png" {
		t.Errorf("key = %q", key)
	}

	rc, err := s.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "pixels" {
		t.Errorf("content = %q", b)
	}

	if err := s.Delete(key); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(key); err == nil {
		t.Fatal("want error after delete")
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	s, err := NewFSStore(base)
	if err != nil {
		t.Fatal(err)
	}

	outside := filepath.Join(filepath.Dir(base), "escape.txt")
	if _, err := s.Put("../escape.txt", strings.NewReader("x")); err == nil {
		if _, statErr := os.Stat(outside); statErr == nil {
			t.Fatal("traversal escaped the base directory")
		}
	}

	if _, err := s.Put("", strings.NewReader("x")); err == nil {
		t.Error("want error for empty key")
	}
}
