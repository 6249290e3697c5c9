package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/telefwd/telefwd/storage"
)

func TestDetectFileMode(t *testing.T) {
	for _, mode := range []string{"file", "FILE", "File"} {
		kind, backend, err := storage.Detect(context.Background(), storage.Options{
			Mode: mode,
			Dir:  t.TempDir(),
		})
		if err != nil {
			t.Fatalf("Detect(%q): %v", mode, err)
		}
		if kind != storage.KindFile {
			t.Fatalf("Detect(%q) kind = %v, want file", mode, kind)
		}
		if _, ok := backend.(*storage.FileStore); !ok {
			t.Fatalf("Detect(%q) backend = %T, want *FileStore", mode, backend)
		}
	}
}

func TestDetectInvalidSelector(t *testing.T) {
	for _, mode := range []string{"", "sqlite", "mongo", "filesystem"} {
		kind, backend, err := storage.Detect(context.Background(), storage.Options{Mode: mode})
		if !errors.Is(err, storage.ErrInvalidStorageMode) {
			t.Fatalf("Detect(%q) err = %v, want ErrInvalidStorageMode", mode, err)
		}
		if kind != storage.KindNone || backend != nil {
			t.Fatalf("Detect(%q) returned a backend despite invalid selector", mode)
		}
	}
}

func TestDetectMongoWithoutURI(t *testing.T) {
	kind, backend, err := storage.Detect(context.Background(), storage.Options{Mode: "mongodb"})
	if err == nil {
		t.Fatal("expected error for mongodb mode without connection string")
	}
	if kind != storage.KindNone || backend != nil {
		t.Fatal("mongodb mode must never fall back to another backend")
	}
}
