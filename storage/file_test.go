package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/telefwd/telefwd/config"
	"github.com/telefwd/telefwd/storage"
)

func sampleConfig() *config.Config {
	cfg := config.Default()
	cfg.Theme = "dark"
	cfg.Admins = []config.Peer{config.PeerID(42), config.PeerHandle("@boss")}
	cfg.Forwards = []config.Forward{
		{
			Name:    "news",
			Enabled: true,
			Source:  config.PeerHandle("@channelA"),
			Dest:    []config.Peer{config.PeerHandle("@channelB"), config.PeerID(-1001)},
		},
		{
			Name:   "disabled",
			Source: config.PeerID(77),
			Dest:   []config.Peer{config.PeerID(88)},
		},
	}
	cfg.Past.Delay = 3
	return cfg
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	ctx := context.Background()

	want := sampleConfig()
	if err := store.Write(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := store.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestFileStoreMissingCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	ctx := context.Background()

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, config.Default()) {
		t.Fatalf("expected default config, got %#v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ConfigFileName)); err != nil {
		t.Fatalf("default document not persisted: %v", err)
	}
}

func TestFileStoreDirCollision(t *testing.T) {
	dir := t.TempDir()
	// Occupy the primary path with a directory of the same name.
	if err := os.Mkdir(filepath.Join(dir, storage.ConfigFileName), 0o755); err != nil {
		t.Fatal(err)
	}
	store := storage.NewFileStore(dir)
	ctx := context.Background()

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read with collision: %v", err)
	}
	if !reflect.DeepEqual(got, config.Default()) {
		t.Fatalf("expected default config, got %#v", got)
	}
	alt := filepath.Join(dir, storage.AltConfigFileName)
	if _, err := os.Stat(alt); err != nil {
		t.Fatalf("alternate file not created: %v", err)
	}
	if store.Path() != alt {
		t.Fatalf("Path() = %q, want %q", store.Path(), alt)
	}

	want := sampleConfig()
	if err := store.Write(ctx, want); err != nil {
		t.Fatalf("write with collision: %v", err)
	}
	got, err = store.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("subsequent read did not find the alternate file: %#v", got)
	}
}

func TestFileStoreParseFailureSurfaced(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, storage.ConfigFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := storage.NewFileStore(dir)
	if _, err := store.Read(context.Background()); err == nil {
		t.Fatal("expected parse error to be surfaced")
	}
}

func TestFileStoreEnsure(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewFileStore(dir)
	ctx := context.Background()

	if err := store.Ensure(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, storage.ConfigFileName)); err != nil {
		t.Fatalf("Ensure did not materialize a document: %v", err)
	}

	// Ensure must not clobber an existing document.
	want := sampleConfig()
	if err := store.Write(ctx, want); err != nil {
		t.Fatal(err)
	}
	if err := store.Ensure(ctx); err != nil {
		t.Fatal(err)
	}
	got, err := store.Read(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Ensure overwrote an existing document: %#v", got)
	}
}
