package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/telefwd/telefwd/config"
)

type fakeBackend struct {
	failures int
	reads    int
	writes   int
	cfg      *config.Config
}

func (f *fakeBackend) Read(ctx context.Context) (*config.Config, error) {
	f.reads++
	if f.reads <= f.failures {
		return nil, errors.New("storage unavailable")
	}
	return f.cfg, nil
}

func (f *fakeBackend) Write(ctx context.Context, cfg *config.Config) error {
	f.writes++
	f.cfg = cfg
	return nil
}

func newTestGateway(backend Backend) (*Gateway, *int) {
	detects := 0
	g := &Gateway{
		detect: func(ctx context.Context, opts Options) (Kind, Backend, error) {
			detects++
			return KindDocument, backend, nil
		},
		retryInterval: time.Millisecond,
	}
	g.setBackend(KindDocument, backend)
	return g, &detects
}

func TestReadConfigRecoversOnThirdAttempt(t *testing.T) {
	want := config.Default()
	want.Theme = "dark"
	backend := &fakeBackend{failures: 2, cfg: want}
	g, detects := newTestGateway(backend)

	got := g.ReadConfig(context.Background())
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want the stored document", got)
	}
	if backend.reads != 3 {
		t.Fatalf("reads = %d, want 3", backend.reads)
	}
	if *detects != 2 {
		t.Fatalf("re-detections = %d, want one per failed attempt", *detects)
	}
}

func TestReadConfigDegradesToDefault(t *testing.T) {
	backend := &fakeBackend{failures: 100}
	g, _ := newTestGateway(backend)

	got := g.ReadConfig(context.Background())
	if !reflect.DeepEqual(got, config.Default()) {
		t.Fatalf("expected default config after exhausted retries, got %#v", got)
	}
	if backend.reads != 3 {
		t.Fatalf("reads = %d, want exactly 3 attempts", backend.reads)
	}
}

func TestWriteConfigPersistFlag(t *testing.T) {
	backend := &fakeBackend{}
	g, _ := newTestGateway(backend)
	cfg := config.Default()

	if err := g.WriteConfig(context.Background(), cfg, false); err != nil {
		t.Fatal(err)
	}
	if backend.writes != 0 {
		t.Fatal("persist=false must skip the document backend round trip")
	}
	if err := g.WriteConfig(context.Background(), cfg, true); err != nil {
		t.Fatal(err)
	}
	if backend.writes != 1 {
		t.Fatalf("writes = %d, want 1", backend.writes)
	}
}

func TestWriteConfigFileBackendAlwaysWrites(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir)
	g := &Gateway{opts: Options{Dir: dir}, retryInterval: time.Millisecond}
	g.setBackend(KindFile, fs)

	cfg := config.Default()
	cfg.Theme = "dark"
	if err := g.WriteConfig(context.Background(), cfg, false); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.Theme != "dark" {
		t.Fatal("file backend must write even with persist=false")
	}
}
