package storage

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"

	"github.com/telefwd/telefwd/config"
)

const readAttempts = 3

// Gateway is the single facade for reading and writing the configuration
// document. Reads self-heal: a failed read re-runs backend detection and
// retries, degrading to an in-memory default after readAttempts tries.
// The Gateway assumes one configuration-owning context per process;
// concurrent callers must serialize externally.
type Gateway struct {
	opts    Options
	kind    Kind
	backend Backend
	file    *FileStore

	detect        func(ctx context.Context, opts Options) (Kind, Backend, error)
	retryInterval time.Duration
}

// NewGateway detects and validates the backend. An error here is fatal
// for the process: a strictly requested backend could not be satisfied.
func NewGateway(ctx context.Context, opts Options) (*Gateway, error) {
	g := &Gateway{
		opts:          opts,
		detect:        Detect,
		retryInterval: time.Second,
	}
	kind, backend, err := g.detect(ctx, opts)
	if err != nil {
		return nil, err
	}
	g.setBackend(kind, backend)
	return g, nil
}

func (g *Gateway) setBackend(kind Kind, backend Backend) {
	g.kind = kind
	g.backend = backend
	if fs, ok := backend.(*FileStore); ok {
		g.file = fs
	}
}

func (g *Gateway) Kind() Kind {
	return g.kind
}

// ReadConfig loads the active document. Each failed attempt logs the
// error and re-runs detection before retrying, so a stale backend choice
// or a store that recovers after reconnection still gets read. After
// readAttempts failures a default document is returned instead of an
// error; callers that care about auditability should diff it against any
// known prior state, since a degraded default can mask data loss.
func (g *Gateway) ReadConfig(ctx context.Context) *config.Config {
	logger := log.FromContext(ctx)
	attempt := 0
	var cfg *config.Config
	op := func() error {
		attempt++
		if attempt > 1 {
			logger.Infof("trying to read config, attempt %d", attempt)
		}
		if g.backend == nil {
			cfg = config.Default()
			return nil
		}
		c, err := g.backend.Read(ctx)
		if err == nil {
			cfg = c
			return nil
		}
		if attempt == 1 {
			logger.Warnf("failed to read config: %v", err)
		} else {
			logger.Errorf("failed to read config: %v", err)
		}
		if kind, backend, derr := g.detect(ctx, g.opts); derr != nil {
			logger.Errorf("backend re-detection failed: %v", derr)
		} else {
			g.setBackend(kind, backend)
		}
		return err
	}
	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.retryInterval), readAttempts-1),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		logger.Warn("failed to read config, returning default config")
		return config.Default()
	}
	return cfg
}

// WriteConfig persists the document. For the file backend every write
// goes to disk. For the document backend persist=false skips the storage
// round trip, letting callers mutate session-only fields in memory.
func (g *Gateway) WriteConfig(ctx context.Context, cfg *config.Config, persist bool) error {
	if g.kind == KindDocument {
		if !persist {
			return nil
		}
		return g.backend.Write(ctx, cfg)
	}
	if g.file == nil {
		g.file = NewFileStore(g.opts.Dir)
	}
	return g.file.Write(ctx, cfg)
}
