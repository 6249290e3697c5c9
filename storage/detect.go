package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Detect inspects the bootstrap settings and returns the active backend,
// materializing a default document if none exists yet. The selector is
// strict: "mongodb" with an unreachable database and any unrecognized
// value are errors the caller must treat as fatal.
func Detect(ctx context.Context, opts Options) (Kind, Backend, error) {
	logger := log.FromContext(ctx)
	switch strings.ToLower(opts.Mode) {
	case "mongodb":
		if opts.MongoURI == "" {
			return KindNone, nil, fmt.Errorf("storage mode is 'mongodb' but no connection string is set")
		}
		ds, err := ConnectDocumentStore(ctx, opts.MongoURI, opts.MongoDB, opts.MongoCol)
		if err != nil {
			return KindNone, nil, err
		}
		logger.Info("using mongodb for storing config")
		return KindDocument, ds, nil
	case "file":
		fs := NewFileStore(opts.Dir)
		if err := fs.Ensure(ctx); err != nil {
			return KindNone, nil, err
		}
		logger.Infof("using file-based storage at %s", fs.Path())
		return KindFile, fs, nil
	default:
		return KindNone, nil, fmt.Errorf("%w, got %q", ErrInvalidStorageMode, opts.Mode)
	}
}
