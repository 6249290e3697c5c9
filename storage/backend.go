// Package storage persists the configuration document. Two backends are
// supported: a JSON file in a resolved config directory and a single
// sentinel record in a MongoDB collection. The Gateway is the only entry
// point other subsystems use to observe or mutate configuration.
package storage

import (
	"context"
	"errors"

	"github.com/telefwd/telefwd/config"
)

// Kind identifies the active persistence backend. Never two at once.
type Kind int

const (
	KindNone Kind = iota
	KindFile
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDocument:
		return "mongodb"
	default:
		return "none"
	}
}

// Backend reads and writes the whole configuration document.
type Backend interface {
	Read(ctx context.Context) (*config.Config, error)
	Write(ctx context.Context, cfg *config.Config) error
}

// ErrInvalidStorageMode is returned by Detect for a selector other than
// "file" or "mongodb". Callers terminate the process on it: a bad
// selector is a configuration error, not something to fall back from.
var ErrInvalidStorageMode = errors.New("storage mode must be 'file' or 'mongodb'")

// Options carries the bootstrap settings Detect needs.
type Options struct {
	Mode     string
	MongoURI string
	MongoDB  string
	MongoCol string

	// Dir overrides config-directory resolution. Empty means resolve
	// from the environment (container dir, ./config, cwd).
	Dir string
}
