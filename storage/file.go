package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/telefwd/telefwd/config"
)

const (
	// ConfigFileName is the fixed document filename.
	ConfigFileName = "telefwd.config.json"
	// AltConfigFileName is used when the primary path is occupied by a
	// directory of the same name.
	AltConfigFileName = "telefwd_config.json"

	containerConfigDir = "/app/config"
)

// ResolveConfigDir picks the config directory: the container mount if
// present, else a local "config" subdirectory, else the working
// directory.
func ResolveConfigDir() string {
	if st, err := os.Stat(containerConfigDir); err == nil && st.IsDir() {
		return containerConfigDir
	}
	if st, err := os.Stat("config"); err == nil && st.IsDir() {
		return "config"
	}
	return "."
}

// FileStore keeps the configuration document as one JSON file.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = ResolveConfigDir()
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) primary() string {
	return filepath.Join(s.dir, ConfigFileName)
}

func (s *FileStore) alternate() string {
	return filepath.Join(s.dir, AltConfigFileName)
}

// Path returns the file the store currently reads from, accounting for a
// path-is-directory collision.
func (s *FileStore) Path() string {
	if st, err := os.Stat(s.primary()); err == nil && st.IsDir() {
		return s.alternate()
	}
	return s.primary()
}

// Ensure materializes a default document when none exists anywhere the
// store would look. It does not parse an existing file.
func (s *FileStore) Ensure(ctx context.Context) error {
	logger := log.FromContext(ctx)
	if st, err := os.Stat(s.primary()); err == nil {
		if !st.IsDir() {
			return nil
		}
		logger.Warnf("%s is a directory, using %s instead", s.primary(), s.alternate())
		if fileExists(s.alternate()) {
			return nil
		}
		return s.writeTo(s.alternate(), config.Default())
	}
	if fileExists(ConfigFileName) {
		// Current-directory fallback from older layouts.
		return nil
	}
	logger.Infof("creating new config file %s", s.primary())
	return s.Write(ctx, config.Default())
}

// Read loads the document. A missing file yields a freshly persisted
// default; a parse failure is surfaced to the caller, not swallowed.
func (s *FileStore) Read(ctx context.Context) (*config.Config, error) {
	logger := log.FromContext(ctx)
	if st, err := os.Stat(s.primary()); err == nil && st.IsDir() {
		logger.Warnf("%s is a directory, trying %s instead", s.primary(), s.alternate())
		if fileExists(s.alternate()) {
			return readFile(s.alternate())
		}
		cfg := config.Default()
		if err := s.writeTo(s.alternate(), cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if fileExists(s.primary()) {
		return readFile(s.primary())
	}
	if fileExists(ConfigFileName) {
		return readFile(ConfigFileName)
	}
	cfg := config.Default()
	if err := s.Write(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write serializes the document, falling back to the alternate filename
// on a directory collision and creating parent directories as needed.
func (s *FileStore) Write(ctx context.Context, cfg *config.Config) error {
	path := s.primary()
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		log.FromContext(ctx).Warnf("%s is a directory, writing %s instead", path, s.alternate())
		path = s.alternate()
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return s.writeTo(path, cfg)
}

func (s *FileStore) writeTo(path string, cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

func readFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
