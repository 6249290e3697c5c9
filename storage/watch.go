package storage

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/telefwd/telefwd/config"
)

// Watch reloads the document whenever the config file changes on disk
// and hands the fresh copy to fn. Only meaningful for the file backend;
// for any other backend it is a no-op. The watcher stops when ctx is
// cancelled.
func (g *Gateway) Watch(ctx context.Context, fn func(*config.Config)) error {
	if g.kind != KindFile || g.file == nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	path := g.file.Path()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}
	logger := log.FromContext(ctx)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				cfg, err := g.file.Read(ctx)
				if err != nil {
					logger.Warnf("config file changed but could not be re-read: %v", err)
					continue
				}
				logger.Info("config file changed, reloaded")
				fn(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("config watcher: %v", err)
			}
		}
	}()
	return nil
}
