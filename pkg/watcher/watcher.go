// Package watcher re-triggers analysis when the watched source tree
// changes, with debouncing so editor save storms cause one re-run.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/layerlint/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeSource ChangeType = iota // .rs file added/modified/removed
	ChangeTypeConfig                   // layerlint.toml changed
)

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a source tree for changes relevant to analysis.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	workspace string
	srcRoot   string
	events    chan ChangeEvent
	done      chan struct{}
}

// NewFileWatcher creates a watcher over workspace/srcDir plus the
// workspace-level config file.
func NewFileWatcher(workspace, srcDir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   watcher,
		workspace: workspace,
		srcRoot:   filepath.Join(workspace, srcDir),
		events:    make(chan ChangeEvent, 100),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching for file changes.
func (fw *FileWatcher) Start(ctx context.Context) error {
	if err := fw.watchSourceDirs(); err != nil {
		return err
	}

	// The config file lives at the workspace root; watching the
	// directory catches replace-on-save editors too.
	if err := fw.watcher.Add(fw.workspace); err != nil {
		logging.Warn("failed to watch workspace root", "error", err)
	}

	logging.Info("started watching source tree", "path", fw.srcRoot)

	go fw.processEvents(ctx)
	return nil
}

// watchSourceDirs registers every directory under the source root;
// fsnotify watches are not recursive.
func (fw *FileWatcher) watchSourceDirs() error {
	if _, err := os.Stat(fw.srcRoot); os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s", fw.srcRoot)
	}

	count := 0
	err := filepath.WalkDir(fw.srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip directories we can't access
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == ".git" || name == "target" {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			logging.Warn("failed to watch directory", "path", path, "error", err)
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk source tree: %w", err)
	}

	logging.Info("monitoring source directories", "count", count)
	return nil
}

// processEvents batches raw fsnotify events by type before emitting.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	var sourceFiles []string
	var configFiles []string

	flushTimer := time.NewTimer(100 * time.Millisecond)
	flushTimer.Stop()

	flush := func() {
		if len(sourceFiles) > 0 {
			fw.events <- ChangeEvent{Type: ChangeTypeSource, Paths: sourceFiles, Timestamp: time.Now()}
			sourceFiles = nil
		}
		if len(configFiles) > 0 {
			fw.events <- ChangeEvent{Type: ChangeTypeConfig, Paths: configFiles, Timestamp: time.Now()}
			configFiles = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			fw.watcher.Close()
			close(fw.events)
			close(fw.done)
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			name := filepath.Base(event.Name)
			switch {
			case strings.HasSuffix(name, ".rs"):
				sourceFiles = append(sourceFiles, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
				// New directories need a watch too
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = fw.watcher.Add(event.Name)
					}
				}
			case name == "layerlint.toml":
				configFiles = append(configFiles, event.Name)
				flushTimer.Reset(100 * time.Millisecond)
			case event.Op&fsnotify.Create != 0:
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && strings.HasPrefix(event.Name, fw.srcRoot) {
					_ = fw.watcher.Add(event.Name)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)

		case <-flushTimer.C:
			flush()
		}
	}
}

// Events returns the channel of change events.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Done returns a channel closed when the watcher shuts down.
func (fw *FileWatcher) Done() <-chan struct{} {
	return fw.done
}
