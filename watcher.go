package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pipe01/cddl/internal/generator"
	"github.com/pipe01/cddl/internal/workspace"
)

// Watcher regenerates the output of a schema file every time it's written to.
type Watcher struct {
	mu                          sync.Mutex
	watchingDirs, watchingFiles map[string]struct{}

	watcher *fsnotify.Watcher
	ws      *workspace.Workspace

	genOpts generator.Options
	outDir  string
}

func NewWatcher(genOpts generator.Options, outDir string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	wd, _ := os.Getwd()

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]struct{}),
		watcher:       watcher,
		ws:            workspace.New(wd),
		genOpts:       genOpts,
		outDir:        outDir,
	}
	go w.eventLoop()

	return w, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// WatchFile starts watching path. Its folder is watched instead of the file
// itself so editors that replace files on save are also noticed.
func (w *Watcher) WatchFile(path string) error {
	fullPath, _ := filepath.Abs(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.watchingFiles[fullPath] = struct{}{}

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

func (w *Watcher) isWatching(fullPath string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.watchingFiles[fullPath]
	return ok
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)

			if !w.isWatching(fname) {
				continue
			}

			w.fileModified(fname)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher error: %s", err)
		}
	}
}

func (w *Watcher) fileModified(fullPath string) {
	log.Noticef("file %q modified, regenerating...", filepath.Base(fullPath))

	w.ws.Forget(fullPath)

	_, err := generateFile(w.ws, fullPath, w.genOpts, w.outDir)
	if err != nil {
		reportError(os.Stderr, fullPath, err)
	}
}
