package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pipe01/cddl/internal/parser"
	"github.com/pipe01/cddl/internal/parser/ast"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("cddl.workspace")

var ErrNotFound = errors.New("file not found")

// Workspace reads and parses schema files relative to a root folder, keeping
// the result of every successful parse until it's forgotten.
type Workspace struct {
	rootPath string

	mu          sync.Mutex
	parsedFiles map[string][]ast.Assignment
}

func New(rootPath string) *Workspace {
	return &Workspace{
		rootPath:    rootPath,
		parsedFiles: make(map[string][]ast.Assignment),
	}
}

func (w *Workspace) fullPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return filepath.Clean(relPath)
	}

	return filepath.Join(w.rootPath, relPath)
}

// Load returns the assignments in the file at relPath, parsing it if it hasn't
// been loaded before.
func (w *Workspace) Load(relPath string) ([]ast.Assignment, error) {
	fullPath := w.fullPath(relPath)

	w.mu.Lock()
	cached, ok := w.parsedFiles[fullPath]
	w.mu.Unlock()

	if ok {
		log.Debugf("cache hit for %s", relPath)
		return cached, nil
	}

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, relPath)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	return w.LoadWithContents(relPath, bytes)
}

// LoadWithContents parses contents as if they were the contents of relPath,
// replacing whatever was cached for it.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) ([]ast.Assignment, error) {
	fullPath := w.fullPath(relPath)

	assignments, err := parser.Parse(relPath, contents)
	if err != nil {
		w.Forget(relPath)
		return nil, fmt.Errorf("parse file: %w", err)
	}

	w.mu.Lock()
	w.parsedFiles[fullPath] = assignments
	w.mu.Unlock()

	return assignments, nil
}

// Forget drops the cached result for relPath so the next Load reads it again.
func (w *Workspace) Forget(relPath string) {
	w.mu.Lock()
	delete(w.parsedFiles, w.fullPath(relPath))
	w.mu.Unlock()
}

type File struct {
	Path        string
	Assignments []ast.Assignment
	Err         error
}

// LoadAll loads every path with up to jobs files being parsed at once. Files
// that fail to load carry their error instead of failing the whole call, the
// returned error is only set if ctx is done. Results keep the order of paths.
func (w *Workspace) LoadAll(ctx context.Context, paths []string, jobs int) ([]*File, error) {
	files := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			as, err := w.Load(path)
			files[i] = &File{
				Path:        path,
				Assignments: as,
				Err:         err,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debugf("loaded %d files", len(files))

	return files, nil
}
