// Package finder lists workspace files from disk for the scanner.
package finder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/gobwas/glob"

	"github.com/holonoms/docwiki/internal/ignore"
	"github.com/holonoms/docwiki/internal/scanner"
)

// Scheme tags documents read from the local file system.
const Scheme = "file"

var errLimit = errors.New("result limit reached")

// FS answers scanner queries by walking a directory tree.
type FS struct {
	root      string
	fsys      fs.FS
	gitignore bool
	logger    *log.Logger
}

// Option configures an FS.
type Option func(*FS)

// WithGitignore makes excluded queries also honor every .gitignore under
// the root. Queries without an exclude expression list everything.
func WithGitignore(enabled bool) Option {
	return func(f *FS) {
		f.gitignore = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(f *FS) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithFS walks fsys instead of the directory at root. Returned paths are
// still joined onto root.
func WithFS(fsys fs.FS) Option {
	return func(f *FS) {
		f.fsys = fsys
	}
}

// New returns a finder rooted at root.
func New(root string, opts ...Option) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	f := &FS{
		root:   abs,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.fsys == nil {
		f.fsys = os.DirFS(abs)
	}
	return f, nil
}

// Root returns the absolute directory the finder walks.
func (f *FS) Root() string {
	return f.root
}

// FindFiles returns the files matching pattern in walk order. exclude is a
// gobwas brace expression matched against "/"-prefixed root-relative paths;
// one that does not compile is ignored. maxResults <= 0 means unlimited.
func (f *FS) FindFiles(ctx context.Context, pattern, exclude string, maxResults int) ([]scanner.Document, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	var excluded glob.Glob
	var matcher gitignore.Matcher
	if exclude != "" {
		g, err := glob.Compile(exclude, '/')
		if err != nil {
			f.logger.Warn("ignoring invalid exclude expression", "exclude", exclude, "error", err)
		} else {
			excluded = g
		}

		if f.gitignore {
			m, err := ignore.NewMatcher(f.root)
			if err != nil {
				f.logger.Warn("ignoring .gitignore files", "error", err)
			} else {
				matcher = m
			}
		}
	}

	var docs []scanner.Document
	err := doublestar.GlobWalk(f.fsys, pattern, func(rel string, _ fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded != nil && excluded.Match("/"+rel) {
			return nil
		}
		if matcher != nil && matcher.Match(strings.Split(rel, "/"), false) {
			return nil
		}

		docs = append(docs, scanner.Document{
			Path:   filepath.Join(f.root, filepath.FromSlash(rel)),
			Scheme: Scheme,
		})
		if maxResults > 0 && len(docs) >= maxResults {
			return errLimit
		}
		return nil
	}, doublestar.WithFilesOnly())

	if err != nil && !errors.Is(err, errLimit) {
		return nil, fmt.Errorf("failed to walk %s: %w", f.root, err)
	}

	f.logger.Debug("found files", "pattern", pattern, "count", len(docs))
	return docs, nil
}
