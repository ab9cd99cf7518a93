// Package scanner discovers the documents a workspace exposes. It asks a
// FileFinder for one listing per supported extension, merges extra exclude
// globs from an optional IgnoreSource, and re-filters every listing for
// excluded, hidden and too-deep paths before handing the result on.
package scanner

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/pathutil"
)

// ReadmeQuery matches extension-less README files at any depth. The finder
// may over-match, so results are filtered again by name.
const ReadmeQuery = "**/[Rr][Ee][Aa][Dd][Mm][Ee]"

var readmeName = regexp.MustCompile(`(?i)^readme$`)

// Document identifies one scanned file. Identity is the path string.
type Document struct {
	Path   string
	Scheme string
}

// FileFinder lists files matching a glob query. exclude is a brace set of
// globs ("{a,b}") or empty; it is advisory and results are filtered again.
// maxResults <= 0 means unlimited.
type FileFinder interface {
	FindFiles(ctx context.Context, pattern, exclude string, maxResults int) ([]Document, error)
}

// FinderFunc adapts a function to FileFinder.
type FinderFunc func(ctx context.Context, pattern, exclude string, maxResults int) ([]Document, error)

// FindFiles calls f.
func (f FinderFunc) FindFiles(ctx context.Context, pattern, exclude string, maxResults int) ([]Document, error) {
	return f(ctx, pattern, exclude, maxResults)
}

// IgnoreSource supplies extra exclude globs, typically read from a project
// ignore file.
type IgnoreSource interface {
	Patterns(ctx context.Context) ([]string, error)
}

// Scanner runs scan cycles. It keeps no state between cycles and may be
// shared.
type Scanner struct {
	finder     FileFinder
	ignore     IgnoreSource
	root       string
	resolve    BaseResolver
	maxResults int
	logger     *log.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIgnoreSource merges the source's patterns into the exclude globs of
// every scan that does not show ignored files.
func WithIgnoreSource(src IgnoreSource) Option {
	return func(s *Scanner) {
		s.ignore = src
	}
}

// WithRoot sets the workspace root. It becomes the depth-filtering base and
// exclude globs are also matched against root-relative paths.
func WithRoot(root string) Option {
	return func(s *Scanner) {
		s.root = root
		s.resolve = RootResolver(root)
	}
}

// WithBaseResolver replaces the strategy used to find the depth base.
func WithBaseResolver(resolve BaseResolver) Option {
	return func(s *Scanner) {
		if resolve != nil {
			s.resolve = resolve
		}
	}
}

// WithMaxResults caps each finder query.
func WithMaxResults(n int) Option {
	return func(s *Scanner) {
		s.maxResults = n
	}
}

// New returns a Scanner over finder. Without WithRoot, depth is measured
// from the common ancestor of all candidates.
func New(finder FileFinder, opts ...Option) *Scanner {
	s := &Scanner{
		finder:  finder,
		resolve: CommonAncestor,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan resolves src into a ScanConfiguration and runs one scan cycle.
func (s *Scanner) Scan(ctx context.Context, src config.Source) ([]Document, error) {
	return s.ScanWith(ctx, config.Resolve(src))
}

// ScanWith runs one scan cycle with an already-resolved configuration.
// Finder and ignore-source failures are logged and contribute nothing; the
// only error returned is ctx's.
func (s *Scanner) ScanWith(ctx context.Context, cfg config.ScanConfiguration) ([]Document, error) {
	excludeGlobs := cfg.ExcludeGlobs
	if !cfg.ShowIgnoredFiles {
		excludeGlobs = append(excludeGlobs[:len(excludeGlobs):len(excludeGlobs)], s.ignorePatterns(ctx)...)
	}

	var exclude string
	var excluded pathutil.GlobSet
	if !cfg.ShowIgnoredFiles && len(excludeGlobs) > 0 {
		exclude = "{" + strings.Join(excludeGlobs, ",") + "}"
		excluded = pathutil.CompileGlobs(excludeGlobs)
	}

	var results []Document
	for _, q := range queries(cfg.SupportedExtensions) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs := s.find(ctx, q.pattern, exclude)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kept := docs[:0:0]
		for _, doc := range docs {
			switch {
			case q.readme && !readmeName.MatchString(pathutil.FileName(doc.Path)):
				continue
			case excluded != nil && s.isExcluded(excluded, doc.Path):
				s.logger.Debug("excluded", "path", doc.Path)
				continue
			case !cfg.ShowHiddenFiles && pathutil.IsHiddenSegment(s.relative(doc.Path)):
				s.logger.Debug("hidden", "path", doc.Path)
				continue
			}
			kept = append(kept, doc)
		}
		results = append(results, kept...)
	}

	if cfg.MaxSearchDepth > 0 {
		results = s.limitDepth(results, cfg.MaxSearchDepth)
	}

	s.logger.Debug("scan complete", "documents", len(results))
	return results, nil
}

type query struct {
	pattern string
	readme  bool
}

func queries(extensions []string) []query {
	var out []query
	markdown := false
	for _, ext := range extensions {
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		if lower := strings.ToLower(ext); lower == "md" || lower == "markdown" {
			markdown = true
		}
		out = append(out, query{pattern: "**/*." + ext})
	}
	if markdown {
		out = append(out, query{pattern: ReadmeQuery, readme: true})
	}
	return out
}

func (s *Scanner) find(ctx context.Context, pattern, exclude string) (docs []Document) {
	if s.finder == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("file finder panicked", "pattern", pattern, "panic", fmt.Sprint(r))
			docs = nil
		}
	}()

	docs, err := s.finder.FindFiles(ctx, pattern, exclude, s.maxResults)
	if err != nil {
		s.logger.Warn("file finder failed", "pattern", pattern, "error", err)
		return nil
	}
	return docs
}

func (s *Scanner) ignorePatterns(ctx context.Context) (patterns []string) {
	if s.ignore == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("ignore source panicked", "panic", fmt.Sprint(r))
			patterns = nil
		}
	}()

	patterns, err := s.ignore.Patterns(ctx)
	if err != nil {
		s.logger.Warn("could not read ignore patterns", "error", err)
		return nil
	}
	return patterns
}

func (s *Scanner) isExcluded(globs pathutil.GlobSet, path string) bool {
	return globs.Match(s.relative(path))
}

// relative returns path below the workspace root, so directories above the
// root never count as excluded or hidden. Without a root the path is used
// whole.
func (s *Scanner) relative(path string) string {
	if s.root == "" {
		return path
	}
	return strings.Join(pathutil.TrimBase(path, pathutil.Segments(s.root)), "/")
}

func (s *Scanner) limitDepth(docs []Document, maxDepth int) []Document {
	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = doc.Path
	}

	var base []string
	if b, ok := s.resolve(paths); ok {
		base = pathutil.Segments(b)
	}

	kept := docs[:0:0]
	for _, doc := range docs {
		if depth := len(pathutil.TrimBase(doc.Path, base)); depth > maxDepth {
			s.logger.Debug("too deep", "path", doc.Path, "depth", depth)
			continue
		}
		kept = append(kept, doc)
	}
	return kept
}
