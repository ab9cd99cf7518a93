// Package provider serves the document tree to a browsing front end. It
// scans and builds lazily, swaps in each new tree only once it is complete,
// and answers node lookups against the last tree it built.
package provider

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/pathutil"
	"github.com/holonoms/docwiki/internal/preview"
	"github.com/holonoms/docwiki/internal/scanner"
	"github.com/holonoms/docwiki/internal/title"
	"github.com/holonoms/docwiki/internal/tree"
)

// Provider owns the current tree. It is safe for concurrent use; when two
// rebuilds overlap, the one that finishes last wins.
type Provider struct {
	scanner  *scanner.Scanner
	source   config.Source
	override func(*config.ScanConfiguration)

	frontMatter bool
	readFile    func(string) ([]byte, error)
	logger      *log.Logger

	scanOpts []scanner.Option
	skip     map[string]bool

	mu         sync.Mutex
	index      *tree.Index
	docs       []scanner.Document
	stale      bool
	generation uint64
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger, also used by the underlying scanner.
func WithLogger(logger *log.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
			p.scanOpts = append(p.scanOpts, scanner.WithLogger(logger))
		}
	}
}

// WithIgnoreSource passes an ignore source to the scanner.
func WithIgnoreSource(src scanner.IgnoreSource) Option {
	return func(p *Provider) {
		p.scanOpts = append(p.scanOpts, scanner.WithIgnoreSource(src))
	}
}

// WithRoot sets the workspace root used for depth filtering.
func WithRoot(root string) Option {
	return func(p *Provider) {
		p.scanOpts = append(p.scanOpts, scanner.WithRoot(root))
	}
}

// WithFrontMatter reads YAML front matter from markdown files and uses its
// title and description.
func WithFrontMatter(enabled bool) Option {
	return func(p *Provider) {
		p.frontMatter = enabled
	}
}

// WithReadFile replaces the function used to read front matter.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(p *Provider) {
		if fn != nil {
			p.readFile = fn
		}
	}
}

// WithScanOverride adjusts the resolved configuration before every scan.
// Command-line flags use it to win over settings files.
func WithScanOverride(fn func(*config.ScanConfiguration)) Option {
	return func(p *Provider) {
		p.override = fn
	}
}

// WithSkipPaths leaves the given files out of every tree. Export uses it
// to keep its own output file out of the bundle.
func WithSkipPaths(paths ...string) Option {
	return func(p *Provider) {
		for _, path := range paths {
			if path == "" {
				continue
			}
			if p.skip == nil {
				p.skip = make(map[string]bool)
			}
			p.skip[pathutil.NormalizePath(path)] = true
		}
	}
}

// New returns a Provider reading settings from source and files from
// finder. Nothing is scanned until the tree is first requested.
func New(finder scanner.FileFinder, source config.Source, opts ...Option) *Provider {
	p := &Provider{
		source:   source,
		readFile: os.ReadFile,
		logger:   log.New(io.Discard),
		stale:    true,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.scanner = scanner.New(finder, p.scanOpts...)
	return p
}

// Configuration returns the scan settings the next rebuild will use.
func (p *Provider) Configuration() config.ScanConfiguration {
	cfg := config.Resolve(p.source)
	if p.override != nil {
		p.override(&cfg)
	}
	return cfg
}

// Roots returns the top-level nodes, rebuilding first if the tree is stale.
func (p *Provider) Roots(ctx context.Context) ([]*tree.Node, error) {
	x, err := p.Index(ctx)
	if err != nil {
		return nil, err
	}
	return x.Roots(), nil
}

// Index returns the current tree index, rebuilding first if stale.
func (p *Provider) Index(ctx context.Context) (*tree.Index, error) {
	p.mu.Lock()
	if !p.stale && p.index != nil {
		x := p.index
		p.mu.Unlock()
		return x, nil
	}
	generation := p.generation
	p.mu.Unlock()

	cfg := p.Configuration()
	docs, err := p.scanner.ScanWith(ctx, cfg)
	if err != nil {
		return nil, err
	}
	docs = p.dropSkipped(docs)

	roots := tree.Build(docs, cfg.DirectorySort, cfg.AcronymCasing)
	if p.frontMatter {
		p.applyFrontMatter(roots)
		tree.Sort(roots, cfg.DirectorySort)
	}
	x := tree.NewIndex(roots)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = x
	p.docs = docs
	// A refresh that arrived mid-build leaves the tree stale.
	p.stale = p.generation != generation
	p.logger.Debug("tree rebuilt", "documents", len(docs), "nodes", x.Len())
	return x, nil
}

// Documents returns the documents behind the current tree in scan order.
func (p *Provider) Documents() []scanner.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.docs
}

// Children returns a folder's children; files have none.
func (p *Provider) Children(n *tree.Node) []*tree.Node {
	if n == nil || !n.IsFolder() {
		return nil
	}
	return n.Children
}

// Parent returns the folder containing n in the current tree.
func (p *Provider) Parent(n *tree.Node) *tree.Node {
	x := p.current()
	if x == nil {
		return nil
	}
	return x.Parent(n)
}

// FindNodeByPath returns the file node for path in the last built tree:
// exact match first, then with separators normalized. Folders are not
// addressable.
func (p *Provider) FindNodeByPath(path string) *tree.Node {
	x := p.current()
	if x == nil {
		return nil
	}
	return x.FindFile(path)
}

// Refresh marks the tree stale. The next Roots or Index call rescans;
// lookups keep answering from the previous tree until then.
func (p *Provider) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stale = true
	p.generation++
}

// Command returns the viewer a single click on n should open. Folders have
// no command.
func (p *Provider) Command(n *tree.Node) string {
	if n == nil || n.IsFolder() {
		return ""
	}
	view := config.ResolveView(p.source)
	if view.DefaultOpenMode == config.OpenPreview && strings.ToLower(n.Name) == "readme" {
		for _, ext := range []string{"md", "markdown"} {
			if viewer := view.OpenWith[ext]; viewer != "" {
				return viewer
			}
		}
		return config.ViewerMarkdown
	}
	return preview.OpenCommand(n.Path, view.DefaultOpenMode, view.OpenWith)
}

func (p *Provider) dropSkipped(docs []scanner.Document) []scanner.Document {
	if len(p.skip) == 0 {
		return docs
	}
	kept := docs[:0:0]
	for _, doc := range docs {
		if p.skip[pathutil.NormalizePath(doc.Path)] {
			p.logger.Debug("skipped", "path", doc.Path)
			continue
		}
		kept = append(kept, doc)
	}
	return kept
}

func (p *Provider) current() *tree.Index {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

func (p *Provider) applyFrontMatter(roots []*tree.Node) {
	tree.Walk(roots, func(n *tree.Node, _ int) bool {
		if n.IsFolder() {
			return true
		}
		if ext := title.FileExtension(n.Name); ext != "md" && ext != "markdown" {
			return true
		}

		content, err := p.readFile(n.Path)
		if err != nil {
			p.logger.Debug("skipping front matter", "path", n.Path, "error", err)
			return true
		}
		fm := title.ParseFrontMatter(content)
		if fm.Title != "" {
			n.Title = fm.Title
		}
		n.Description = fm.Description
		return true
	})
}
