// Package bundle exports a scanned documentation set as a single text file:
// the document tree first, then every document framed by a header naming
// it. The result is meant for reading offline or pasting into other tools.
package bundle

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/holonoms/docwiki/internal/scanner"
	"github.com/holonoms/docwiki/internal/tree"
)

const separator = "================================================================================"

// Options controls the export.
type Options struct {
	// Root names the tree's first line.
	Root string
	// Titles draws the tree with display titles.
	Titles bool
	// Logger receives warnings about skipped documents.
	Logger *log.Logger
	// ReadFile reads document content; os.ReadFile when nil.
	ReadFile func(string) ([]byte, error)
}

// Bundle writes documents and their tree into one output.
type Bundle struct {
	docs  []scanner.Document
	index *tree.Index
	opts  Options
}

// New returns a Bundle over docs, in scan order, and the tree built from
// them.
func New(docs []scanner.Document, roots []*tree.Node, opts Options) *Bundle {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.ReadFile == nil {
		opts.ReadFile = os.ReadFile
	}
	return &Bundle{
		docs:  docs,
		index: tree.NewIndex(roots),
		opts:  opts,
	}
}

// WriteFile writes the bundle to path and returns the resulting file size.
func (b *Bundle) WriteFile(path string) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := b.Write(w); err != nil {
		return 0, err
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush writer: %w", err)
	}

	info, err := out.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to get file stats: %w", err)
	}
	return info.Size(), nil
}

// Write writes the bundle to w. Documents that cannot be read are logged
// and left out; write errors abort.
func (b *Bundle) Write(w io.Writer) error {
	if err := b.writeStructure(w); err != nil {
		return fmt.Errorf("failed to write structure: %w", err)
	}
	if err := b.writeContents(w); err != nil {
		return fmt.Errorf("failed to write contents: %w", err)
	}
	return nil
}

func (b *Bundle) writeStructure(w io.Writer) error {
	if _, err := io.WriteString(w, "DOCUMENT TREE:\n==============\n\n"); err != nil {
		return err
	}

	err := tree.Render(w, b.index.Roots(), tree.RenderOptions{Root: b.opts.Root, Titles: b.opts.Titles})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, "\n\nDOCUMENTS:\n==========\n\n")
	return err
}

func (b *Bundle) writeContents(w io.Writer) error {
	for _, doc := range b.docs {
		content, err := b.opts.ReadFile(doc.Path)
		if err != nil {
			b.opts.Logger.Warn("skipping unreadable document", "path", doc.Path, "error", err)
			continue
		}

		if _, err := fmt.Fprintf(w, "%s\nFILE: %s\n%s\n", separator, b.name(doc), separator); err != nil {
			return err
		}
		if _, err := w.Write(content); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// name returns the document's path relative to the tree's base.
func (b *Bundle) name(doc scanner.Document) string {
	n := b.index.FindFile(doc.Path)
	if n == nil {
		return doc.Path
	}
	return tree.RelativePath(b.index.Ancestors(n), n)
}
