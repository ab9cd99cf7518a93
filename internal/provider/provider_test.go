package provider

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/pathutil"
	"github.com/holonoms/docwiki/internal/scanner"
	"github.com/holonoms/docwiki/internal/tree"
)

type listFinder struct {
	paths []string
	calls atomic.Int32
}

func (f *listFinder) FindFiles(_ context.Context, pattern, _ string, _ int) ([]scanner.Document, error) {
	f.calls.Add(1)
	if pattern == scanner.ReadmeQuery {
		var docs []scanner.Document
		for _, p := range f.paths {
			if strings.EqualFold(pathutil.FileName(p), "readme") {
				docs = append(docs, scanner.Document{Path: p})
			}
		}
		return docs, nil
	}

	suffix := strings.TrimPrefix(pattern, "**/*")
	var docs []scanner.Document
	for _, p := range f.paths {
		if strings.HasSuffix(p, suffix) {
			docs = append(docs, scanner.Document{Path: p, Scheme: "file"})
		}
	}
	return docs, nil
}

func workspace() *listFinder {
	return &listFinder{paths: []string{"/ws/README.md", "/ws/docs/guide.md", "/ws/docs/api/users.md", "/ws/docs/README", "/ws/notes.txt"}}
}

func TestRoots(t *testing.T) {
	p := New(workspace(), config.MapSource{})

	roots, err := p.Roots(context.Background())
	require.NoError(t, err)

	var names []string
	for _, n := range roots {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"README.md", "notes.txt", "docs"}, names)
	assert.Len(t, p.Documents(), 5)

	docs := roots[2]
	children := p.Children(docs)
	require.Len(t, children, 3)
	assert.Nil(t, p.Children(roots[0]))
	assert.Nil(t, p.Children(nil))
	assert.Same(t, docs, p.Parent(children[0]))
	assert.Nil(t, p.Parent(docs))
}

func TestRootsCached(t *testing.T) {
	finder := workspace()
	p := New(finder, config.MapSource{})

	_, err := p.Roots(context.Background())
	require.NoError(t, err)
	calls := finder.calls.Load()

	_, err = p.Roots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calls, finder.calls.Load(), "second call served from cache")

	p.Refresh()
	_, err = p.Roots(context.Background())
	require.NoError(t, err)
	assert.Greater(t, finder.calls.Load(), calls)
}

func TestRefreshSwapsTree(t *testing.T) {
	finder := workspace()
	p := New(finder, config.MapSource{})

	_, err := p.Roots(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p.FindNodeByPath("/ws/notes.txt"))

	finder.paths = []string{"/ws/only.md"}
	p.Refresh()

	// Lookups answer from the previous tree until the next rebuild.
	assert.NotNil(t, p.FindNodeByPath("/ws/notes.txt"))

	_, err = p.Roots(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p.FindNodeByPath("/ws/notes.txt"))
	assert.NotNil(t, p.FindNodeByPath("/ws/only.md"))
}

func TestFindNodeByPath(t *testing.T) {
	finder := &listFinder{paths: []string{`C:\ws\docs\guide.md`, `C:\ws\docs\api\users.md`}}
	p := New(finder, config.MapSource{})

	assert.Nil(t, p.FindNodeByPath(`C:\ws\docs\guide.md`), "nothing built yet")

	_, err := p.Roots(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, p.FindNodeByPath(`C:\ws\docs\guide.md`))
	n := p.FindNodeByPath("C:/ws/docs/api/users.md")
	require.NotNil(t, n)
	assert.Equal(t, tree.File, n.Kind)
	assert.Nil(t, p.FindNodeByPath("api"))
}

func TestScanOverride(t *testing.T) {
	p := New(workspace(), config.MapSource{config.KeyDirectorySort: "folders-first"},
		WithScanOverride(func(cfg *config.ScanConfiguration) {
			cfg.SupportedExtensions = []string{"txt"}
		}))

	assert.Equal(t, config.FoldersFirst, p.Configuration().DirectorySort)

	roots, err := p.Roots(context.Background())
	require.NoError(t, err)
	// A lone document is not trimmed, so it sits under its folder.
	require.Len(t, roots, 1)
	assert.Equal(t, "ws", roots[0].Name)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "notes.txt", roots[0].Children[0].Name)
}

func TestSkipPaths(t *testing.T) {
	finder := &listFinder{paths: []string{"/ws/a.md", "/ws/b.md", "/ws/docwiki.txt"}}
	p := New(finder, config.MapSource{}, WithSkipPaths(`\ws\docwiki.txt`, ""))

	roots, err := p.Roots(context.Background())
	require.NoError(t, err)

	var names []string
	for _, n := range roots {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"a.md", "b.md"}, names)
	assert.Len(t, p.Documents(), 2)
	assert.Nil(t, p.FindNodeByPath("/ws/docwiki.txt"))
}

func TestFrontMatter(t *testing.T) {
	files := map[string]string{
		"/ws/a.md":    "---\ntitle: Zebra Handbook\ndescription: Stripes\n---\n",
		"/ws/b.md":    "# plain",
		"/ws/c.txt":   "---\ntitle: Ignored\n---\n",
		"/ws/gone.md": "",
	}
	read := func(path string) ([]byte, error) {
		if path == "/ws/gone.md" {
			return nil, errors.New("vanished")
		}
		return []byte(files[path]), nil
	}

	p := New(&listFinder{paths: []string{"/ws/a.md", "/ws/b.md", "/ws/c.txt", "/ws/gone.md"}}, config.MapSource{},
		WithFrontMatter(true), WithReadFile(read))

	roots, err := p.Roots(context.Background())
	require.NoError(t, err)

	var titles []string
	for _, n := range roots {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"B", "C", "Gone", "Zebra Handbook"}, titles)
	assert.Equal(t, "Stripes", roots[3].Description)
}

func TestCommand(t *testing.T) {
	p := New(workspace(), config.MapSource{})
	_, err := p.Roots(context.Background())
	require.NoError(t, err)

	assert.Equal(t, config.ViewerMarkdown, p.Command(p.FindNodeByPath("/ws/docs/guide.md")))
	assert.Equal(t, config.ViewerPlain, p.Command(p.FindNodeByPath("/ws/notes.txt")))
	assert.Equal(t, config.ViewerMarkdown, p.Command(p.FindNodeByPath("/ws/docs/README")))
	assert.Empty(t, p.Command(nil))

	x, err := p.Index(context.Background())
	require.NoError(t, err)
	folder, ok := x.Lookup("folder:docs")
	require.True(t, ok)
	assert.Empty(t, p.Command(folder))

	t.Run("bare README follows markdown mapping", func(t *testing.T) {
		p := New(workspace(), config.MapSource{config.KeyOpenWith: map[string]any{"markdown": "html"}})
		_, err := p.Roots(context.Background())
		require.NoError(t, err)
		assert.Equal(t, config.ViewerHTML, p.Command(p.FindNodeByPath("/ws/docs/README")))
	})

	t.Run("editor mode", func(t *testing.T) {
		p := New(workspace(), config.MapSource{config.KeyDefaultOpenMode: "editor"})
		_, err := p.Roots(context.Background())
		require.NoError(t, err)
		assert.Equal(t, config.ViewerEditor, p.Command(p.FindNodeByPath("/ws/docs/README")))
		assert.Equal(t, config.ViewerEditor, p.Command(p.FindNodeByPath("/ws/docs/guide.md")))
	})
}

func TestCancelledScan(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(workspace(), config.MapSource{})
	_, err := p.Roots(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
