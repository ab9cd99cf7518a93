package tree

import (
	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/pathutil"
	"github.com/holonoms/docwiki/internal/scanner"
	"github.com/holonoms/docwiki/internal/title"
)

// Build turns docs into sorted root nodes. Paths are made relative to the
// deepest directory every document shares; filenames never shorten that
// base, and a single document is not trimmed at all, so a lone nested file
// keeps its folders. Documents with no segments
// left after trimming are skipped. Build is pure and safe for concurrent
// use.
func Build(docs []scanner.Document, policy config.DirectorySort, acronyms []string) []*Node {
	if len(docs) == 0 {
		return nil
	}

	paths := make([]string, len(docs))
	for i, doc := range docs {
		paths[i] = doc.Path
	}
	var base []string
	if len(paths) > 1 {
		base = pathutil.CommonDir(paths)
	}

	var roots []*Node
	folders := make(map[string]*Node)

	for _, doc := range docs {
		rel := pathutil.TrimBase(doc.Path, base)
		if len(rel) == 0 {
			continue
		}

		var parent *Node
		current := ""
		for _, name := range rel[:len(rel)-1] {
			if current == "" {
				current = name
			} else {
				current += "/" + name
			}

			folder, ok := folders[current]
			if !ok {
				folder = &Node{
					Kind:  Folder,
					Name:  name,
					Title: title.Normalize(name, acronyms),
					Path:  current,
				}
				folders[current] = folder
				if parent == nil {
					roots = append(roots, folder)
				} else {
					parent.Children = append(parent.Children, folder)
				}
			}
			parent = folder
		}

		name := rel[len(rel)-1]
		file := &Node{
			Kind:     File,
			Name:     name,
			Title:    title.Normalize(name, acronyms),
			Path:     doc.Path,
			Document: doc,
			IsIndex:  title.IsIndex(name),
			IsReadme: title.IsReadme(name),
		}
		if parent == nil {
			roots = append(roots, file)
		} else {
			parent.Children = append(parent.Children, file)
		}
	}

	Sort(roots, policy)
	return roots
}

// Walk visits every node depth-first in display order. Returning false from
// fn skips that node's children.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(n *Node, depth int) bool) {
	for _, n := range nodes {
		if fn(n, depth) && n.IsFolder() {
			walk(n.Children, depth+1, fn)
		}
	}
}

// RelativePath returns the "/"-joined path of a file relative to the tree's
// common base, given the chain of folders above it.
func RelativePath(ancestors []*Node, n *Node) string {
	if len(ancestors) == 0 {
		return n.Name
	}
	return ancestors[len(ancestors)-1].Path + "/" + n.Name
}
