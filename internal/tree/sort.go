package tree

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/holonoms/docwiki/internal/config"
)

// SortSiblings orders nodes in place: READMEs first, then by policy, then
// by locale-aware title. Name and path break remaining ties so the order is
// total.
func SortSiblings(nodes []*Node, policy config.DirectorySort) {
	// Collators are not safe for concurrent use; one per call keeps the
	// package re-entrant.
	c := collate.New(language.Und)
	slices.SortStableFunc(nodes, compareFunc(c, policy))
}

// Sort orders nodes and every folder below them, top-down.
func Sort(nodes []*Node, policy config.DirectorySort) {
	sortRecursive(nodes, policy, collate.New(language.Und))
}

func sortRecursive(nodes []*Node, policy config.DirectorySort, c *collate.Collator) {
	slices.SortStableFunc(nodes, compareFunc(c, policy))
	for _, n := range nodes {
		if n.IsFolder() {
			sortRecursive(n.Children, policy, c)
		}
	}
}

func compareFunc(c *collate.Collator, policy config.DirectorySort) func(a, b *Node) int {
	return func(a, b *Node) int {
		if a.IsReadme != b.IsReadme {
			if a.IsReadme {
				return -1
			}
			return 1
		}

		if a.Kind != b.Kind {
			switch policy {
			case config.FilesFirst:
				if a.Kind == File {
					return -1
				}
				return 1
			case config.FoldersFirst:
				if a.Kind == Folder {
					return -1
				}
				return 1
			}
		}

		if r := c.CompareString(a.Title, b.Title); r != 0 {
			return r
		}
		if r := strings.Compare(a.Name, b.Name); r != 0 {
			return r
		}
		return strings.Compare(a.Path, b.Path)
	}
}
