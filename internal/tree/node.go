// Package tree assembles scanned documents into the hierarchy the browser
// displays. Build produces sorted root nodes, Index addresses them by key
// without parent pointers, and Render draws them as an ASCII tree.
package tree

import "github.com/holonoms/docwiki/internal/scanner"

// Kind tags a Node as a file or a folder.
type Kind int

// Node kinds.
const (
	File Kind = iota
	Folder
)

func (k Kind) String() string {
	if k == Folder {
		return "folder"
	}
	return "file"
}

// Node is a file or folder in the built tree.
//
// For folders Path is the "/"-joined chain of relative segments; for files
// it is the document's original path. Only folders have Children.
type Node struct {
	Kind  Kind
	Name  string
	Title string
	Path  string

	// File fields.
	Document    scanner.Document
	IsIndex     bool
	IsReadme    bool
	Description string

	// Folder fields.
	Children []*Node
}

// IsFolder reports whether n is a folder.
func (n *Node) IsFolder() bool {
	return n.Kind == Folder
}

// Key identifies n within its tree. Files and folders live in separate
// key spaces so a folder path never collides with a relative file path.
func (n *Node) Key() string {
	return n.Kind.String() + ":" + n.Path
}
