package tree

import "github.com/holonoms/docwiki/internal/pathutil"

// Index addresses the nodes of one built tree. Parents are found through a
// child-key to parent-key map rather than pointers stored on the nodes, so
// the tree itself stays acyclic. An Index is read-only once built.
type Index struct {
	roots      []*Node
	nodes      map[string]*Node
	parents    map[string]string
	files      []*Node
	normalized map[string]*Node
}

// NewIndex indexes roots and everything below them.
func NewIndex(roots []*Node) *Index {
	x := &Index{
		roots:      roots,
		nodes:      make(map[string]*Node),
		parents:    make(map[string]string),
		normalized: make(map[string]*Node),
	}
	x.add(roots, "")
	return x
}

func (x *Index) add(nodes []*Node, parentKey string) {
	for _, n := range nodes {
		key := n.Key()
		x.nodes[key] = n
		if parentKey != "" {
			x.parents[key] = parentKey
		}
		if n.IsFolder() {
			x.add(n.Children, key)
			continue
		}
		x.files = append(x.files, n)
		norm := pathutil.NormalizePath(n.Path)
		if _, taken := x.normalized[norm]; !taken {
			x.normalized[norm] = n
		}
	}
}

// Roots returns the top-level nodes.
func (x *Index) Roots() []*Node {
	return x.roots
}

// Len returns the number of indexed nodes.
func (x *Index) Len() int {
	return len(x.nodes)
}

// Files returns every file node in display order.
func (x *Index) Files() []*Node {
	return x.files
}

// Lookup returns the node with the given key.
func (x *Index) Lookup(key string) (*Node, bool) {
	n, ok := x.nodes[key]
	return n, ok
}

// Parent returns the folder containing n, or nil for root nodes and nodes
// this index does not know.
func (x *Index) Parent(n *Node) *Node {
	if n == nil {
		return nil
	}
	key, ok := x.parents[n.Key()]
	if !ok {
		return nil
	}
	return x.nodes[key]
}

// Ancestors returns the folders above n, outermost first.
func (x *Index) Ancestors(n *Node) []*Node {
	var chain []*Node
	for p := x.Parent(n); p != nil; p = x.Parent(p) {
		chain = append([]*Node{p}, chain...)
	}
	return chain
}

// FindFile returns the file node for path, trying an exact match first and
// then a match with separators normalized on both sides. Folders are never
// returned.
func (x *Index) FindFile(path string) *Node {
	if path == "" {
		return nil
	}
	if n, ok := x.nodes[File.String()+":"+path]; ok {
		return n
	}
	return x.normalized[pathutil.NormalizePath(path)]
}
