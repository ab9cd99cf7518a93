package scanner

import (
	"strings"

	"github.com/holonoms/docwiki/internal/pathutil"
)

// BaseResolver picks the directory that scanned paths are measured from.
// ok is false when no base applies and paths are used whole.
type BaseResolver func(paths []string) (base string, ok bool)

// RootResolver always answers root. An empty root resolves nothing.
func RootResolver(root string) BaseResolver {
	return func([]string) (string, bool) {
		if root == "" {
			return "", false
		}
		return root, true
	}
}

// CommonAncestor resolves the deepest directory containing every path.
func CommonAncestor(paths []string) (string, bool) {
	common := pathutil.CommonDir(paths)
	if len(common) == 0 {
		return "", false
	}
	return strings.Join(common, "/"), true
}
