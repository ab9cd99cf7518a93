// Package preview decides how documents open and renders them for the
// terminal, the browser or an external editor.
package preview

import (
	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/pathutil"
	"github.com/holonoms/docwiki/internal/title"
)

// OpenCommand returns the viewer for path. Editor mode always edits; in
// preview mode the file extension is looked up in openWith and unknown
// extensions fall back to the editor.
func OpenCommand(path string, mode config.OpenMode, openWith map[string]string) string {
	if mode == config.OpenEditor {
		return config.ViewerEditor
	}
	ext := title.FileExtension(pathutil.FileName(path))
	if viewer, ok := openWith[ext]; ok && ext != "" {
		return viewer
	}
	return config.ViewerEditor
}
