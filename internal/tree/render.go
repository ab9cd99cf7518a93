package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// RenderOptions controls Render output.
type RenderOptions struct {
	// Root is printed after the leading "/" on the first line.
	Root string
	// Titles prints display titles instead of raw names.
	Titles bool
	// Paths appends each file's path.
	Paths bool
	// Color enables ANSI colors.
	Color bool
}

// Render draws roots as an ASCII tree using ├──, └── and │ connectors.
// Folders get a trailing "/". Nodes are drawn in their sorted order.
func Render(w io.Writer, roots []*Node, opts RenderOptions) error {
	r := &renderer{
		w:      w,
		opts:   opts,
		folder: color.New(color.FgBlue, color.Bold),
		readme: color.New(color.FgGreen),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{r.folder, r.readme, r.dim} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	if _, err := fmt.Fprint(w, "/"+opts.Root); err != nil {
		return err
	}
	return r.render(roots, "")
}

// String renders roots into a string.
func String(roots []*Node, opts RenderOptions) string {
	var b strings.Builder
	_ = Render(&b, roots, opts)
	return b.String()
}

type renderer struct {
	w      io.Writer
	opts   RenderOptions
	folder *color.Color
	readme *color.Color
	dim    *color.Color
}

func (r *renderer) render(nodes []*Node, prefix string) error {
	for i, n := range nodes {
		isLast := i == len(nodes)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		if _, err := fmt.Fprint(r.w, "\n"+prefix+connector+r.label(n)); err != nil {
			return err
		}

		if n.IsFolder() {
			childPrefix := prefix + "│   "
			if isLast {
				childPrefix = prefix + "    "
			}
			if err := r.render(n.Children, childPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) label(n *Node) string {
	name := n.Name
	if r.opts.Titles {
		name = n.Title
	}

	switch {
	case n.IsFolder():
		return r.folder.Sprint(name + "/")
	case r.opts.Paths:
		return r.styleFile(n, name) + " " + r.dim.Sprint("("+n.Path+")")
	default:
		return r.styleFile(n, name)
	}
}

func (r *renderer) styleFile(n *Node, name string) string {
	if n.IsReadme {
		return r.readme.Sprint(name)
	}
	return name
}
