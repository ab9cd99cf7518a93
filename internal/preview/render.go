package preview

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/holonoms/docwiki/internal/config"
	"github.com/holonoms/docwiki/internal/title"
)

// ErrEditorViewer is returned by Render for the editor viewer, which has
// no rendered form.
var ErrEditorViewer = errors.New("editor viewer cannot be rendered")

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<article>
{{.Body}}
</article>
</body>
</html>
`))

// RenderOptions controls Render.
type RenderOptions struct {
	// Title is used for the HTML page title.
	Title string
	// Width wraps terminal markdown; 0 keeps glamour's default.
	Width int
	// Style names a glamour style; empty picks one for the terminal.
	Style string
}

// Render writes content as the given viewer shows it: markdown is styled
// for the terminal, html becomes a standalone page and anything else is
// copied verbatim. Front matter is stripped for markdown and html.
func Render(w io.Writer, content []byte, viewer string, opts RenderOptions) error {
	switch viewer {
	case config.ViewerMarkdown:
		return renderTerminal(w, title.StripFrontMatter(content), opts)
	case config.ViewerHTML:
		return renderHTML(w, title.StripFrontMatter(content), opts)
	case config.ViewerEditor:
		return ErrEditorViewer
	default:
		_, err := w.Write(content)
		return err
	}
}

func renderTerminal(w io.Writer, content []byte, opts RenderOptions) error {
	var rendererOpts []glamour.TermRendererOption
	if opts.Style != "" {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(opts.Style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithAutoStyle())
	}
	if opts.Width > 0 {
		rendererOpts = append(rendererOpts, glamour.WithWordWrap(opts.Width))
	}

	renderer, err := glamour.NewTermRenderer(rendererOpts...)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(string(content))
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func renderHTML(w io.Writer, content []byte, opts RenderOptions) error {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert(content, &buf); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	return page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: opts.Title,
		Body:  template.HTML(buf.String()),
	})
}
