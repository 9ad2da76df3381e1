// Package export renders a live document to HTML. The document is
// serialized back to markdown first, so the output reflects exactly the
// literal text the user sees in source view.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/markdown"
)

// Options selects goldmark extensions and renderer behaviour.
type Options struct {
	// Extensions names goldmark extensions; empty means gfm, linkify and
	// tasklist. Unknown names are ignored.
	Extensions []string
	HardWraps  bool
	// Unsafe passes raw HTML in the markdown through.
	Unsafe bool
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// ExtensionNames lists the extension names Options accepts.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensionRegistry))
	for n := range extensionRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HTML renders d. Front matter is not part of the output.
func HTML(d *document.Document, opts Options) ([]byte, error) {
	body := document.New()
	for _, b := range d.Blocks {
		if b.Type != document.FrontMatter {
			body.Blocks = append(body.Blocks, b)
		}
	}
	var buf bytes.Buffer
	if err := newEngine(opts).Convert([]byte(markdown.Serialize(body)), &buf); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}

func newEngine(opts Options) goldmark.Markdown {
	var rendererOptions []renderer.Option
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(extensions(opts.Extensions)...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

func extensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify, extension.TaskList}
	}
	var out []goldmark.Extender
	seen := map[string]bool{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ext)
	}
	return out
}
