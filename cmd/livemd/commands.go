package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/export"
	"github.com/rjkroege/livemark/markdown"
)

const (
	codeCommandFailed = "COMMAND_FAILED"
	codeDrift         = "ROUNDTRIP_DRIFT"
)

func wrapCommandError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(codeCommandFailed)
}

// RoundtripCmd compares Serialize(Parse(normalize(md))) with normalize(md).
type RoundtripCmd struct {
	Path string `arg:"" help:"Markdown file" type:"existingfile"`
}

func (c *RoundtripCmd) Run(a *app) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return wrapCommandError(err)
	}
	e := a.editorFor(c.Path)
	want := markdown.Normalize(string(data))
	e.Load(want)
	got := e.Markdown()
	if got == want {
		fmt.Fprintf(a.out, "%s: ok\n", c.Path)
		return nil
	}
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g {
			fmt.Fprintf(a.out, "%s:%d: want %q, got %q\n", c.Path, i+1, w, g)
			break
		}
	}
	return goerrors.Wrap(errors.New("round trip changed the document"), goerrors.CategoryValidation, c.Path).
		WithTextCode(codeDrift)
}

// FlattenCmd prints the document as the source view holds it, one block
// per line, tagged with its source-view attributes.
type FlattenCmd struct {
	Path string `arg:"" help:"Markdown file" type:"existingfile"`
}

func (c *FlattenCmd) Run(a *app) error {
	e, err := a.load(c.Path)
	if err != nil {
		return err
	}
	e.SetSourceView(true)
	for _, b := range e.Document().Blocks {
		tag := b.Type.String()
		switch {
		case b.SourceGroup != "":
			tag = fmt.Sprintf("code %d/%d", b.LineIndex+1, b.LineTotal)
		case b.Image != nil:
			tag = "image"
		case b.HRSource:
			tag = "rule"
		}
		text := strings.TrimSuffix(markdown.Serialize(document.New(b)), "\n")
		fmt.Fprintf(a.out, "%-12s %s\n", tag, strings.ReplaceAll(text, "\n", `\n`))
	}
	return nil
}

// DecorateCmd lists every marker run and whether the cursor shows it.
type DecorateCmd struct {
	Path   string `arg:"" help:"Markdown file" type:"existingfile"`
	Cursor int    `help:"Cursor position" default:"0"`
	Source bool   `help:"Use source view"`
}

func (c *DecorateCmd) Run(a *app) error {
	e, err := a.load(c.Path)
	if err != nil {
		return err
	}
	if c.Source {
		e.SetSourceView(true)
	}
	e.Select(c.Cursor, c.Cursor)
	for _, d := range e.Decorations() {
		state := "hidden"
		if d.Visible {
			state = "visible"
		}
		fmt.Fprintf(a.out, "%d-%d %s %s\n", d.From, d.To, d.Syntax, state)
	}
	return nil
}

// RenderCmd prints the rendered projection as plain text.
type RenderCmd struct {
	Path   string `arg:"" help:"Markdown file" type:"existingfile"`
	Cursor int    `help:"Cursor position" default:"0"`
	Links  bool   `help:"List link targets after the text"`
}

func (c *RenderCmd) Run(a *app) error {
	e, err := a.load(c.Path)
	if err != nil {
		return err
	}
	e.Select(c.Cursor, c.Cursor)
	content, _, links := e.Render()
	fmt.Fprintln(a.out, content.String())
	if c.Links {
		for _, l := range links.Entries() {
			fmt.Fprintf(a.out, "%d-%d %s\n", l.Start, l.End, l.URL)
		}
	}
	return nil
}

// HTMLCmd exports a file through goldmark.
type HTMLCmd struct {
	Path   string `arg:"" help:"Markdown file" type:"existingfile"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

func (c *HTMLCmd) Run(a *app) error {
	e, err := a.load(c.Path)
	if err != nil {
		return err
	}
	out, err := export.HTML(e.Document(), export.Options{
		Extensions: a.cfg.Export.Extensions,
		HardWraps:  a.cfg.Export.HardWraps,
		Unsafe:     a.cfg.Export.Unsafe,
	})
	if err != nil {
		return wrapCommandError(err)
	}
	if c.Output == "" {
		_, err = a.out.Write(out)
		return wrapCommandError(err)
	}
	return wrapCommandError(os.WriteFile(c.Output, out, 0o644))
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "livemd version %s\n", version)
	return nil
}
