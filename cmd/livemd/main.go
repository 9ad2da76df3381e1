// Command livemd exercises the live markdown core from the command line:
// round-trip checks, source-view flattening, marker decorations, the
// rendered projection and HTML export.
package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/rjkroege/livemark/config"
	"github.com/rjkroege/livemark/editor"
	"github.com/rjkroege/livemark/internal/logging"
	"github.com/rjkroege/livemark/internal/logging/gologger"
)

const version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Config   string `name:"config" short:"c" help:"YAML configuration file" type:"path"`
	LogLevel string `name:"log-level" help:"Override the configured log level"`

	Roundtrip RoundtripCmd `cmd:"" help:"Check that a file survives parse and serialize unchanged"`
	Flatten   FlattenCmd   `cmd:"" help:"Print the source-view lines of a file"`
	Decorate  DecorateCmd  `cmd:"" help:"List marker decorations for a cursor position"`
	Render    RenderCmd    `cmd:"" help:"Print the rendered projection for a cursor position"`
	HTML      HTMLCmd      `cmd:"html" help:"Export a file as HTML"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// app carries what every command needs.
type app struct {
	cfg      config.Config
	provider logging.LoggerProvider
	out      io.Writer
}

func newApp(cfg config.Config, out io.Writer) (*app, error) {
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Focus:     cfg.Logging.Focus,
	})
	if err != nil {
		return nil, wrapCommandError(err)
	}
	return &app{cfg: cfg, provider: provider, out: out}, nil
}

// editorFor returns an editor configured for the file at path, with
// relative images resolving against the file's directory unless the
// configuration names a base path.
func (a *app) editorFor(path string) *editor.Editor {
	ec := a.cfg.Editor
	base := ec.BasePath
	if base == "" {
		base = filepath.Dir(path)
	}
	return editor.New(editor.Options{
		SourceView:        ec.SourceView,
		MaxPasses:         ec.MaxPasses,
		IncrementalDetect: ec.IncrementalDetect,
		DisabledSyntax:    ec.DisabledMarks(),
		HistoryLimit:      ec.HistoryLimit,
		BasePath:          base,
		Logger:            logging.ModuleLogger(a.provider, "livemd.editor"),
	})
}

// load reads path into a fresh editor.
func (a *app) load(path string) (*editor.Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapCommandError(err)
	}
	e := a.editorFor(path)
	e.Load(string(data))
	return e, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("livemd"),
		kong.Description("Live markdown editing core"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	a, err := newApp(cfg, os.Stdout)
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(a))
}
