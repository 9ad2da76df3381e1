package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/rjkroege/livemark/document"
	"github.com/rjkroege/livemark/export"
)

// Validate checks every section and wraps the first failure.
func (c Config) Validate() error {
	if err := c.validate(); err != nil {
		if goerrors.IsWrapped(err) {
			return err
		}
		return goerrors.Wrap(err, goerrors.CategoryValidation, "config validation failed").
			WithTextCode(codeInvalid)
	}
	return nil
}

func (c Config) validate() error {
	if err := validation.ValidateStruct(&c.Editor,
		validation.Field(&c.Editor.MaxPasses, validation.Min(1), validation.Max(16)),
		validation.Field(&c.Editor.HistoryLimit, validation.Min(0)),
		validation.Field(&c.Editor.DisabledSyntax, validation.Each(validation.By(knownSyntax))),
	); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if err := validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Level, validation.In("trace", "debug", "info", "warn", "error", "fatal")),
		validation.Field(&c.Logging.Format, validation.In("json", "console", "pretty")),
	); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := validation.ValidateStruct(&c.Export,
		validation.Field(&c.Export.Extensions, validation.Each(validation.In(extensionNames()...))),
	); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func knownSyntax(value any) error {
	name, _ := value.(string)
	switch t, ok := document.ParseMarkType(name); {
	case !ok:
		return fmt.Errorf("unknown syntax %q", name)
	case t < document.MarkStrong || t > document.MarkFootnote:
		return fmt.Errorf("%q cannot be disabled", name)
	}
	return nil
}

func extensionNames() []any {
	names := export.ExtensionNames()
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
