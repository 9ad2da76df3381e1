package rich

import "image/color"

// Style defines visual attributes for a span of text.
type Style struct {
	// Colors (nil means use default)
	Fg color.Color
	Bg color.Color

	// Font variations
	Bold      bool
	Italic    bool
	Code      bool // Monospace font for code spans
	Strike    bool
	Highlight bool
	Link      bool // Hyperlink (rendered in blue by default)
	Math      bool
	Footnote  bool
	Block     bool // Block-level element (full-width background for code and math blocks)

	// Syntax marks literal markdown punctuation shown because the cursor
	// is inside its construct.
	Syntax bool

	// Rule is a horizontal rule placeholder.
	Rule bool

	// Image spans hold a single placeholder rune.
	Image    bool
	ImageURL string
	ImageAlt string

	// Size multiplier (1.0 = normal body text)
	// Used for headings: H1=2.0, H2=1.5, H3=1.25, etc.
	Scale float64
}

// DefaultStyle returns the default body text style.
func DefaultStyle() Style {
	return Style{Scale: 1.0}
}

// LinkBlue is the standard blue color for hyperlinks.
var LinkBlue = color.RGBA{R: 0, G: 0, B: 238, A: 255}

// InlineCodeBg is the light gray background for inline code spans.
// Uses RGB values around 230 for a subtle but visible distinction.
var InlineCodeBg = color.RGBA{R: 230, G: 230, B: 230, A: 255}

// HighlightBg is the background of ==highlighted== text.
var HighlightBg = color.RGBA{R: 255, G: 240, B: 150, A: 255}

// SyntaxGray is the color of revealed markdown punctuation.
var SyntaxGray = color.RGBA{R: 150, G: 150, B: 150, A: 255}

// Common styles
var (
	StyleH1     = Style{Bold: true, Scale: 2.0}
	StyleH2     = Style{Bold: true, Scale: 1.5}
	StyleH3     = Style{Bold: true, Scale: 1.25}
	StyleBold   = Style{Bold: true, Scale: 1.0}
	StyleItalic = Style{Italic: true, Scale: 1.0}
	StyleCode   = Style{Code: true, Scale: 1.0}               // Monospace font
	StyleLink   = Style{Link: true, Fg: LinkBlue, Scale: 1.0} // Blue hyperlink
)

// HeadingStyle returns the base style of a heading of the given level.
func HeadingStyle(level int) Style {
	switch level {
	case 1:
		return StyleH1
	case 2:
		return StyleH2
	case 3:
		return StyleH3
	}
	return StyleBold
}
