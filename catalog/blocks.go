package catalog

import (
	"regexp"
	"strings"

	"github.com/rjkroege/livemark/document"
)

// Block-level patterns shared by the parser, the input rules and the
// source-view transformer.
var (
	// HeadingMarker matches the literal leading run of a heading.
	HeadingMarker = regexp.MustCompile(`^(#+)(?:[ \t]+|$)`)
	// HeadingInput matches paragraph text that should become a heading.
	HeadingInput = regexp.MustCompile(`^(#{1,6})[ \t]+`)
	// ThematicBreak matches a whole horizontal rule line.
	ThematicBreak = regexp.MustCompile(`^[ \t]*(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	// FenceOpen matches an opening code fence and its info string.
	FenceOpen = regexp.MustCompile("^(`{3,}|~{3,})[ \t]*([^`\n]*?)[ \t]*$")
	// Escape matches a backslash followed by ASCII punctuation.
	Escape = regexp.MustCompile("\\\\[!-/:-@\\[-`{-~]")
	// ImageSyntax matches completed image syntax anywhere in a line.
	ImageSyntax = regexp.MustCompile(`!\[([^\]\n\x{FFFC}]*)\]\(([^)\s\x{FFFC}]+)(?:[ \t]+"([^"\n\x{FFFC}]*)")?\)`)

	imageWhole = regexp.MustCompile(`^` + ImageSyntax.String() + `$`)
)

// HeadingCount returns the number of leading '#' characters of s.
func HeadingCount(s string) int {
	n := 0
	for n < len(s) && s[n] == '#' {
		n++
	}
	return n
}

// IsThematicBreak reports whether line is a horizontal rule.
func IsThematicBreak(line string) bool {
	return ThematicBreak.MatchString(line)
}

// ParseFenceOpen returns the fence and info string of an opening fence
// line.
func ParseFenceOpen(line string) (fence, info string, ok bool) {
	m := FenceOpen.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	// A backtick fence's info string may not hold backticks.
	if m[1][0] == '`' && strings.Contains(m[2], "`") {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsFenceClose reports whether line closes a block opened by fence.
func IsFenceClose(line, fence string) bool {
	t := strings.TrimRight(line, " \t")
	if len(t) < len(fence) {
		return false
	}
	for i := 0; i < len(t); i++ {
		if t[i] != fence[0] {
			return false
		}
	}
	return true
}

// ParseImage parses s as exactly one image.
func ParseImage(s string) (document.ImageAttrs, bool) {
	m := imageWhole.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return document.ImageAttrs{}, false
	}
	return document.ImageAttrs{Alt: m[1], Src: m[2], Title: m[3]}, true
}

// ImageAt builds the attributes of an ImageSyntax submatch location.
func ImageAt(text string, loc []int) document.ImageAttrs {
	a := document.ImageAttrs{
		Alt: text[loc[2]:loc[3]],
		Src: text[loc[4]:loc[5]],
	}
	if loc[6] >= 0 {
		a.Title = text[loc[6]:loc[7]]
	}
	return a
}
