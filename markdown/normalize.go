package markdown

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rjkroege/livemark/catalog"
)

// Normalize returns the canonical form of md that Serialize(Parse(md))
// reproduces: LF line endings, NFC text, no trailing whitespace or runs
// of blank lines outside code fences, and exactly one final newline.
func Normalize(md string) string {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	md = strings.ReplaceAll(md, "\r", "\n")
	md = norm.NFC.String(md)

	var out []string
	fence := ""
	blank := false
	for _, line := range strings.Split(md, "\n") {
		if fence != "" {
			out = append(out, line)
			if catalog.IsFenceClose(line, fence) {
				fence = ""
			}
			continue
		}
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		if f, _, ok := catalog.ParseFenceOpen(line); ok {
			fence = f
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
