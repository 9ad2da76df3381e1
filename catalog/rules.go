package catalog

import (
	"regexp"
	"unicode/utf8"

	"github.com/rjkroege/livemark/document"
)

// The content of delimited forms must start and end with a non-space
// character; (?s) lets a form span the soft breaks of a paragraph.
const content = `(\S(?:.*?\S)?)`

var (
	codeDouble = &Rule{
		Type:         document.MarkCode,
		Pattern:      regexp.MustCompile("(?s)``([^`](?:.*?[^`])?)``"),
		Prefix:       "``",
		Suffix:       "``",
		ContentIndex: 1,
		NoNest:       true,
	}
	codeSingle = &Rule{
		Type:         document.MarkCode,
		Pattern:      regexp.MustCompile("`([^`\n]+)`"),
		Prefix:       "`",
		Suffix:       "`",
		ContentIndex: 1,
		NoNest:       true,
	}
	math = &Rule{
		Type:         document.MarkMath,
		Pattern:      regexp.MustCompile(`\$([^$\s](?:[^$\n]*[^$\s])?)\$`),
		Prefix:       "$",
		Suffix:       "$",
		ContentIndex: 1,
		NoNest:       true,
		Guard:        notFollowedByDigit,
	}
	strongEmStar = &Rule{
		Type:         document.MarkStrong,
		Pattern:      regexp.MustCompile(`(?s)\*\*\*` + content + `\*\*\*`),
		Prefix:       "***",
		Suffix:       "***",
		ContentIndex: 1,
		MultiMarks:   []document.MarkType{document.MarkStrong, document.MarkEmphasis},
	}
	strongEmUnderscore = &Rule{
		Type:         document.MarkStrong,
		Pattern:      regexp.MustCompile(`(?s)___` + content + `___`),
		Prefix:       "___",
		Suffix:       "___",
		ContentIndex: 1,
		MultiMarks:   []document.MarkType{document.MarkStrong, document.MarkEmphasis},
		Guard:        wordBoundary,
	}
	strongStar = &Rule{
		Type:         document.MarkStrong,
		Pattern:      regexp.MustCompile(`(?s)\*\*` + content + `\*\*`),
		Prefix:       "**",
		Suffix:       "**",
		ContentIndex: 1,
	}
	strongUnderscore = &Rule{
		Type:         document.MarkStrong,
		Pattern:      regexp.MustCompile(`(?s)__` + content + `__`),
		Prefix:       "__",
		Suffix:       "__",
		ContentIndex: 1,
		Guard:        wordBoundary,
	}
	strike = &Rule{
		Type:         document.MarkStrike,
		Pattern:      regexp.MustCompile(`(?s)~~` + content + `~~`),
		Prefix:       "~~",
		Suffix:       "~~",
		ContentIndex: 1,
	}
	highlight = &Rule{
		Type:         document.MarkHighlight,
		Pattern:      regexp.MustCompile(`(?s)==` + content + `==`),
		Prefix:       "==",
		Suffix:       "==",
		ContentIndex: 1,
	}
	emStar = &Rule{
		Type:         document.MarkEmphasis,
		Pattern:      regexp.MustCompile(`(?s)\*` + content + `\*`),
		Prefix:       "*",
		Suffix:       "*",
		ContentIndex: 1,
	}
	emUnderscore = &Rule{
		Type:         document.MarkEmphasis,
		Pattern:      regexp.MustCompile(`(?s)_` + content + `_`),
		Prefix:       "_",
		Suffix:       "_",
		ContentIndex: 1,
		Guard:        wordBoundary,
	}
	footnote = &Rule{
		Type:         document.MarkFootnote,
		Pattern:      regexp.MustCompile(`\[\^([^\]\s]+)\]`),
		Prefix:       "[^",
		Suffix:       "]",
		ContentIndex: 1,
		NoNest:       true,
	}
	link = &Rule{
		Type:         document.MarkLink,
		Pattern:      regexp.MustCompile(`\[([^\]\n]*)\]\(([^)\s]*)(?:[ \t]+"([^"\n]*)")?\)`),
		Prefix:       "[",
		Closer:       regexp.MustCompile(`(?s)^\]\(.*\)$`),
		ContentIndex: 1,
		Guard:        notImage,
		Attrs:        linkAttrs,
	}
)

var defaultCatalog = New(
	codeDouble,
	codeSingle,
	math,
	strongEmStar,
	strongEmUnderscore,
	strongStar,
	strongUnderscore,
	strike,
	highlight,
	emStar,
	emUnderscore,
	footnote,
	link,
)

// Default returns the standard catalog. The triple-delimiter forms come
// before their single-delimiter constituents.
func Default() *Catalog {
	return defaultCatalog
}

func notFollowedByDigit(text string, loc []int) bool {
	if loc[1] >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[loc[1]:])
	return r < '0' || r > '9'
}

// notImage leaves ![alt](src) to the image promotion step.
func notImage(text string, loc []int) bool {
	return loc[0] == 0 || text[loc[0]-1] != '!'
}

func linkAttrs(text string, loc []int) document.Mark {
	m := document.Mark{Type: document.MarkLink}
	if loc[4] >= 0 {
		m.Href = text[loc[4]:loc[5]]
	}
	if len(loc) > 7 && loc[6] >= 0 {
		m.Title = text[loc[6]:loc[7]]
	}
	return m
}
