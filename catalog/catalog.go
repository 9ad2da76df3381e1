// Package catalog is the ordered, declarative list of inline markdown
// syntax forms. Rules are immutable; every scan builds its own matches, so
// concurrent or re-entrant scans never share matcher state.
package catalog

import (
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/rjkroege/livemark/document"
)

// Rule describes one inline syntax form.
type Rule struct {
	Type    document.MarkType
	Pattern *regexp.Regexp
	Prefix  string
	// Suffix is the literal closing delimiter. Rules whose suffix varies
	// (links) leave it empty and set Closer instead.
	Suffix string
	Closer *regexp.Regexp
	// ContentIndex is the submatch holding the content between prefix
	// and suffix.
	ContentIndex int
	// MultiMarks lists the semantic types of a combined form such as
	// ***bold italic***. Empty means just Type.
	MultiMarks []document.MarkType
	// NoNest stops the Detector from looking for syntax inside the
	// content.
	NoNest bool
	// Guard rejects matches the pattern alone cannot rule out. It sees
	// the whole scanned text and the absolute match location.
	Guard func(text string, loc []int) bool
	// Attrs extracts mark attributes (link target and title).
	Attrs func(text string, loc []int) document.Mark
}

// Types returns the semantic types a match of r applies.
func (r *Rule) Types() []document.MarkType {
	if len(r.MultiMarks) > 0 {
		return r.MultiMarks
	}
	return []document.MarkType{r.Type}
}

// Match is one occurrence of a rule in scanned text. Offsets are bytes.
type Match struct {
	Rule         *Rule
	Order        int // rule position in the catalog
	Start, End   int
	ContentStart int
	ContentEnd   int
	Loc          []int // absolute submatch offsets
	Attrs        document.Mark
}

// Find returns every match of r in text[lo:hi]. Offsets are absolute.
func (r *Rule) Find(text string, lo, hi int) []Match {
	var out []Match
	for _, loc := range r.Pattern.FindAllStringSubmatchIndex(text[lo:hi], -1) {
		abs := make([]int, len(loc))
		for i, v := range loc {
			if v >= 0 {
				abs[i] = v + lo
			} else {
				abs[i] = -1
			}
		}
		if r.Guard != nil && !r.Guard(text, abs) {
			continue
		}
		m := Match{
			Rule:         r,
			Start:        abs[0],
			End:          abs[1],
			ContentStart: abs[2*r.ContentIndex],
			ContentEnd:   abs[2*r.ContentIndex+1],
			Loc:          abs,
		}
		if r.Attrs != nil {
			m.Attrs = r.Attrs(text, abs)
		}
		out = append(out, m)
	}
	return out
}

// Catalog is an ordered list of rules. Order encodes precedence between
// matches that start and end at the same offsets.
type Catalog struct {
	rules []*Rule
}

// New returns a catalog holding rules in order.
func New(rules ...*Rule) *Catalog {
	return &Catalog{rules: append([]*Rule(nil), rules...)}
}

// Rules returns the rules in precedence order.
func (c *Catalog) Rules() []*Rule {
	return append([]*Rule(nil), c.rules...)
}

// Without returns a catalog minus the rules producing any of types.
func (c *Catalog) Without(types ...document.MarkType) *Catalog {
	drop := make(map[document.MarkType]bool, len(types))
	for _, t := range types {
		drop[t] = true
	}
	var keep []*Rule
	for _, r := range c.rules {
		if !drop[r.Type] {
			keep = append(keep, r)
		}
	}
	return New(keep...)
}

// Matches runs every rule over text[lo:hi] and returns the raw matches
// sorted by start ascending, then end descending, then catalog order.
func (c *Catalog) Matches(text string, lo, hi int) []Match {
	var all []Match
	for i, r := range c.rules {
		for _, m := range r.Find(text, lo, hi) {
			m.Order = i
			all = append(all, m)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End > b.End
		}
		return a.Order < b.Order
	})
	return all
}

// Resolve keeps the earliest-starting, longest matches and drops any match
// overlapping one already accepted.
func Resolve(matches []Match) []Match {
	var out []Match
	end := -1
	for _, m := range matches {
		if m.Start < end {
			continue
		}
		out = append(out, m)
		end = m.End
	}
	return out
}

// RuleFor returns the rule of syntax type t whose opening or closing
// delimiter is literal.
func (c *Catalog) RuleFor(t document.MarkType, literal string) *Rule {
	for _, r := range c.rules {
		if r.Type == t && r.Prefix == literal {
			return r
		}
	}
	for _, r := range c.rules {
		if r.Type != t {
			continue
		}
		if r.Suffix != "" && r.Suffix == literal {
			return r
		}
		if r.Suffix == "" && r.Closer != nil && r.Closer.MatchString(literal) {
			return r
		}
	}
	return nil
}

// Closes reports whether the delimiter close terminates a form of type t
// opened by open. Symmetric forms pair only on identical text: "**" with
// "**", never with "__".
func (c *Catalog) Closes(t document.MarkType, open, close string) bool {
	for _, r := range c.rules {
		if r.Type != t || r.Prefix != open {
			continue
		}
		if r.Suffix != "" {
			if r.Suffix == close {
				return true
			}
			continue
		}
		if r.Closer != nil && r.Closer.MatchString(close) {
			return true
		}
	}
	return false
}

// Pair matches opening and closing marker runs by bracket matching in
// document order, per syntax type. It returns the partner index of each
// run, or -1 when the run has no partner. Escape and heading markers never
// pair.
func (c *Catalog) Pair(runs []document.MarkerRun) []int {
	partner := make([]int, len(runs))
	stacks := make(map[document.MarkType][]int)
	for i, r := range runs {
		partner[i] = -1
		t := r.Mark.Syntax
		switch r.Mark.Role {
		case document.RoleOpen:
			stacks[t] = append(stacks[t], i)
		case document.RoleClose:
			st := stacks[t]
			if len(st) == 0 {
				continue
			}
			top := st[len(st)-1]
			if c.Closes(t, runs[top].Literal, r.Literal) {
				partner[top] = i
				partner[i] = top
				stacks[t] = st[:len(st)-1]
			}
		}
	}
	return partner
}

// wordBoundary rejects intraword underscore forms: the characters around
// the match must not be letters or digits.
func wordBoundary(text string, loc []int) bool {
	if loc[0] > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:loc[0]])
		if isWordRune(r) {
			return false
		}
	}
	if loc[1] < len(text) {
		r, _ := utf8.DecodeRuneInString(text[loc[1]:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
