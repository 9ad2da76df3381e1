package document

import "sort"

// MarkType identifies the kind of an annotation. The same values name the
// syntax type referenced by a marker annotation.
type MarkType int

const (
	MarkNone MarkType = iota
	MarkStrong
	MarkEmphasis
	MarkCode
	MarkStrike
	MarkHighlight
	MarkLink
	MarkMath
	MarkFootnote

	// MarkEscape and MarkHeading only appear as the syntax type of a
	// marker annotation.
	MarkEscape
	MarkHeading

	// MarkSyntax tags literal syntax punctuation. Mark.Syntax names the
	// semantic kind the punctuation belongs to.
	MarkSyntax
)

var markNames = map[MarkType]string{
	MarkNone:      "none",
	MarkStrong:    "strong",
	MarkEmphasis:  "emphasis",
	MarkCode:      "code",
	MarkStrike:    "strikethrough",
	MarkHighlight: "highlight",
	MarkLink:      "link",
	MarkMath:      "math",
	MarkFootnote:  "footnote",
	MarkEscape:    "escape",
	MarkHeading:   "heading",
	MarkSyntax:    "syntax",
}

func (t MarkType) String() string {
	if s, ok := markNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseMarkType maps a name such as "highlight" back to its MarkType.
func ParseMarkType(name string) (MarkType, bool) {
	for t, s := range markNames {
		if s == name {
			return t, true
		}
	}
	return MarkNone, false
}

// Role distinguishes the position of a marker within its syntax form.
// Opening and closing delimiters carry different roles so that adjacent
// delimiters (the "****" in "**a****b**") never merge into a single run.
type Role int

const (
	RoleNone Role = iota
	RoleOpen
	RoleClose
	RoleEscape
	RoleBlock
)

// Mark is one annotation on a text run. Mark is comparable.
type Mark struct {
	Type   MarkType
	Syntax MarkType // syntax type when Type == MarkSyntax
	Role   Role
	Href   string // links only
	Title  string // links only
}

// IsMarker reports whether m tags literal syntax punctuation.
func (m Mark) IsMarker() bool {
	return m.Type == MarkSyntax
}

// MarkSet is a sorted, duplicate-free list of marks.
type MarkSet []Mark

// NewMarkSet returns the canonical set holding marks.
func NewMarkSet(marks ...Mark) MarkSet {
	if len(marks) == 0 {
		return nil
	}
	s := make(MarkSet, len(marks))
	copy(s, marks)
	sort.Slice(s, func(i, j int) bool { return markLess(s[i], s[j]) })
	out := s[:1]
	for _, m := range s[1:] {
		if m != out[len(out)-1] {
			out = append(out, m)
		}
	}
	return out
}

func markLess(a, b Mark) bool {
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.Syntax != b.Syntax {
		return a.Syntax < b.Syntax
	}
	if a.Role != b.Role {
		return a.Role < b.Role
	}
	if a.Href != b.Href {
		return a.Href < b.Href
	}
	return a.Title < b.Title
}

// Has reports whether s carries a semantic mark of type t.
func (s MarkSet) Has(t MarkType) bool {
	for _, m := range s {
		if m.Type == t {
			return true
		}
	}
	return false
}

// Get returns the first mark of type t.
func (s MarkSet) Get(t MarkType) (Mark, bool) {
	for _, m := range s {
		if m.Type == t {
			return m, true
		}
	}
	return Mark{}, false
}

// Marker returns the marker annotation in s, if any.
func (s MarkSet) Marker() (Mark, bool) {
	return s.Get(MarkSyntax)
}

// HasMarker reports whether s carries a marker for syntax type t.
func (s MarkSet) HasMarker(t MarkType) bool {
	m, ok := s.Marker()
	return ok && m.Syntax == t
}

// Equal reports whether s and o hold the same marks.
func (s MarkSet) Equal(o MarkSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Without returns a copy of s minus the marks for which drop returns true.
func (s MarkSet) Without(drop func(Mark) bool) MarkSet {
	var out MarkSet
	for _, m := range s {
		if !drop(m) {
			out = append(out, m)
		}
	}
	return out
}
