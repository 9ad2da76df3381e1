package rich

import "testing"

// boldMap is the map of "**bold** x" rendered as "bold x".
func boldMap() *SourceMap {
	sm := &SourceMap{}
	sm.Add(SourceMapEntry{RenderedStart: 0, RenderedEnd: 4, SourceStart: 2, SourceEnd: 6, PrefixLen: 2, SuffixLen: 2})
	sm.Add(SourceMapEntry{RenderedStart: 4, RenderedEnd: 6, SourceStart: 8, SourceEnd: 10, PrefixLen: 2})
	return sm
}

func TestSourceMapToSource(t *testing.T) {
	tests := []struct {
		name             string
		start, end       int
		wantSrc, wantEnd int
	}{
		{name: "whole bold word", start: 0, end: 4, wantSrc: 0, wantEnd: 8},
		{name: "inside bold", start: 1, end: 3, wantSrc: 3, wantEnd: 5},
		{name: "plain tail", start: 5, end: 6, wantSrc: 9, wantEnd: 10},
		{name: "spanning", start: 2, end: 6, wantSrc: 4, wantEnd: 10},
		{name: "past the end", start: 9, end: 12, wantSrc: 9, wantEnd: 12},
	}
	sm := boldMap()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := sm.ToSource(tt.start, tt.end)
			if s != tt.wantSrc || e != tt.wantEnd {
				t.Errorf("ToSource(%d, %d) = %d, %d, want %d, %d", tt.start, tt.end, s, e, tt.wantSrc, tt.wantEnd)
			}
		})
	}
}

func TestSourceMapEmpty(t *testing.T) {
	sm := &SourceMap{}
	if s, e := sm.ToSource(3, 7); s != 3 || e != 7 {
		t.Errorf("ToSource on empty map = %d, %d, want identity", s, e)
	}
}

func TestSourceMapToRendered(t *testing.T) {
	tests := []struct {
		pos, want int
	}{
		{pos: 0, want: 0},  // hidden opener
		{pos: 2, want: 0},  // first visible rune
		{pos: 5, want: 3},  // inside
		{pos: 6, want: 4},  // hidden closer
		{pos: 8, want: 4},  // space
		{pos: 9, want: 5},  // x
		{pos: 10, want: 6}, // end
		{pos: 50, want: 6}, // beyond
	}
	sm := boldMap()
	for _, tt := range tests {
		if got := sm.ToRendered(tt.pos); got != tt.want {
			t.Errorf("ToRendered(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}
