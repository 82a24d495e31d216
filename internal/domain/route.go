package domain

import (
	"fmt"
	"sort"
)

// Segment is a closed-open interval of stop ordinals, normalized so that
// Start < End regardless of travel direction.
type Segment struct {
	Start int
	End   int
}

func NewSegment(a, b int) Segment {
	if a > b {
		a, b = b, a
	}
	return Segment{Start: a, End: b}
}

// Overlaps reports whether two segments share a stretch of road.
// Touching at a single stop (A-B and B-C) is not an overlap.
func (s Segment) Overlaps(o Segment) bool {
	return s.Start < o.End && o.Start < s.End
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Corridor is the ordered set of stops a bus line serves.
type Corridor struct {
	ordinals map[string]int
}

func NewCorridor(ordinals map[string]int) Corridor {
	cp := make(map[string]int, len(ordinals))
	for code, ord := range ordinals {
		cp[code] = ord
	}
	return Corridor{ordinals: cp}
}

// DefaultCorridor is the four stop line A-B-C-D.
func DefaultCorridor() Corridor {
	return NewCorridor(map[string]int{"A": 1, "B": 2, "C": 3, "D": 4})
}

func (c Corridor) IsValidStop(code string) bool {
	_, ok := c.ordinals[code]
	return ok
}

func (c Corridor) Ordinal(code string) (int, bool) {
	ord, ok := c.ordinals[code]
	return ord, ok
}

// Segment resolves a pair of stop codes into a segment.
func (c Corridor) Segment(from, to string) (Segment, error) {
	a, ok := c.ordinals[from]
	if !ok {
		return Segment{}, ValidationError{Field: "origin", Msg: fmt.Sprintf("unknown stop %q", from)}
	}
	b, ok := c.ordinals[to]
	if !ok {
		return Segment{}, ValidationError{Field: "destination", Msg: fmt.Sprintf("unknown stop %q", to)}
	}
	if a == b {
		return Segment{}, ValidationError{Field: "destination", Msg: "origin and destination cannot be the same"}
	}
	return NewSegment(a, b), nil
}

// Overlaps compares two routes given as stop codes. Unknown stops never
// overlap anything.
func (c Corridor) Overlaps(from1, to1, from2, to2 string) bool {
	s1, err := c.Segment(from1, to1)
	if err != nil {
		return false
	}
	s2, err := c.Segment(from2, to2)
	if err != nil {
		return false
	}
	return s1.Overlaps(s2)
}

// Codes lists stop codes in corridor order.
func (c Corridor) Codes() []string {
	out := make([]string, 0, len(c.ordinals))
	for code := range c.ordinals {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool {
		return c.ordinals[out[i]] < c.ordinals[out[j]]
	})
	return out
}
