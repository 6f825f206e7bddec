package value

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a map key or a list index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

func Key(k string) Segment { return Segment{key: k} }
func Index(i int) Segment { return Segment{index: i, isIndex: true} }
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the map key of a key segment.
func (s Segment) Key() (string, bool) {
	if s.isIndex {
		return "", false
	}
	return s.key, true
}

// Index returns the list offset of an index segment.
func (s Segment) Index() (int, bool) {
	if !s.isIndex {
		return 0, false
	}
	return s.index, true
}

// Name is the map key used for this segment when a path is rebuilt as
// nested maps: the key itself, or the decimal index.
func (s Segment) Name() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Path is the route from the root of a tree to one of its nodes.
type Path []Segment

// Append returns a new path with segs added; p is never modified.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Last returns the final segment.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// Parent returns p without its final segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path as dotted keys with bracketed indexes,
// e.g. basicSetup.tyres.tyrePressure[0].
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.key)
	}
	return b.String()
}

// Names returns Segment.Name for every segment.
func (p Path) Names() []string {
	out := make([]string, len(p))
	for i, seg := range p {
		out[i] = seg.Name()
	}
	return out
}

// At returns the node found by following p from v.
func (v Value) At(p Path) (Value, bool) {
	cur := v
	for _, seg := range p {
		var ok bool
		if seg.isIndex {
			cur, ok = cur.Index(seg.index)
		} else {
			cur, ok = cur.Get(seg.key)
		}
		if !ok {
			return Missing(), false
		}
	}
	return cur, true
}
