package differ

import (
	"strconv"
	"strings"

	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// Normalize reports list changes at the list itself. When the record ends
// in a list index, the index is dropped and both values are replaced with
// the whole list from each root (Missing where that side has no list).
// Records ending in a map key pass through. Normalizing a normalized record
// returns it unchanged.
func Normalize(rec Record, leftRoot, rightRoot value.Value) Record {
	if rec.Normalized {
		return rec
	}

	last, ok := rec.Path.Last()
	if !ok || !last.IsIndex() {
		rec.Normalized = true
		return rec
	}

	parent := rec.Path.Parent().Append()
	left, _ := leftRoot.At(parent)
	right, _ := rightRoot.At(parent)

	return Record{Path: parent, Left: left, Right: right, Normalized: true}
}

// NormalizeAll normalizes every record and removes the duplicates this
// produces.
func NormalizeAll(records []Record, leftRoot, rightRoot value.Value) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		out[i] = Normalize(rec, leftRoot, rightRoot)
	}
	return Dedupe(out)
}

// Dedupe keeps the first record for each path and drops records nested
// below another record's path, since the outer record already carries the
// whole subtree. Order is otherwise preserved.
func Dedupe(records []Record) []Record {
	kept := make(map[string]bool, len(records))
	var unique []Record
	for _, rec := range records {
		key := pathKey(rec.Path)
		if kept[key] {
			continue
		}
		kept[key] = true
		unique = append(unique, rec)
	}

	out := unique[:0:0]
	for _, rec := range unique {
		if !hasKeptAncestor(rec.Path, kept) {
			out = append(out, rec)
		}
	}
	return out
}

func hasKeptAncestor(p value.Path, kept map[string]bool) bool {
	for i := 0; i < len(p); i++ {
		if kept[pathKey(p[:i])] {
			return true
		}
	}
	return false
}

// pathKey encodes p unambiguously; Path.String would confuse a key
// containing a dot with two keys.
func pathKey(p value.Path) string {
	var b strings.Builder
	for _, seg := range p {
		if idx, ok := seg.Index(); ok {
			b.WriteString("\x01")
			b.WriteString(strconv.Itoa(idx))
		} else {
			key, _ := seg.Key()
			b.WriteString("\x00")
			b.WriteString(key)
		}
	}
	return b.String()
}
