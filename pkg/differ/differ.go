// Package differ compares two setup trees and rebuilds the differences as a
// tree of the same shape, with known fields converted to display units.
package differ

import (
	"sort"

	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// Diff walks left and right in lock-step and returns every point where they
// disagree. Maps are compared over the union of their keys, lists index by
// index, and everything else (including a map on one side and a list on the
// other) by value. The output order is deterministic: keys sorted, indexes
// ascending, depth first.
func Diff(left, right value.Value) []Record {
	var records []Record
	diffNode(nil, left, right, &records)
	return records
}

func diffNode(path value.Path, left, right value.Value, out *[]Record) {
	switch {
	case !value.SameShape(left, right):
		*out = append(*out, Record{Path: path, Left: left, Right: right})
	case left.Kind() == value.KindMap:
		diffMaps(path, left, right, out)
	case left.Kind() == value.KindList:
		diffLists(path, left, right, out)
	default:
		if !value.Equal(left, right) {
			*out = append(*out, Record{Path: path, Left: left, Right: right})
		}
	}
}

func diffMaps(path value.Path, left, right value.Value, out *[]Record) {
	for _, key := range unionKeys(left, right) {
		childPath := path.Append(value.Key(key))
		leftChild, inLeft := left.Get(key)
		rightChild, inRight := right.Get(key)

		if inLeft && inRight {
			diffNode(childPath, leftChild, rightChild, out)
			continue
		}
		*out = append(*out, Record{Path: childPath, Left: leftChild, Right: rightChild})
	}
}

func diffLists(path value.Path, left, right value.Value, out *[]Record) {
	shorter, longer := left.Len(), right.Len()
	if shorter > longer {
		shorter, longer = longer, shorter
	}

	for i := 0; i < shorter; i++ {
		l, _ := left.Index(i)
		r, _ := right.Index(i)
		diffNode(path.Append(value.Index(i)), l, r, out)
	}

	for i := shorter; i < longer; i++ {
		l, _ := left.Index(i)
		r, _ := right.Index(i)
		*out = append(*out, Record{Path: path.Append(value.Index(i)), Left: l, Right: r})
	}
}

func unionKeys(a, b value.Value) []string {
	seen := make(map[string]bool, a.Len()+b.Len())
	for _, k := range a.Keys() {
		seen[k] = true
	}
	for _, k := range b.Keys() {
		seen[k] = true
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
