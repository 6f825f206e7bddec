package differ

import (
	"github.com/wonderfulspam/setup-smith/pkg/conversion"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// Source labels one side of a comparison. ID keys the result leaves and
// Model selects the conversion formulas.
type Source struct {
	ID    string
	Model string
}

// Reconstruction is the rebuilt result tree with one Leaf per difference.
type Reconstruction struct {
	LeftID      string
	RightID     string
	Tree        value.Value
	Leaves      []Leaf
	Diagnostics []Diagnostic
}

// Reconstruct rebuilds normalized records as a nested map tree that mirrors
// the inputs. Every leaf is a two-entry map holding the left and right
// values under the two source IDs. List indexes that appear inside a path
// become decimal keys.
//
// A map that exists on one side only is expanded key by key, so the leaves
// still follow the shape of the side that has it.
//
// Known conversion fields are converted with each side's own model using
// table and stored in display units. A nil table leaves every value raw.
func Reconstruct(records []Record, left, right Source, table *conversion.Table) *Reconstruction {
	leftID, rightID := sourceIDs(left.ID, right.ID)
	leftInfo := sideInfo{id: leftID, model: left.Model}
	rightInfo := sideInfo{id: rightID, model: right.Model}
	conv := &converter{table: table}

	rc := &Reconstruction{
		LeftID:      leftID,
		RightID:     rightID,
		Leaves:      []Leaf{},
		Diagnostics: []Diagnostic{},
	}

	root := newNode()
	for _, rec := range expandAll(Dedupe(records)) {
		leaf, diags := conv.leaf(rec, leftInfo, rightInfo)
		if !root.insert(rec.Path.Names(), leafValue(leftID, rightID, leaf.Left.Display, leaf.Right.Display)) {
			continue
		}
		rc.Leaves = append(rc.Leaves, leaf)
		rc.Diagnostics = append(rc.Diagnostics, diags...)
	}
	rc.Tree = root.value()
	return rc
}

// sourceIDs keeps the two leaf keys distinct when both files share a name.
func sourceIDs(leftID, rightID string) (string, string) {
	if leftID == rightID {
		return leftID + " (left)", rightID + " (right)"
	}
	return leftID, rightID
}

func leafValue(leftID, rightID string, left, right value.Value) value.Value {
	return value.Map(map[string]value.Value{leftID: left, rightID: right})
}

func expandAll(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, expand(rec)...)
	}
	return out
}

func expand(rec Record) []Record {
	var present value.Value
	switch {
	case rec.Left.IsMissing() && rec.Right.Kind() == value.KindMap:
		present = rec.Right
	case rec.Right.IsMissing() && rec.Left.Kind() == value.KindMap:
		present = rec.Left
	default:
		return []Record{rec}
	}
	if present.Len() == 0 {
		return []Record{rec}
	}

	var out []Record
	for _, key := range present.Keys() {
		child, _ := present.Get(key)
		sub := Record{Path: rec.Path.Append(value.Key(key)), Normalized: true}
		if rec.Left.IsMissing() {
			sub.Left, sub.Right = value.Missing(), child
		} else {
			sub.Left, sub.Right = child, value.Missing()
		}
		out = append(out, expand(sub)...)
	}
	return out
}

// node is the mutable form of the result tree while it is being built.
type node struct {
	children map[string]*node
	leaf     value.Value
	isLeaf   bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// insert places leaf at path, creating intermediate maps as needed. An
// existing node is never replaced; it returns false on such a conflict.
func (n *node) insert(path []string, leaf value.Value) bool {
	cur := n
	for i, name := range path {
		if cur.isLeaf {
			return false
		}
		child, ok := cur.children[name]
		if !ok {
			child = newNode()
			cur.children[name] = child
		}
		if i == len(path)-1 {
			if child.isLeaf || len(child.children) > 0 {
				return false
			}
			child.leaf, child.isLeaf = leaf, true
			return true
		}
		cur = child
	}
	return false
}

func (n *node) value() value.Value {
	if n.isLeaf {
		return n.leaf
	}
	entries := make(map[string]value.Value, len(n.children))
	for name, child := range n.children {
		entries[name] = child.value()
	}
	return value.Map(entries)
}
