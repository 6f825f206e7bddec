package differ

import (
	"testing"

	"github.com/wonderfulspam/setup-smith/pkg/conversion"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

func leafAt(t *testing.T, tree value.Value, names ...string) value.Value {
	t.Helper()
	cur := tree
	for _, name := range names {
		next, ok := cur.Get(name)
		if !ok {
			t.Fatalf("no %q under %v in %s", name, names, tree)
		}
		cur = next
	}
	return cur
}

func TestReconstruct_Leaves(t *testing.T) {
	left := sampleSetup(ints(53, 53, 55, 55), 10)
	right := sampleSetup(ints(57, 53, 55, 55), 12)

	tree := Reconstruct(NormalizeAll(Diff(left, right), left, right), Source{ID: "a.json"}, Source{ID: "b.json"}, nil).Tree

	pressure := leafAt(t, tree, "basicSetup", "tyres", "tyrePressure")
	if got := leafAt(t, pressure, "a.json"); !value.Equal(got, ints(53, 53, 55, 55)) {
		t.Errorf("Expected left pressure list, got %s", got)
	}
	if got := leafAt(t, pressure, "b.json"); !value.Equal(got, ints(57, 53, 55, 55)) {
		t.Errorf("Expected right pressure list, got %s", got)
	}

	caster := leafAt(t, tree, "basicSetup", "alignment", "casterLF")
	if caster.Len() != 2 {
		t.Errorf("Expected a two-entry leaf, got %s", caster)
	}

	if _, ok := tree.Get("advancedSetup"); ok {
		t.Error("Expected unchanged branches to be absent from the tree")
	}
}

func TestReconstruct_ConvertsKnownFields(t *testing.T) {
	left := sampleSetup(ints(53, 53, 55, 55), 10)
	right := sampleSetup(ints(57, 53, 55, 55), 12)
	model := "porsche_991ii_gt3_r"

	rc := Reconstruct(NormalizeAll(Diff(left, right), left, right),
		Source{ID: "a.json", Model: model}, Source{ID: "b.json", Model: model}, conversion.Default)

	pressure := leafAt(t, rc.Tree, "basicSetup", "tyres", "tyrePressure")
	if got := leafAt(t, pressure, "b.json"); !value.Equal(got, value.List(value.Float(26), value.Float(25.6), value.Float(25.8), value.Float(25.8))) {
		t.Errorf("Expected converted right pressure, got %s", got)
	}
	caster := leafAt(t, rc.Tree, "basicSetup", "alignment", "casterLF")
	if got := leafAt(t, caster, "a.json"); !value.Equal(got, value.Float(6.4)) {
		t.Errorf("Expected converted left caster 6.4, got %s", got)
	}

	if len(rc.Leaves) != 3 {
		t.Fatalf("Expected 3 leaves (pressure, casterLF, casterRF), got %d", len(rc.Leaves))
	}
	wantRaw := map[string]value.Value{
		"basicSetup.tyres.tyrePressure": ints(53, 53, 55, 55),
		"basicSetup.alignment.casterLF": value.Int(10),
		"basicSetup.alignment.casterRF": value.Int(10),
	}
	for _, leaf := range rc.Leaves {
		if !leaf.Converted() {
			t.Errorf("%s: expected a converted leaf", leaf.Path)
		}
		if !value.Equal(leaf.Left.Raw, wantRaw[leaf.Path]) {
			t.Errorf("%s: expected raw %s next to the display value, got %s", leaf.Path, wantRaw[leaf.Path], leaf.Left.Raw)
		}
	}
	if len(rc.Diagnostics) != 0 {
		t.Errorf("Expected no diagnostics, got %v", rc.Diagnostics)
	}
}

func TestReconstruct_NilTableKeepsRawValues(t *testing.T) {
	left := sampleSetup(ints(53, 53, 55, 55), 10)
	right := sampleSetup(ints(57, 53, 55, 55), 10)

	rc := Reconstruct(NormalizeAll(Diff(left, right), left, right),
		Source{ID: "a.json", Model: "porsche_991ii_gt3_r"}, Source{ID: "b.json", Model: "porsche_991ii_gt3_r"}, nil)

	pressure := leafAt(t, rc.Tree, "basicSetup", "tyres", "tyrePressure")
	if got := leafAt(t, pressure, "b.json"); !value.Equal(got, ints(57, 53, 55, 55)) {
		t.Errorf("Expected raw right pressure, got %s", got)
	}
	if len(rc.Leaves) != 1 || rc.Leaves[0].Left.Status != StatusRaw {
		t.Errorf("Expected one raw leaf, got %+v", rc.Leaves)
	}
}

func TestReconstruct_Empty(t *testing.T) {
	tree := Reconstruct(nil, Source{ID: "a"}, Source{ID: "b"}, nil).Tree

	if tree.Kind() != value.KindMap || tree.Len() != 0 {
		t.Errorf("Expected an empty map, got %s", tree)
	}
}

func TestReconstruct_OneSidedMapIsExpanded(t *testing.T) {
	left := m(map[string]value.Value{
		"aero": m(map[string]value.Value{
			"brakeDuct": m(map[string]value.Value{"front": value.Int(3), "rear": value.Int(2)}),
		}),
	})
	right := m(map[string]value.Value{"aero": m(map[string]value.Value{})})

	tree := Reconstruct(NormalizeAll(Diff(left, right), left, right), Source{ID: "left"}, Source{ID: "right"}, nil).Tree

	front := leafAt(t, tree, "aero", "brakeDuct", "front")
	if got := leafAt(t, front, "left"); !value.Equal(got, value.Int(3)) {
		t.Errorf("Expected left 3, got %s", got)
	}
	if got := leafAt(t, front, "right"); !got.IsMissing() {
		t.Errorf("Expected right to be missing, got %s", got)
	}
	if got := leafAt(t, front, "right").String(); got != value.MissingText {
		t.Errorf("Expected missing marker %q, got %q", value.MissingText, got)
	}
}

func TestReconstruct_IndexInsidePath(t *testing.T) {
	left := m(map[string]value.Value{"stints": value.List(m(map[string]value.Value{"fuel": value.Int(40)}))})
	right := m(map[string]value.Value{"stints": value.List(m(map[string]value.Value{"fuel": value.Int(55)}))})

	tree := Reconstruct(NormalizeAll(Diff(left, right), left, right), Source{ID: "l"}, Source{ID: "r"}, nil).Tree

	fuel := leafAt(t, tree, "stints", "0", "fuel")
	if got := leafAt(t, fuel, "r"); !value.Equal(got, value.Int(55)) {
		t.Errorf("Expected 55, got %s", got)
	}
}

func TestReconstruct_SameIDs(t *testing.T) {
	left := m(map[string]value.Value{"bias": value.Int(50)})
	right := m(map[string]value.Value{"bias": value.Int(52)})

	tree := Reconstruct(NormalizeAll(Diff(left, right), left, right), Source{ID: "race.json"}, Source{ID: "race.json"}, nil).Tree

	bias := leafAt(t, tree, "bias")
	if bias.Len() != 2 {
		t.Fatalf("Expected both sides to be kept, got %s", bias)
	}
	if _, ok := bias.Get("race.json (left)"); !ok {
		t.Errorf("Expected a '(left)' key, got %v", bias.Keys())
	}
	if _, ok := bias.Get("race.json (right)"); !ok {
		t.Errorf("Expected a '(right)' key, got %v", bias.Keys())
	}
}

func TestNode_InsertConflict(t *testing.T) {
	root := newNode()

	if !root.insert([]string{"a", "b"}, value.Int(1)) {
		t.Fatal("Expected first insert to succeed")
	}
	if root.insert([]string{"a", "b"}, value.Int(2)) {
		t.Error("Expected insert over an existing leaf to fail")
	}
	if root.insert([]string{"a", "b", "c"}, value.Int(3)) {
		t.Error("Expected insert below a leaf to fail")
	}
	if root.insert([]string{"a"}, value.Int(4)) {
		t.Error("Expected insert over a branch to fail")
	}

	got := leafAt(t, root.value(), "a", "b")
	if !value.Equal(got, value.Int(1)) {
		t.Errorf("Expected original leaf to survive, got %s", got)
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	left := sampleSetup(ints(53, 54, 55, 56), 10)
	right := sampleSetup(ints(57, 54, 55), 12)
	records := expandAll(NormalizeAll(Diff(left, right), left, right))

	tree := Reconstruct(records, Source{ID: "l"}, Source{ID: "r"}, nil).Tree

	for _, rec := range records {
		leaf := leafAt(t, tree, rec.Path.Names()...)
		wantLeft, _ := left.At(rec.Path)
		wantRight, _ := right.At(rec.Path)
		if wantLeft.IsMissing() && wantRight.IsMissing() {
			t.Errorf("%s: path exists in neither input", rec.Path)
		}
		if got := leafAt(t, leaf, "l"); !value.Equal(got, wantLeft) {
			t.Errorf("%s: left leaf %s, input has %s", rec.Path, got, wantLeft)
		}
		if got := leafAt(t, leaf, "r"); !value.Equal(got, wantRight) {
			t.Errorf("%s: right leaf %s, input has %s", rec.Path, got, wantRight)
		}
	}
}
