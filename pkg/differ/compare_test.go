package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonderfulspam/setup-smith/pkg/conversion"
	"github.com/wonderfulspam/setup-smith/pkg/parser"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

func findLeaf(t *testing.T, result *Result, path string) Leaf {
	t.Helper()
	for _, leaf := range result.Leaves {
		if leaf.Path == path {
			return leaf
		}
	}
	t.Fatalf("no leaf at %s", path)
	return Leaf{}
}

func floats(xs ...float64) value.Value {
	items := make([]value.Value, len(xs))
	for i, x := range xs {
		items[i] = value.Float(x)
	}
	return value.List(items...)
}

func TestCompare_NoDifferences(t *testing.T) {
	setup := parser.New("race.json", "", sampleSetup(ints(53, 53, 55, 55), 10))

	result, err := Compare(setup, setup)

	require.NoError(t, err)
	assert.False(t, result.HasChanges)
	assert.Empty(t, result.Leaves)
	assert.Equal(t, 0, result.Tree.Len())
	assert.Equal(t, "No differences found", result.Summary)
}

func TestCompare_ConvertsWithEachSidesModel(t *testing.T) {
	left := parser.New("a.json", "unknown_car", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("b.json", "unknown_car", sampleSetup(ints(57, 53, 55, 55), 12))

	result, err := Compare(left, right)
	require.NoError(t, err)

	pressure := findLeaf(t, result, "basicSetup.tyres.tyrePressure")
	assert.Equal(t, conversion.TirePressure, pressure.Subject)
	assert.Equal(t, StatusConverted, pressure.Left.Status)
	assert.True(t, value.Equal(floats(25.6, 25.6, 25.8, 25.8), pressure.Left.Display), "left display %s", pressure.Left.Display)
	assert.True(t, value.Equal(floats(26.0, 25.6, 25.8, 25.8), pressure.Right.Display), "right display %s", pressure.Right.Display)
	assert.True(t, value.Equal(ints(53, 53, 55, 55), pressure.Left.Raw))

	tree, ok := result.Tree.At(value.Path{value.Key("basicSetup"), value.Key("tyres"), value.Key("tyrePressure"), value.Key("b.json")})
	require.True(t, ok)
	first, _ := tree.Index(0)
	assert.True(t, value.Equal(value.Float(26.0), first), "tree holds %s", tree)

	caster := findLeaf(t, result, "basicSetup.alignment.casterLF")
	assert.Equal(t, StatusUnconverted, caster.Left.Status)
	assert.Equal(t, StatusUnconverted, caster.Right.Status)
	assert.True(t, value.Equal(value.Int(10), caster.Left.Display))
	assert.True(t, value.Equal(value.Int(12), caster.Right.Display))

	casterTree, ok := result.Tree.At(value.Path{value.Key("basicSetup"), value.Key("alignment"), value.Key("casterLF")})
	require.True(t, ok)
	l, _ := casterTree.Get("a.json")
	r, _ := casterTree.Get("b.json")
	assert.True(t, value.Equal(value.Int(10), l))
	assert.True(t, value.Equal(value.Int(12), r))

	kinds := map[DiagnosticKind]int{}
	for _, d := range result.Diagnostics {
		kinds[d.Kind]++
	}
	assert.Equal(t, 4, kinds[DiagUnknownModelConversion], "casterLF and casterRF on both sides")
}

func TestCompare_KnownModelCaster(t *testing.T) {
	left := parser.New("a.json", "", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("b.json", "", sampleSetup(ints(53, 53, 55, 55), 12))
	require.Equal(t, "porsche_991ii_gt3_r", left.Model)

	result, err := Compare(left, right)
	require.NoError(t, err)

	caster := findLeaf(t, result, "basicSetup.alignment.casterLF")
	assert.Equal(t, conversion.Caster, caster.Subject)
	assert.True(t, value.Equal(value.Float(6.4), caster.Left.Display), "got %s", caster.Left.Display)
	assert.True(t, value.Equal(value.Float(6.8), caster.Right.Display), "got %s", caster.Right.Display)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, "2 modified (2 total changes, 2 converted)", result.Summary)
}

func TestCompare_ConversionsDisabled(t *testing.T) {
	left := parser.New("a.json", "", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("b.json", "", sampleSetup(ints(57, 53, 55, 55), 10))

	result, err := Compare(left, right, WithConversions(false))
	require.NoError(t, err)

	pressure := findLeaf(t, result, "basicSetup.tyres.tyrePressure")
	assert.Equal(t, StatusRaw, pressure.Left.Status)
	assert.True(t, value.Equal(ints(57, 53, 55, 55), pressure.Right.Display))
}

func TestCompare_CustomTable(t *testing.T) {
	half := conversion.Affine{Offset: 1, Scale: 0.5}
	table, err := conversion.NewTable([]conversion.Rule{
		{Subject: conversion.Caster, Models: []string{"unknown_car"}, Transform: conversion.Transform{Front: half, Rear: half}},
	})
	require.NoError(t, err)

	left := parser.New("a.json", "unknown_car", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("b.json", "unknown_car", sampleSetup(ints(57, 53, 55, 55), 12))

	result, err := Compare(left, right, WithTable(table))
	require.NoError(t, err)

	caster := findLeaf(t, result, "basicSetup.alignment.casterLF")
	assert.True(t, value.Equal(value.Float(6), caster.Left.Display), "got %s", caster.Left.Display)
	assert.True(t, value.Equal(value.Float(7), caster.Right.Display), "got %s", caster.Right.Display)

	pressure := findLeaf(t, result, "basicSetup.tyres.tyrePressure")
	assert.Equal(t, StatusUnconverted, pressure.Left.Status, "the custom table has no tyre pressure rule")
}

func TestCompare_MissingKey(t *testing.T) {
	leftRoot := m(map[string]value.Value{
		"carName":   value.Text("ferrari_488_gt3"),
		"brakeDuct": m(map[string]value.Value{"front": value.Int(3)}),
	})
	rightRoot := m(map[string]value.Value{"carName": value.Text("ferrari_488_gt3")})

	result, err := Compare(parser.New("a.json", "", leftRoot), parser.New("b.json", "", rightRoot))
	require.NoError(t, err)

	require.Len(t, result.Leaves, 1)
	leaf := result.Leaves[0]
	assert.Equal(t, "brakeDuct.front", leaf.Path)
	assert.Equal(t, DiffTypeRemoved, leaf.Type)
	assert.Equal(t, StatusMissing, leaf.Right.Status)

	front, ok := result.Tree.At(value.Path{value.Key("brakeDuct"), value.Key("front")})
	require.True(t, ok)
	b, _ := front.Get("b.json")
	assert.True(t, b.IsMissing())
	assert.Equal(t, "1 removed (1 total changes, 0 converted)", result.Summary)
}

func TestCompare_ShapeMismatch(t *testing.T) {
	leftRoot := m(map[string]value.Value{"carName": value.Text("ferrari_488_gt3"), "tyrePressure": ints(53, 53)})
	rightRoot := m(map[string]value.Value{"carName": value.Text("ferrari_488_gt3"), "tyrePressure": ints(53, 53, 55)})

	result, err := Compare(parser.New("a", "", leftRoot), parser.New("b", "", rightRoot))
	require.NoError(t, err)

	leaf := findLeaf(t, result, "tyrePressure")
	assert.Equal(t, StatusShapeMismatch, leaf.Left.Status)
	assert.Equal(t, StatusShapeMismatch, leaf.Right.Status)
	assert.True(t, value.Equal(ints(53, 53), leaf.Left.Display))
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, DiagShapeMismatch, result.Diagnostics[0].Kind)
	assert.Equal(t, "a", result.Diagnostics[0].Source)
}

func TestCompare_UnverifiedPlaceholder(t *testing.T) {
	leftRoot := m(map[string]value.Value{"casterLF": value.Int(4)})
	rightRoot := m(map[string]value.Value{"casterLF": value.Int(9)})

	result, err := Compare(parser.New("a", "bmw_m4_gt4", leftRoot), parser.New("b", "bmw_m4_gt4", rightRoot))
	require.NoError(t, err)

	leaf := findLeaf(t, result, "casterLF")
	assert.True(t, leaf.Left.Unverified)
	assert.True(t, value.Equal(value.Float(8.4), leaf.Left.Display))
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, DiagUnverifiedConversion, result.Diagnostics[0].Kind)
}

func TestCompare_MixedModels(t *testing.T) {
	leftRoot := m(map[string]value.Value{"brakeBias": value.Int(40)})
	rightRoot := m(map[string]value.Value{"brakeBias": value.Int(50)})

	result, err := Compare(parser.New("a", "ferrari_488_gt3", leftRoot), parser.New("b", "audi_r8_lms", rightRoot))
	require.NoError(t, err)

	leaf := findLeaf(t, result, "brakeBias")
	assert.True(t, value.Equal(value.Float(55), leaf.Left.Display), "got %s", leaf.Left.Display)
	assert.True(t, value.Equal(value.Float(60), leaf.Right.Display), "got %s", leaf.Right.Display)
}

func TestCompare_Ignore(t *testing.T) {
	left := parser.New("a.json", "", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("b.json", "", sampleSetup(ints(57, 53, 55, 55), 12))

	result, err := Compare(left, right, WithIgnore("basicSetup.alignment.*"))
	require.NoError(t, err)

	require.Len(t, result.Leaves, 1)
	assert.Equal(t, "basicSetup.tyres.tyrePressure", result.Leaves[0].Path)
	_, ok := result.Tree.Get("basicSetup")
	assert.True(t, ok)
	_, ok = result.Tree.At(value.Path{value.Key("basicSetup"), value.Key("alignment")})
	assert.False(t, ok)
}

func TestCompare_SameIDs(t *testing.T) {
	left := parser.New("race.json", "", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("race.json", "", sampleSetup(ints(53, 53, 55, 55), 11))

	result, err := Compare(left, right)
	require.NoError(t, err)

	assert.Equal(t, "race.json (left)", result.LeftID)
	assert.Equal(t, "race.json (right)", result.RightID)
	leaf := findLeaf(t, result, "basicSetup.alignment.casterLF")
	assert.Equal(t, "race.json (left)", leaf.Left.Source)
}

func TestCompare_Errors(t *testing.T) {
	good := parser.New("a", "", sampleSetup(ints(53, 53, 55, 55), 10))
	list := parser.New("b", "", ints(1, 2))

	_, err := Compare(good, list)
	assert.ErrorIs(t, err, ErrRootNotMap)

	_, err = Compare(nil, good)
	assert.Error(t, err)
}

func TestCompare_Symmetric(t *testing.T) {
	left := parser.New("a.json", "", sampleSetup(ints(53, 53, 55, 55), 10))
	right := parser.New("b.json", "", sampleSetup(ints(57, 53, 55), 12))

	forward, err := Compare(left, right)
	require.NoError(t, err)
	backward, err := Compare(right, left)
	require.NoError(t, err)

	assert.True(t, value.Equal(forward.Tree, backward.Tree))
	require.Equal(t, len(forward.Leaves), len(backward.Leaves))
	for i := range forward.Leaves {
		assert.Equal(t, forward.Leaves[i].Path, backward.Leaves[i].Path)
	}
}

func TestCompare_TwoLeafScenario(t *testing.T) {
	left := parser.New("left.json", "unknown_car", setupWith(ints(53, 55, 55, 55), 10, 10))
	right := parser.New("right.json", "unknown_car", setupWith(ints(57, 55, 55, 55), 12, 10))

	result, err := Compare(left, right)
	require.NoError(t, err)
	require.Len(t, result.Leaves, 2)

	pressure := findLeaf(t, result, "basicSetup.tyres.tyrePressure")
	fl, _ := pressure.Left.Display.Index(int(conversion.FrontLeft))
	fr, _ := pressure.Right.Display.Index(int(conversion.FrontLeft))
	assert.True(t, value.Equal(value.Float(25.6), fl), "got %s", fl)
	assert.True(t, value.Equal(value.Float(26.0), fr), "got %s", fr)

	caster := findLeaf(t, result, "basicSetup.alignment.casterLF")
	assert.Equal(t, StatusUnconverted, caster.Left.Status)
	assert.Equal(t, StatusUnconverted, caster.Right.Status)
	assert.True(t, value.Equal(value.Int(10), caster.Left.Display))
	assert.True(t, value.Equal(value.Int(12), caster.Right.Display))
	assert.Equal(t, "2 modified (2 total changes, 1 converted) [2 diagnostics]", result.Summary)
}
