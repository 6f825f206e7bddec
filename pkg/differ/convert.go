package differ

import (
	"fmt"

	"github.com/wonderfulspam/setup-smith/pkg/conversion"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

type fieldShape int

const (
	shapeCorners fieldShape = iota // four values, FL FR RL RR
	shapePair                      // two front values, left then right
	shapeScalar
)

func (s fieldShape) String() string {
	switch s {
	case shapeCorners:
		return "a list of 4 per-corner numbers"
	case shapePair:
		return "a list of 2 front numbers"
	default:
		return "a single number"
	}
}

type field struct {
	subject conversion.Subject
	shape   fieldShape
}

// fields maps the terminal key of a setup path to its conversion subject.
var fields = map[string]field{
	"tyrePressure": {conversion.TirePressure, shapeCorners},
	"toe":          {conversion.Toe, shapeCorners},
	"camber":       {conversion.Camber, shapeCorners},
	"staticCamber": {conversion.Camber, shapeCorners},
	"toeOutLinear": {conversion.Camber, shapeCorners},
	"caster":       {conversion.Caster, shapePair},
	"casterLF":     {conversion.Caster, shapeScalar},
	"casterRF":     {conversion.Caster, shapeScalar},
	"rodLength":    {conversion.RodLength, shapeCorners},
	"brakeBias":    {conversion.BrakeBias, shapeScalar},
}

func lookupField(p value.Path) (field, bool) {
	last, ok := p.Last()
	if !ok {
		return field{}, false
	}
	key, ok := last.Key()
	if !ok {
		return field{}, false
	}
	f, ok := fields[key]
	return f, ok
}

// converter applies table to known fields; a nil table converts nothing.
type converter struct {
	table *conversion.Table
}

// leaf builds the bookkeeping entry for one record and converts both sides
// when the record is a known conversion field.
func (c *converter) leaf(rec Record, left, right sideInfo) (Leaf, []Diagnostic) {
	leaf := Leaf{
		Path:  rec.Path.String(),
		Type:  rec.Type(),
		Left:  rawSide(left, rec.Left),
		Right: rawSide(right, rec.Right),
	}

	f, ok := lookupField(rec.Path)
	if !ok || c.table == nil {
		return leaf, nil
	}
	leaf.Subject = f.subject

	var diags []Diagnostic
	for _, side := range []*Side{&leaf.Left, &leaf.Right} {
		if d := c.convertSide(side, f, leaf.Path); d != nil {
			diags = append(diags, *d)
		}
	}
	return leaf, diags
}

type sideInfo struct {
	id    string
	model string
}

func rawSide(info sideInfo, raw value.Value) Side {
	status := StatusRaw
	if raw.IsMissing() {
		status = StatusMissing
	}
	return Side{Source: info.id, Model: info.model, Raw: raw, Display: raw, Status: status}
}

func (c *converter) convertSide(side *Side, f field, path string) *Diagnostic {
	if side.Raw.IsMissing() {
		return nil
	}

	raws, ok := numbers(side.Raw, f.shape)
	if !ok {
		side.Status = StatusShapeMismatch
		return &Diagnostic{
			Kind:    DiagShapeMismatch,
			Path:    path,
			Source:  side.Source,
			Subject: f.subject,
			Message: fmt.Sprintf("expected %s, got %s", f.shape, side.Raw),
		}
	}

	tr, ok := c.table.Lookup(f.subject, side.Model)
	if !ok {
		side.Status = StatusUnconverted
		return &Diagnostic{
			Kind:    DiagUnknownModelConversion,
			Path:    path,
			Source:  side.Source,
			Subject: f.subject,
			Message: fmt.Sprintf("no %s formula for model %q, showing raw value", f.subject, side.Model),
		}
	}

	converted := make([]value.Value, len(raws))
	for i, raw := range raws {
		converted[i] = value.Float(tr.Apply(axleFor(f.shape, i), raw))
	}
	if f.shape == shapeScalar {
		side.Display = converted[0]
	} else {
		side.Display = value.List(converted...)
	}
	side.Status = StatusConverted
	side.Unverified = tr.Unverified

	if tr.Unverified {
		return &Diagnostic{
			Kind:    DiagUnverifiedConversion,
			Path:    path,
			Source:  side.Source,
			Subject: f.subject,
			Message: fmt.Sprintf("%s formula for model %q is an unverified placeholder", f.subject, side.Model),
		}
	}
	return nil
}

// numbers extracts the raw numbers of v if it has the expected shape.
func numbers(v value.Value, shape fieldShape) ([]float64, bool) {
	if shape == shapeScalar {
		n, ok := v.Number()
		if !ok {
			return nil, false
		}
		return []float64{n}, true
	}

	want := conversion.CornerCount
	if shape == shapePair {
		want = 2
	}
	if v.Kind() != value.KindList || v.Len() != want {
		return nil, false
	}

	out := make([]float64, want)
	for i, item := range v.Items() {
		n, ok := item.Number()
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func axleFor(shape fieldShape, i int) conversion.Axle {
	if shape == shapeCorners {
		return conversion.Corner(i).Axle()
	}
	return conversion.Front
}
