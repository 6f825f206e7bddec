// Package conversion translates raw setup integers into the units shown in
// the game's setup screen.
//
// Every formula is affine (display = offset + scale*raw) and is keyed by a
// Subject and a car model identifier. Some subjects use different
// coefficients on the front and rear axle. The default table is built once at
// package initialisation and is never modified afterwards, so it can be
// shared freely between goroutines.
package conversion

import "math"

// Subject is a category of setup field with a known raw-to-display formula.
type Subject string

const (
	TirePressure Subject = "tyre_pressure"
	Toe          Subject = "toe"
	Camber       Subject = "camber"
	Caster       Subject = "caster"
	RodLength    Subject = "rod_length"
	BrakeBias    Subject = "brake_bias"
)

var allSubjects = []Subject{TirePressure, Toe, Camber, Caster, RodLength, BrakeBias}

// Subjects returns every known subject in a stable order.
func Subjects() []Subject {
	out := make([]Subject, len(allSubjects))
	copy(out, allSubjects)
	return out
}

// Axle selects which half of a Transform applies.
type Axle int

const (
	Front Axle = iota
	Rear
)

func (a Axle) String() string {
	if a == Rear {
		return "rear"
	}
	return "front"
}

// Corner is a wheel position. Per-corner arrays in setup files are ordered
// front-left, front-right, rear-left, rear-right.
type Corner int

const (
	FrontLeft Corner = iota
	FrontRight
	RearLeft
	RearRight
)

// CornerCount is the length of a per-corner array.
const CornerCount = 4

var cornerNames = [CornerCount]string{"front_left", "front_right", "rear_left", "rear_right"}

func (c Corner) String() string {
	if c < 0 || int(c) >= CornerCount {
		return "corner(?)"
	}
	return cornerNames[c]
}

// Axle returns the axle a corner belongs to.
func (c Corner) Axle() Axle {
	if c >= RearLeft {
		return Rear
	}
	return Front
}

// Affine is display = Offset + Scale*raw.
type Affine struct {
	Offset float64 `json:"offset" yaml:"offset"`
	Scale  float64 `json:"scale" yaml:"scale"`
}

func (a Affine) Apply(raw float64) float64 {
	return a.Offset + a.Scale*raw
}

// Precision is the number of decimals kept in converted values.
const Precision = 2

// Transform converts one raw value. Unverified marks coefficients that were
// never checked against the game and should be shown with a caveat.
type Transform struct {
	Front      Affine `json:"front" yaml:"front"`
	Rear       Affine `json:"rear" yaml:"rear"`
	Unverified bool   `json:"unverified,omitempty" yaml:"unverified,omitempty"`
}

// Apply converts raw for the given axle and rounds to Precision decimals.
func (t Transform) Apply(axle Axle, raw float64) float64 {
	coeff := t.Front
	if axle == Rear {
		coeff = t.Rear
	}
	return Round(coeff.Apply(raw))
}

// Round rounds x to Precision decimals.
func Round(x float64) float64 {
	scale := math.Pow10(Precision)
	return math.Round(x*scale) / scale
}

func uniform(offset, scale float64) Transform {
	a := Affine{Offset: offset, Scale: scale}
	return Transform{Front: a, Rear: a}
}

func split(front, rear Affine) Transform {
	return Transform{Front: front, Rear: rear}
}

// placeholder is a flat value used where the real formula is unknown.
func placeholder(constant float64) Transform {
	t := uniform(constant, 0)
	t.Unverified = true
	return t
}

// Rule binds a Transform to a subject for a set of models. A rule with no
// models is the fallback for every model not listed elsewhere.
type Rule struct {
	Subject   Subject   `json:"subject" yaml:"subject"`
	Models    []string  `json:"models,omitempty" yaml:"models,omitempty"`
	Transform Transform `json:"transform" yaml:"transform"`
}

// IsDefault reports whether r applies to every unlisted model.
func (r Rule) IsDefault() bool { return len(r.Models) == 0 }
