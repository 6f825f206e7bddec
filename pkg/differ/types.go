package differ

import (
	"github.com/wonderfulspam/setup-smith/pkg/conversion"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

type DiffType string

const (
	DiffTypeAdded    DiffType = "added"
	DiffTypeRemoved  DiffType = "removed"
	DiffTypeModified DiffType = "modified"
)

// Record is one point where the two trees disagree. A key or index present on
// one side only is reported with value.Missing on the other side.
type Record struct {
	Path  value.Path
	Left  value.Value
	Right value.Value
	// Normalized is set once a trailing list index has been collapsed into
	// the owning list.
	Normalized bool
}

func (r Record) Type() DiffType {
	switch {
	case r.Left.IsMissing():
		return DiffTypeAdded
	case r.Right.IsMissing():
		return DiffTypeRemoved
	default:
		return DiffTypeModified
	}
}

// Status describes what happened to one side of a leaf during conversion.
type Status string

const (
	StatusRaw           Status = "raw"            // not a conversion field
	StatusConverted     Status = "converted"
	StatusUnconverted   Status = "unconverted"    // no formula for this model
	StatusShapeMismatch Status = "shape_mismatch" // conversion field with an unexpected shape
	StatusMissing       Status = "missing"
)

type Side struct {
	Source     string      `json:"source" yaml:"source"`
	Model      string      `json:"model,omitempty" yaml:"model,omitempty"`
	Raw        value.Value `json:"raw" yaml:"raw"`
	Display    value.Value `json:"display" yaml:"display"`
	Status     Status      `json:"status" yaml:"status"`
	Unverified bool        `json:"unverified,omitempty" yaml:"unverified,omitempty"`
}

// Leaf is one entry of the result tree together with its conversion
// bookkeeping.
type Leaf struct {
	Path    string             `json:"path" yaml:"path"`
	Type    DiffType           `json:"type" yaml:"type"`
	Subject conversion.Subject `json:"subject,omitempty" yaml:"subject,omitempty"`
	Left    Side               `json:"left" yaml:"left"`
	Right   Side               `json:"right" yaml:"right"`
}

// Converted reports whether at least one side holds a converted value.
func (l Leaf) Converted() bool {
	return l.Left.Status == StatusConverted || l.Right.Status == StatusConverted
}

type DiagnosticKind string

const (
	DiagShapeMismatch          DiagnosticKind = "shape_mismatch"
	DiagUnknownModelConversion DiagnosticKind = "unknown_model_conversion"
	DiagUnverifiedConversion   DiagnosticKind = "unverified_conversion"
)

type Diagnostic struct {
	Kind    DiagnosticKind     `json:"kind" yaml:"kind"`
	Path    string             `json:"path" yaml:"path"`
	Source  string             `json:"source" yaml:"source"`
	Subject conversion.Subject `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message string             `json:"message" yaml:"message"`
}

type Result struct {
	LeftID      string       `json:"left_id" yaml:"left_id"`
	RightID     string       `json:"right_id" yaml:"right_id"`
	Tree        value.Value  `json:"tree" yaml:"tree"`
	Leaves      []Leaf       `json:"leaves" yaml:"leaves"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	HasChanges  bool         `json:"has_changes" yaml:"has_changes"`
	Summary     string       `json:"summary" yaml:"summary"`
}
