package differ

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ryanuber/go-glob"

	"github.com/wonderfulspam/setup-smith/pkg/conversion"
	"github.com/wonderfulspam/setup-smith/pkg/logging"
	"github.com/wonderfulspam/setup-smith/pkg/parser"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// ErrRootNotMap is returned when either setup's root is not a map.
var ErrRootNotMap = parser.ErrRootNotMap

type options struct {
	ignore  []string
	convert bool
	table   *conversion.Table
	logger  *slog.Logger
}

type Option func(*options)

// WithIgnore drops differences whose path matches any of the glob patterns,
// e.g. "basicSetup.electronics.*" or "*.brakeDuct".
func WithIgnore(patterns ...string) Option {
	return func(o *options) { o.ignore = append(o.ignore, patterns...) }
}

// WithConversions turns display-unit conversion on or off. It is on by
// default.
func WithConversions(enabled bool) Option {
	return func(o *options) { o.convert = enabled }
}

// WithTable replaces the built-in conversion table.
func WithTable(t *conversion.Table) Option {
	return func(o *options) { o.table = t }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Compare diffs two setups and returns the differences as a result tree
// keyed by the setups' IDs, converting known fields with each setup's own
// car model.
func Compare(left, right *parser.Setup, opts ...Option) (*Result, error) {
	o := options{convert: true, table: conversion.Default, logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if left == nil || right == nil {
		return nil, fmt.Errorf("compare: both setups are required")
	}
	if left.Root.Kind() != value.KindMap {
		return nil, fmt.Errorf("%w: %s is %s", ErrRootNotMap, left.ID, left.Root.Kind())
	}
	if right.Root.Kind() != value.KindMap {
		return nil, fmt.Errorf("%w: %s is %s", ErrRootNotMap, right.ID, right.Root.Kind())
	}

	raw := Diff(left.Root, right.Root)
	records := expandAll(NormalizeAll(raw, left.Root, right.Root))
	records = filterIgnored(records, o.ignore)
	o.logger.Debug("diffed setups",
		"left", left.ID, "right", right.ID,
		"raw_records", len(raw), "leaves", len(records))

	table := o.table
	if !o.convert {
		table = nil
	}
	rc := Reconstruct(records, Source{ID: left.ID, Model: left.Model}, Source{ID: right.ID, Model: right.Model}, table)
	for _, d := range rc.Diagnostics {
		o.logger.Debug("conversion diagnostic", "kind", d.Kind, "path", d.Path, "source", d.Source)
	}

	result := &Result{
		LeftID:      rc.LeftID,
		RightID:     rc.RightID,
		Tree:        rc.Tree,
		Leaves:      rc.Leaves,
		Diagnostics: rc.Diagnostics,
	}
	result.HasChanges = len(result.Leaves) > 0
	result.Summary = generateSummary(result)
	return result, nil
}

func filterIgnored(records []Record, patterns []string) []Record {
	if len(patterns) == 0 {
		return records
	}
	out := records[:0:0]
	for _, rec := range records {
		if !ignored(rec.Path.String(), patterns) {
			out = append(out, rec)
		}
	}
	return out
}

func ignored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if glob.Glob(pattern, path) {
			return true
		}
	}
	return false
}

func generateSummary(result *Result) string {
	if !result.HasChanges {
		return "No differences found"
	}

	counts := map[DiffType]int{}
	converted := 0
	for _, leaf := range result.Leaves {
		counts[leaf.Type]++
		if leaf.Converted() {
			converted++
		}
	}

	parts := []string{}
	if n := counts[DiffTypeModified]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", n))
	}
	if n := counts[DiffTypeAdded]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d added", n))
	}
	if n := counts[DiffTypeRemoved]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", n))
	}

	summary := fmt.Sprintf("%s (%d total changes, %d converted)", strings.Join(parts, ", "), len(result.Leaves), converted)
	if len(result.Diagnostics) > 0 {
		summary += fmt.Sprintf(" [%d diagnostics]", len(result.Diagnostics))
	}
	return summary
}
