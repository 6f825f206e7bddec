package conversion

import (
	"errors"
	"fmt"
)

var ErrDuplicateRule = errors.New("duplicate conversion rule")

// Table indexes rules by subject and model.
type Table struct {
	byModel  map[Subject]map[string]Transform
	fallback map[Subject]Transform
	rules    map[Subject][]Rule
}

// NewTable builds a table from rules. A model may appear at most once per
// subject and each subject may have at most one fallback rule.
func NewTable(rules []Rule) (*Table, error) {
	t := &Table{
		byModel:  make(map[Subject]map[string]Transform),
		fallback: make(map[Subject]Transform),
		rules:    make(map[Subject][]Rule),
	}

	for _, rule := range rules {
		if rule.IsDefault() {
			if _, exists := t.fallback[rule.Subject]; exists {
				return nil, fmt.Errorf("%w: second default for %s", ErrDuplicateRule, rule.Subject)
			}
			t.fallback[rule.Subject] = rule.Transform
		} else {
			models := t.byModel[rule.Subject]
			if models == nil {
				models = make(map[string]Transform)
				t.byModel[rule.Subject] = models
			}
			for _, model := range rule.Models {
				if _, exists := models[model]; exists {
					return nil, fmt.Errorf("%w: %s for %s", ErrDuplicateRule, rule.Subject, model)
				}
				models[model] = rule.Transform
			}
		}
		t.rules[rule.Subject] = append(t.rules[rule.Subject], rule)
	}

	return t, nil
}

// MustNewTable is NewTable for static rule sets.
func MustNewTable(rules []Rule) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the transform for subject on model. ok is false when no
// formula is known, in which case the raw value should be shown as is.
func (t *Table) Lookup(subject Subject, model string) (Transform, bool) {
	if t == nil {
		return Transform{}, false
	}
	if tr, ok := t.byModel[subject][model]; ok {
		return tr, true
	}
	tr, ok := t.fallback[subject]
	return tr, ok
}

// Rules returns the rules registered for subject, in registration order.
func (t *Table) Rules(subject Subject) []Rule {
	if t == nil {
		return nil
	}
	src := t.rules[subject]
	out := make([]Rule, len(src))
	copy(out, src)
	return out
}

// Default is the built-in table.
var Default = MustNewTable(builtinRules)

// Lookup consults the built-in table.
func Lookup(subject Subject, model string) (Transform, bool) {
	return Default.Lookup(subject, model)
}

// Rules lists the built-in rules for subject.
func Rules(subject Subject) []Rule {
	return Default.Rules(subject)
}
