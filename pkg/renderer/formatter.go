// Package renderer formats comparison results for the terminal and for
// other tools.
package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Jeffail/gabs"
	"gopkg.in/yaml.v3"

	"github.com/wonderfulspam/setup-smith/pkg/batch"
	"github.com/wonderfulspam/setup-smith/pkg/differ"
	"github.com/wonderfulspam/setup-smith/pkg/value"
)

// Formats lists the accepted format names; the empty string means table.
var Formats = []string{"table", "json", "yaml"}

// FormatComparison formats one comparison result.
func FormatComparison(result *differ.Result, format string) (string, error) {
	switch format {
	case "json":
		c, err := resultContainer(result)
		if err != nil {
			return "", err
		}
		return encode(c), nil

	case "yaml":
		return marshalYAML(result)

	case "table", "":
		return formatComparisonTable(result), nil

	default:
		return "", unsupported(format)
	}
}

// FormatBatch formats the pairwise results of a batch run.
func FormatBatch(pairs []batch.Pair, format string) (string, error) {
	switch format {
	case "json":
		c, err := batchContainer(pairs)
		if err != nil {
			return "", err
		}
		return encode(c), nil

	case "yaml":
		return marshalYAML(batchDocument(pairs))

	case "table", "":
		return formatBatchTable(pairs), nil

	default:
		return "", unsupported(format)
	}
}

// FormatValue formats a raw setup tree. The table format is indented YAML,
// which reads best for nested data.
func FormatValue(v value.Value, format string) (string, error) {
	switch format {
	case "json":
		c, err := gabs.Consume(v.Interface())
		if err != nil {
			return "", fmt.Errorf("failed to build JSON document: %w", err)
		}
		return encode(c), nil

	case "yaml", "table", "":
		return marshalYAML(v)

	default:
		return "", unsupported(format)
	}
}

// Summary is a one-line description of a result.
func Summary(result *differ.Result) string {
	return fmt.Sprintf("%s vs %s: %s", result.LeftID, result.RightID, result.Summary)
}

func unsupported(format string) error {
	return fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
}

func resultContainer(result *differ.Result) (*gabs.Container, error) {
	c := gabs.New()

	fields := []struct {
		value interface{}
		path  []string
	}{
		{result.LeftID, []string{"left", "id"}},
		{sideModel(result, true), []string{"left", "model"}},
		{result.RightID, []string{"right", "id"}},
		{sideModel(result, false), []string{"right", "model"}},
		{result.HasChanges, []string{"has_changes"}},
		{result.Summary, []string{"summary"}},
		{result.Tree.Interface(), []string{"tree"}},
	}
	for _, f := range fields {
		if _, err := c.Set(f.value, f.path...); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", strings.Join(f.path, "."), err)
		}
	}

	if _, err := c.Array("leaves"); err != nil {
		return nil, err
	}
	for _, leaf := range result.Leaves {
		if err := c.ArrayAppend(leaf, "leaves"); err != nil {
			return nil, err
		}
	}

	if _, err := c.Array("diagnostics"); err != nil {
		return nil, err
	}
	for _, d := range result.Diagnostics {
		if err := c.ArrayAppend(d, "diagnostics"); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func batchContainer(pairs []batch.Pair) (*gabs.Container, error) {
	c := gabs.New()
	if _, err := c.Array("pairs"); err != nil {
		return nil, err
	}

	for _, p := range pairs {
		entry := gabs.New()
		if _, err := entry.Set(p.Left.ID, "left"); err != nil {
			return nil, err
		}
		if _, err := entry.Set(p.Right.ID, "right"); err != nil {
			return nil, err
		}
		if _, err := entry.Set(p.Changes(), "changes"); err != nil {
			return nil, err
		}
		if p.Err != nil {
			if _, err := entry.Set(p.Err.Error(), "error"); err != nil {
				return nil, err
			}
		} else {
			rc, err := resultContainer(p.Result)
			if err != nil {
				return nil, err
			}
			if _, err := entry.Set(rc.Data(), "result"); err != nil {
				return nil, err
			}
		}
		if err := c.ArrayAppend(entry.Data(), "pairs"); err != nil {
			return nil, err
		}
	}

	if best, ok := batch.Closest(pairs); ok {
		if _, err := c.Set([]string{best.Left.ID, best.Right.ID}, "closest"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// encode writes c as indented JSON, leaving "<missing>" unescaped.
func encode(c *gabs.Container) string {
	return string(c.EncodeJSON(gabs.EncodeOptIndent("", "  "), gabs.EncodeOptHTMLEscape(false)))
}

func marshalYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

type batchEntry struct {
	Left    string         `yaml:"left"`
	Right   string         `yaml:"right"`
	Changes int            `yaml:"changes"`
	Error   string         `yaml:"error,omitempty"`
	Result  *differ.Result `yaml:"result,omitempty"`
}

func batchDocument(pairs []batch.Pair) map[string]interface{} {
	entries := make([]batchEntry, 0, len(pairs))
	for _, p := range pairs {
		e := batchEntry{Left: p.Left.ID, Right: p.Right.ID, Changes: p.Changes(), Result: p.Result}
		if p.Err != nil {
			e.Error = p.Err.Error()
		}
		entries = append(entries, e)
	}

	doc := map[string]interface{}{"pairs": entries}
	if best, ok := batch.Closest(pairs); ok {
		doc["closest"] = []string{best.Left.ID, best.Right.ID}
	}
	return doc
}

func sideModel(result *differ.Result, left bool) string {
	for _, leaf := range result.Leaves {
		if left && leaf.Left.Model != "" {
			return leaf.Left.Model
		}
		if !left && leaf.Right.Model != "" {
			return leaf.Right.Model
		}
	}
	return ""
}

func formatComparisonTable(result *differ.Result) string {
	var buf bytes.Buffer

	buf.WriteString("Setup Comparison\n")
	buf.WriteString("================\n\n")
	buf.WriteString(fmt.Sprintf("  Left:  %s\n", result.LeftID))
	buf.WriteString(fmt.Sprintf("  Right: %s\n", result.RightID))

	if result.HasChanges {
		buf.WriteString("\nDifferences:\n")
		buf.WriteString("------------\n")

		tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		for _, leaf := range result.Leaves {
			fmt.Fprintf(tw, "  [%s]\t%s\t%s\t%s\t%s\n",
				formatDiffType(leaf.Type), leaf.Path,
				formatSide(leaf.Left), formatSide(leaf.Right), formatSubject(leaf))
		}
		tw.Flush()
	}

	if len(result.Diagnostics) > 0 {
		buf.WriteString("\nDiagnostics:\n")
		buf.WriteString("------------\n")
		for _, d := range result.Diagnostics {
			buf.WriteString(fmt.Sprintf("  ! %s (%s): %s\n", d.Path, d.Source, d.Message))
		}
	}

	buf.WriteString(fmt.Sprintf("\nSummary: %s\n", result.Summary))
	return buf.String()
}

func formatBatchTable(pairs []batch.Pair) string {
	var buf bytes.Buffer

	buf.WriteString("Batch Comparison\n")
	buf.WriteString("================\n\n")

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  LEFT\tRIGHT\tCHANGES\tSUMMARY")
	for _, p := range pairs {
		if p.Err != nil {
			fmt.Fprintf(tw, "  %s\t%s\t-\terror: %v\n", p.Left.ID, p.Right.ID, p.Err)
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n", p.Left.ID, p.Right.ID, p.Changes(), p.Result.Summary)
	}
	tw.Flush()

	if best, ok := batch.Closest(pairs); ok {
		buf.WriteString(fmt.Sprintf("\nClosest pair: %s and %s (%d changes)\n", best.Left.ID, best.Right.ID, best.Changes()))
	}
	return buf.String()
}

func formatDiffType(t differ.DiffType) string {
	switch t {
	case differ.DiffTypeAdded:
		return "+"
	case differ.DiffTypeRemoved:
		return "-"
	case differ.DiffTypeModified:
		return "~"
	default:
		return "?"
	}
}

func formatSide(s differ.Side) string {
	text := s.Display.String()
	switch {
	case s.Status == differ.StatusUnconverted:
		text += " (raw)"
	case s.Status == differ.StatusShapeMismatch:
		text += " (unexpected shape)"
	case s.Unverified:
		text += " (unverified)"
	}
	return text
}

func formatSubject(leaf differ.Leaf) string {
	if leaf.Subject == "" {
		return ""
	}
	return string(leaf.Subject)
}
