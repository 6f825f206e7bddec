package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/setup-smith/pkg/conversion"
)

var conversionsCmd = &cobra.Command{
	Use:   "conversions [subject]",
	Short: "Show the raw-to-display conversion formulas",
	Long: `Lists the built-in conversion rules, optionally for one subject
(` + subjectList() + `). With --model shows the formula that applies to
that car for every subject.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConversions,
}

var conversionsModel string

func init() {
	conversionsCmd.Flags().StringVar(&conversionsModel, "model", "", "Car model identifier, e.g. mclaren_720s_gt3")
	rootCmd.AddCommand(conversionsCmd)
}

func runConversions(cmd *cobra.Command, args []string) error {
	subjects := conversion.Subjects()
	if len(args) == 1 {
		subject, err := parseSubject(args[0])
		if err != nil {
			return err
		}
		subjects = []conversion.Subject{subject}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if conversionsModel != "" {
		fmt.Fprintln(tw, "SUBJECT\tFRONT\tREAR\tNOTE")
		for _, subject := range subjects {
			tr, ok := conversion.Lookup(subject, conversionsModel)
			if !ok {
				fmt.Fprintf(tw, "%s\t-\t-\tno formula, raw values shown\n", subject)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", subject, formatAffine(tr.Front), formatAffine(tr.Rear), transformNote(tr))
		}
		return nil
	}

	fmt.Fprintln(tw, "SUBJECT\tMODELS\tFRONT\tREAR\tNOTE")
	for _, subject := range subjects {
		rules := conversion.Rules(subject)
		if len(rules) == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\t-\tno formulas known\n", subject)
			continue
		}
		for _, rule := range rules {
			models := "(default)"
			if !rule.IsDefault() {
				models = strings.Join(rule.Models, ", ")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", subject, models,
				formatAffine(rule.Transform.Front), formatAffine(rule.Transform.Rear), transformNote(rule.Transform))
		}
	}
	return nil
}

func parseSubject(name string) (conversion.Subject, error) {
	for _, s := range conversion.Subjects() {
		if strings.EqualFold(string(s), name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown subject %q (known: %s)", name, subjectList())
}

func subjectList() string {
	names := []string{}
	for _, s := range conversion.Subjects() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

func formatAffine(a conversion.Affine) string {
	if a.Scale == 0 {
		return fmt.Sprintf("%g", a.Offset)
	}
	return fmt.Sprintf("%g + %.4g*raw", a.Offset, a.Scale)
}

func transformNote(t conversion.Transform) string {
	if t.Unverified {
		return "unverified"
	}
	return ""
}
