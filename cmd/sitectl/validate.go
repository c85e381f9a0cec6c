package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/megamounds/sitetrack-api/internal/importer"
)

type validateReport struct {
	Kind     string                     `json:"kind"`
	Valid    int                        `json:"valid"`
	Rejected int                        `json:"rejected"`
	Errors   []importer.ValidationError `json:"errors"`
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <tasks|resources> <file>",
		Short: "Check a CSV file against the import rules",
		Long: `Run a CSV file through the same validation the import endpoints use
and report which rows would be rejected. Use - to read from stdin.

Examples:
  sitectl validate tasks schedule.csv
  sitectl validate resources resources.csv --json
  sitectl validate tasks schedule.csv --strict
`,
		Args: cobra.ExactArgs(2),
		RunE: runValidate,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("strict", false, "Exit non-zero when any row is rejected")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind, path := args[0], args[1]
	jsonOutput, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	text, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	report := validateReport{Kind: kind}
	switch kind {
	case "tasks":
		res := importer.Tasks(uuid.Nil, text)
		report.Valid, report.Errors = len(res.Records), res.Errors
	case "resources":
		res := importer.Resources(uuid.Nil, text)
		report.Valid, report.Errors = len(res.Records), res.Errors
	default:
		return fmt.Errorf("unknown import kind %q (want tasks or resources)", kind)
	}
	report.Rejected = len(report.Errors)

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "%d %s valid, %d rejected\n", report.Valid, kind, report.Rejected)
		for _, e := range report.Errors {
			fmt.Fprintln(out, "  "+e.Error())
		}
	}

	if strict && report.Rejected > 0 {
		return fmt.Errorf("%d rows rejected", report.Rejected)
	}
	return nil
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(b), nil
}
