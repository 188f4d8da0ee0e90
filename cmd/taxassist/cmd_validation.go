package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

var validationCmd = &cobra.Command{
	Use:   "validation",
	Short: "Cross-check tax data against Form 26AS / AIS",
}

var (
	valUserDataFile   string
	val26ASDataFile   string
	valAISDataFile    string
	valDeclaredSalary float64
	valDeclaredTDS    float64
	val26ASSalary     float64
	val26ASTDS        float64
)

var validationCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate declared tax data and detect errors",
	Long: `Validates self-declared tax data against Form 26AS and AIS
statements. Inputs are JSON files; - reads from stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if valUserDataFile == "" {
			return fmt.Errorf("--user-data is required")
		}

		userData, err := readJSONObject(valUserDataFile)
		if err != nil {
			return err
		}

		req := api.TaxDataCheckRequest{UserData: userData}
		if val26ASDataFile != "" {
			if req.Form26ASData, err = readJSONObject(val26ASDataFile); err != nil {
				return err
			}
		}
		if valAISDataFile != "" {
			if req.AISData, err = readJSONObject(valAISDataFile); err != nil {
				return err
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		result, err := newAPIClient(logger).CheckTaxData(ctx, req)
		if err != nil {
			return err
		}

		fmt.Printf("Status: %s (%d issues, %d critical)\n", result.ValidationStatus, result.TotalCount, result.CriticalCount)
		for _, issue := range result.AllErrors {
			fmt.Printf("\n[%s] %s\n  %s\n", issue.Severity, issue.Type, issue.Message)
			printIssueAmounts(issue)
		}
		return nil
	},
}

var validationForm26ASCmd = &cobra.Command{
	Use:   "form26as",
	Short: "Cross-check declared salary and TDS against Form 26AS",
	Example: `  taxassist validation form26as --declared-salary 1200000 --declared-tds 95000 \
      --26as-salary 1250000 --26as-tds 100000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		result, err := newAPIClient(logger).Validate26AS(ctx, api.Form26ASRequest{
			DeclaredSalary: valDeclaredSalary,
			DeclaredTDS:    valDeclaredTDS,
			Form26ASSalary: val26ASSalary,
			Form26ASTDS:    val26ASTDS,
		})
		if err != nil {
			return err
		}

		if result.IsValid {
			fmt.Println("✓", result.Message)
			return nil
		}
		fmt.Println("✗", result.Message)
		for _, issue := range result.Errors {
			fmt.Printf("\n[%s] %s\n  %s\n", issue.Severity, issue.Type, issue.Message)
			printIssueAmounts(issue)
		}
		return nil
	},
}

var validationCommonErrorsCmd = &cobra.Command{
	Use:   "common-errors",
	Short: "List common tax filing errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		catalog, err := newAPIClient(logger).GetCommonErrors(ctx)
		if err != nil {
			return err
		}
		return printJSON(catalog.CommonErrors)
	},
}

// printIssueAmounts prints the figures attached to an issue. A zero
// amount still prints; only nil (omitted by the backend) is skipped.
func printIssueAmounts(issue api.ValidationIssue) {
	if issue.AmountMissing != nil {
		fmt.Printf("  Amount missing:    ₹%.0f\n", *issue.AmountMissing)
	}
	if issue.Difference != nil {
		fmt.Printf("  Difference:        ₹%.0f\n", *issue.Difference)
	}
	if issue.Excess != nil {
		fmt.Printf("  Excess:            ₹%.0f\n", *issue.Excess)
	}
	if issue.PotentialSavings != nil {
		fmt.Printf("  Potential savings: ₹%.0f\n", *issue.PotentialSavings)
	}
}

// readJSONObject loads a JSON object from a file, or stdin for "-".
func readJSONObject(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return obj, nil
}

func init() {
	validationCheckCmd.Flags().StringVar(&valUserDataFile, "user-data", "", "JSON file with declared tax data (- for stdin)")
	validationCheckCmd.Flags().StringVar(&val26ASDataFile, "form26as-data", "", "JSON file with Form 26AS data")
	validationCheckCmd.Flags().StringVar(&valAISDataFile, "ais-data", "", "JSON file with AIS data")

	validationForm26ASCmd.Flags().Float64Var(&valDeclaredSalary, "declared-salary", 0, "salary declared in the return")
	validationForm26ASCmd.Flags().Float64Var(&valDeclaredTDS, "declared-tds", 0, "TDS claimed in the return")
	validationForm26ASCmd.Flags().Float64Var(&val26ASSalary, "26as-salary", 0, "salary reported in Form 26AS")
	validationForm26ASCmd.Flags().Float64Var(&val26ASTDS, "26as-tds", 0, "TDS reported in Form 26AS")

	validationCmd.AddCommand(validationCheckCmd)
	validationCmd.AddCommand(validationForm26ASCmd)
	validationCmd.AddCommand(validationCommonErrorsCmd)
}
