package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

var itrCmd = &cobra.Command{
	Use:   "itr",
	Short: "ITR form determination and validation",
}

var (
	itrIncomeSources  []string
	itrTotalIncome    float64
	itrIsDirector     bool
	itrForeignAssets  bool
	itrHouseCount     int
	itrCapitalGains   bool
	itrIsBusiness     bool
	itrIsProfession   bool
	itrTurnover       float64
	itrProfIncome     float64
	itrUsePresumptive bool
	itrSelected       string
)

var itrDetermineCmd = &cobra.Command{
	Use:   "determine",
	Short: "Determine the appropriate ITR form for an income profile",
	Example: `  taxassist itr determine --income salary --total-income 1200000
  taxassist itr determine --income salary,rental --house-count 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		req := api.ITRDeterminationRequest{
			IncomeSources:        itrIncomeSources,
			IsDirector:           itrIsDirector,
			HasForeignAssets:     itrForeignAssets,
			HousePropertiesCount: itrHouseCount,
			HasCapitalGains:      itrCapitalGains,
			IsBusiness:           itrIsBusiness,
			IsProfession:         itrIsProfession,
			UsePresumptive:       itrUsePresumptive,
		}
		if cmd.Flags().Changed("total-income") {
			req.TotalIncome = &itrTotalIncome
		}
		if cmd.Flags().Changed("turnover") {
			req.BusinessTurnover = &itrTurnover
		}
		if cmd.Flags().Changed("professional-income") {
			req.ProfessionalIncome = &itrProfIncome
		}

		result, err := newAPIClient(logger).DetermineForm(ctx, req)
		if err != nil {
			return err
		}

		logger.Debug("form determined", zap.String("form", result.Form))

		fmt.Printf("Recommended form: %s (confidence: %s)\n\n", result.Form, result.Confidence)
		fmt.Println(result.Reasoning)
		if len(result.RequiredDocuments) > 0 {
			fmt.Println("\nRequired documents:")
			for _, doc := range result.RequiredDocuments {
				fmt.Println("  -", doc)
			}
		}
		return nil
	},
}

var itrFormsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List all ITR form variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		catalog, err := newAPIClient(logger).GetAllForms(ctx)
		if err != nil {
			return err
		}
		return printJSON(catalog.Forms)
	},
}

var itrValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether a selected ITR form fits an income profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if itrSelected == "" {
			return fmt.Errorf("--selected is required")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		req := api.ITRValidationRequest{
			SelectedITR:      itrSelected,
			IncomeSources:    itrIncomeSources,
			IsDirector:       itrIsDirector,
			HasForeignAssets: itrForeignAssets,
			HasCapitalGains:  itrCapitalGains,
		}
		if cmd.Flags().Changed("total-income") {
			req.TotalIncome = &itrTotalIncome
		}

		result, err := newAPIClient(logger).ValidateSelection(ctx, req)
		if err != nil {
			return err
		}

		if result.IsValid {
			fmt.Printf("✓ %s is appropriate.\n", result.SelectedITR)
		} else {
			fmt.Printf("✗ %s is not the best fit; recommended: %s\n", result.SelectedITR, result.RecommendedITR)
		}
		fmt.Println(result.Message)
		return nil
	},
}

// printJSON pretty-prints a raw or structured value to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			_, werr := os.Stdout.Write(raw)
			return werr
		}
		return enc.Encode(decoded)
	}
	return enc.Encode(v)
}

func init() {
	for _, cmd := range []*cobra.Command{itrDetermineCmd, itrValidateCmd} {
		cmd.Flags().StringSliceVar(&itrIncomeSources, "income", nil, "income sources (salary, business, freelance, rental)")
		cmd.Flags().Float64Var(&itrTotalIncome, "total-income", 0, "total annual income")
		cmd.Flags().BoolVar(&itrIsDirector, "director", false, "is a company director")
		cmd.Flags().BoolVar(&itrForeignAssets, "foreign-assets", false, "holds foreign assets")
		cmd.Flags().BoolVar(&itrCapitalGains, "capital-gains", false, "has capital gains")
	}
	itrDetermineCmd.Flags().IntVar(&itrHouseCount, "house-count", 0, "number of house properties")
	itrDetermineCmd.Flags().BoolVar(&itrIsBusiness, "business", false, "has business income")
	itrDetermineCmd.Flags().BoolVar(&itrIsProfession, "profession", false, "has professional income")
	itrDetermineCmd.Flags().Float64Var(&itrTurnover, "turnover", 0, "business turnover")
	itrDetermineCmd.Flags().Float64Var(&itrProfIncome, "professional-income", 0, "professional income")
	itrDetermineCmd.Flags().BoolVar(&itrUsePresumptive, "presumptive", false, "use presumptive taxation")
	itrValidateCmd.Flags().StringVar(&itrSelected, "selected", "", "ITR form to validate (e.g. ITR-1)")

	itrCmd.AddCommand(itrDetermineCmd)
	itrCmd.AddCommand(itrFormsCmd)
	itrCmd.AddCommand(itrValidateCmd)
}
