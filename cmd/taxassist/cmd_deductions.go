package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

var deductionsCmd = &cobra.Command{
	Use:   "deductions",
	Short: "Deduction suggestions and tax calculation",
}

var (
	dedIncomeSources   []string
	dedAge             int
	dedHomeLoan        bool
	dedEducationLoan   bool
	dedHealthInsurance bool
	dedSalaried        bool
	dedRegime          string
	dedTotalIncome     float64
	dedAmounts         map[string]string
)

var deductionsSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest applicable deduction sections for a profile",
	Example: `  taxassist deductions suggest --income salary --salaried --regime old
  taxassist deductions suggest --income salary --age 62 --health-insurance`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		req := api.DeductionSuggestionRequest{
			IncomeSources:      dedIncomeSources,
			HasHomeLoan:        dedHomeLoan,
			HasEducationLoan:   dedEducationLoan,
			HasHealthInsurance: dedHealthInsurance,
			IsSalaried:         dedSalaried,
			TaxRegime:          dedRegime,
		}
		if cmd.Flags().Changed("age") {
			req.Age = &dedAge
		}

		result, err := newAPIClient(logger).GetSuggestions(ctx, req)
		if err != nil {
			return err
		}

		fmt.Printf("%d applicable deductions (%s regime)\n\n", result.Count, result.TaxRegime)
		for _, d := range result.Deductions {
			switch {
			case d.MaxLimit != nil:
				fmt.Printf("  %-14s up to ₹%-10.0f %s\n", d.Section, *d.MaxLimit, d.Description)
			case d.Amount != nil:
				fmt.Printf("  %-14s ₹%-10.0f %s\n", d.Section, *d.Amount, d.Description)
			default:
				fmt.Printf("  %-14s %s\n", d.Section, d.Description)
			}
		}
		fmt.Printf("\nTotal potential deduction: ₹%.0f\n", result.TotalPotentialDeduction)
		if result.Note != "" {
			fmt.Println(result.Note)
		}
		return nil
	},
}

var deductionsSectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List all statutory deduction sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		catalog, err := newAPIClient(logger).GetAllSections(ctx)
		if err != nil {
			return err
		}
		if err := printJSON(catalog.Sections); err != nil {
			return err
		}
		if catalog.Note != "" {
			fmt.Println(catalog.Note)
		}
		return nil
	},
}

var deductionsCalcCmd = &cobra.Command{
	Use:   "calculate-tax",
	Short: "Calculate tax for an income and deduction set",
	Example: `  taxassist deductions calculate-tax --total-income 1200000 --regime old \
      --deduction 80C=150000 --deduction 80D=25000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("total-income") {
			return fmt.Errorf("--total-income is required")
		}

		deductions := make(map[string]float64, len(dedAmounts))
		for section, raw := range dedAmounts {
			var amount float64
			if _, err := fmt.Sscanf(raw, "%f", &amount); err != nil {
				return fmt.Errorf("invalid deduction amount %q for %s", raw, section)
			}
			deductions[section] = amount
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		req := api.TaxCalculationRequest{
			TotalIncome: dedTotalIncome,
			Deductions:  deductions,
			TaxRegime:   dedRegime,
		}
		if cmd.Flags().Changed("age") {
			req.Age = &dedAge
		}

		result, err := newAPIClient(logger).CalculateTax(ctx, req)
		if err != nil {
			return err
		}

		fmt.Printf("Regime:            %s\n", result.Regime)
		fmt.Printf("Total income:      ₹%.0f\n", result.TotalIncome)
		fmt.Printf("Total deductions:  ₹%.0f\n", result.TotalDeductions)
		fmt.Printf("Taxable income:    ₹%.0f\n", result.TaxableIncome)
		fmt.Printf("Tax before rebate: ₹%.0f\n", result.TaxBeforeRebate)
		fmt.Printf("Rebate (87A):      ₹%.0f\n", result.Rebate87A)
		fmt.Printf("Final tax:         ₹%.0f (%.2f%% effective)\n", result.FinalTax, result.EffectiveTaxRate)
		return nil
	},
}

func init() {
	deductionsSuggestCmd.Flags().StringSliceVar(&dedIncomeSources, "income", nil, "income sources")
	deductionsSuggestCmd.Flags().IntVar(&dedAge, "age", 0, "age in years")
	deductionsSuggestCmd.Flags().BoolVar(&dedHomeLoan, "home-loan", false, "has a home loan")
	deductionsSuggestCmd.Flags().BoolVar(&dedEducationLoan, "education-loan", false, "has an education loan")
	deductionsSuggestCmd.Flags().BoolVar(&dedHealthInsurance, "health-insurance", false, "pays health insurance premiums")
	deductionsSuggestCmd.Flags().BoolVar(&dedSalaried, "salaried", false, "is salaried")
	deductionsSuggestCmd.Flags().StringVar(&dedRegime, "regime", "new", "tax regime (new or old)")

	deductionsCalcCmd.Flags().Float64Var(&dedTotalIncome, "total-income", 0, "total annual income")
	deductionsCalcCmd.Flags().StringToStringVar(&dedAmounts, "deduction", nil, "deduction amount as section=amount (repeatable)")
	deductionsCalcCmd.Flags().StringVar(&dedRegime, "regime", "new", "tax regime (new or old)")
	deductionsCalcCmd.Flags().IntVar(&dedAge, "age", 0, "age in years")

	deductionsCmd.AddCommand(deductionsSuggestCmd)
	deductionsCmd.AddCommand(deductionsSectionsCmd)
	deductionsCmd.AddCommand(deductionsCalcCmd)
}
