package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
)

var catalogsCmd = &cobra.Command{
	Use:   "catalogs",
	Short: "Fetch the ITR form, deduction section, and common-error catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout())
		defer cancel()

		client := newAPIClient(logger)

		var (
			forms    *api.ITRFormCatalog
			sections *api.DeductionSectionCatalog
			errs     *api.CommonErrorCatalog
		)

		// The three catalogs are independent; fetch them in parallel.
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			forms, err = client.GetAllForms(egCtx)
			return err
		})
		eg.Go(func() error {
			var err error
			sections, err = client.GetAllSections(egCtx)
			return err
		})
		eg.Go(func() error {
			var err error
			errs, err = client.GetCommonErrors(egCtx)
			return err
		})
		if err := eg.Wait(); err != nil {
			return err
		}

		fmt.Println("## ITR forms")
		if err := printJSON(forms.Forms); err != nil {
			return err
		}
		fmt.Println("\n## Deduction sections")
		if err := printJSON(sections.Sections); err != nil {
			return err
		}
		fmt.Println("\n## Common filing errors")
		return printJSON(errs.CommonErrors)
	},
}
