package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/format"
	"expense-dashboard/internal/views"
)

func (a *app) budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show or set the monthly budget",
	}
	cmd.AddCommand(a.budgetGetCmd(), a.budgetSetCmd())
	return cmd
}

func (a *app) budgetGetCmd() *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the budget of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cursor, err := a.cursor(month, year)
			if err != nil {
				return err
			}
			v := views.NewBudgetView(a.client, a.toasts, cursor)
			if err := v.Load(cmd.Context()); err != nil {
				return err
			}
			a.printBudget(v)
			return nil
		},
	}
	cursorFlags(cmd, &month, &year)
	return cmd
}

func (a *app) budgetSetCmd() *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "set AMOUNT",
		Short: "Set the budget of a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := a.cursor(month, year)
			if err != nil {
				return err
			}
			v := views.NewBudgetView(a.client, a.toasts, cursor)
			if err := v.Save(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printBudget(v)
			return nil
		},
	}
	cursorFlags(cmd, &month, &year)
	return cmd
}

func (a *app) printBudget(v *views.BudgetView) {
	b := v.Budget
	fmt.Fprintf(a.out, "Budget for %s\n", v.Cursor.Label())
	fmt.Fprintf(a.out, "  Amount:    %s\n", format.CurrencyPtr(b.Amount, "Not set"))
	fmt.Fprintf(a.out, "  Spent:     %s\n", format.Currency(b.Spent))
	fmt.Fprintf(a.out, "  Remaining: %s\n", format.CurrencyPtr(b.Remaining, "Not set"))
	if b.Amount != nil {
		fmt.Fprintf(a.out, "  Used:      %.1f%% (%s)\n", v.SpentPercent(), v.Tone())
	}
}
