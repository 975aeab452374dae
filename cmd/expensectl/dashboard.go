package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/format"
	"expense-dashboard/internal/views"
)

func (a *app) dashboardCmd() *cobra.Command {
	var month, year int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cursor, err := a.cursor(month, year)
			if err != nil {
				return err
			}
			d := views.NewDashboard(cmd.Context(), a.client, cursor)
			defer d.Close()
			d.Load()
			return a.printDashboard(d.Snapshot())
		},
	}
	cursorFlags(cmd, &month, &year)
	return cmd
}

func (a *app) printDashboard(st views.DashboardState) error {
	for _, err := range []error{st.Summary.Err, st.Breakdown.Err, st.Trend.Err, st.Recent.Err} {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
	}

	fmt.Fprintf(a.out, "== %s ==\n\n", st.Cursor.Label())

	fmt.Fprintln(a.out, "Summary")
	if st.Summary.Failed() {
		fmt.Fprintln(a.out, "  Failed to load.")
	} else {
		s := st.Summary.Data
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "  Total spent\t%s\n", format.Currency(s.TotalSpent))
		fmt.Fprintf(tw, "  Transactions\t%d\n", s.TransactionCount)
		top := "None"
		if s.TopCategory != nil {
			top = fmt.Sprintf("%s %s (%s)", s.TopCategory.Icon, s.TopCategory.Name, format.Currency(s.TopCategory.Amount))
		}
		fmt.Fprintf(tw, "  Top category\t%s\n", top)
		fmt.Fprintf(tw, "  Budget\t%s\n", format.CurrencyPtr(s.BudgetAmount, "Not set"))
		remaining := format.CurrencyPtr(s.BudgetRemaining, "Not set")
		switch views.BudgetRemainingTone(s) {
		case views.TonePositive:
			remaining += " (on track)"
		case views.ToneNegative:
			remaining += " (over budget)"
		}
		fmt.Fprintf(tw, "  Remaining\t%s\n", remaining)
		tw.Flush()
	}

	fmt.Fprintln(a.out, "\nBy category")
	switch {
	case st.Breakdown.Failed():
		fmt.Fprintln(a.out, "  Failed to load.")
	case len(st.Breakdown.Data) == 0:
		fmt.Fprintln(a.out, "  No expenses this month.")
	default:
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, b := range st.Breakdown.Data {
			fmt.Fprintf(tw, "  %s %s\t%s\t%.1f%%\t%s\n", b.Category.Icon, b.Category.Name,
				format.Currency(b.TotalAmount), b.Percentage, st.Colors[b.Category.Name])
		}
		tw.Flush()
	}

	fmt.Fprintf(a.out, "\nTrend %d\n", st.Cursor.Year)
	if st.Trend.Failed() {
		fmt.Fprintln(a.out, "  Failed to load.")
	} else {
		for _, t := range st.Trend.Data {
			fmt.Fprintf(a.out, "  %s %12s\n", format.ShortMonthName(t.Month), format.Currency(t.TotalSpent))
		}
	}

	fmt.Fprintln(a.out, "\nRecent expenses")
	switch {
	case st.Recent.Failed():
		fmt.Fprintln(a.out, "  Failed to load.")
	case len(st.Recent.Data) == 0:
		fmt.Fprintln(a.out, "  No expenses yet.")
	default:
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, e := range st.Recent.Data {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", format.ShortDate(e.Date), e.Category.Name,
				format.Truncate(e.Description, 40), format.Currency(e.Amount))
		}
		tw.Flush()
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
	return nil
}
