package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/charts"
	"expense-dashboard/internal/colors"
)

func (a *app) chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render dashboard charts as PNG files",
	}
	cmd.AddCommand(a.chartBreakdownCmd(), a.chartTrendCmd())
	return cmd
}

func (a *app) chartBreakdownCmd() *cobra.Command {
	var (
		month, year int
		out         string
	)
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Pie chart of spending by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cursor, err := a.cursor(month, year)
			if err != nil {
				return err
			}
			items, err := a.client.ByCategory(cmd.Context(), cursor.Month, cursor.Year)
			if err != nil {
				return err
			}
			names := make([]string, len(items))
			for i, it := range items {
				names[i] = it.Category.Name
			}
			png, err := charts.Breakdown(items, colors.ColorMap(names))
			return a.writeChart(out, png, err)
		},
	}
	cursorFlags(cmd, &month, &year)
	cmd.Flags().StringVarP(&out, "out", "o", "breakdown.png", "Output file")
	return cmd
}

func (a *app) chartTrendCmd() *cobra.Command {
	var (
		year int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Bar chart of monthly spending over a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cursor, err := a.cursor(0, year)
			if err != nil {
				return err
			}
			items, err := a.client.MonthlyTrend(cmd.Context(), cursor.Year)
			if err != nil {
				return err
			}
			png, err := charts.Trend(items, cursor.Year)
			return a.writeChart(out, png, err)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year, default current")
	cmd.Flags().StringVarP(&out, "out", "o", "trend.png", "Output file")
	return cmd
}

func (a *app) writeChart(path string, png []byte, err error) error {
	if errors.Is(err, charts.ErrNoData) {
		fmt.Fprintln(a.out, "Nothing to chart for this period.")
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}
