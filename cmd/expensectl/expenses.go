package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/format"
	"expense-dashboard/internal/models"
	"expense-dashboard/internal/validate"
	"expense-dashboard/internal/views"
)

func (a *app) expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "ex"},
		Short:   "List and manage expenses",
	}
	cmd.AddCommand(a.expensesListCmd(), a.expensesAddCmd(), a.expensesEditCmd(), a.expensesDeleteCmd())
	return cmd
}

func (a *app) expensesListCmd() *cobra.Command {
	var (
		category string
		filters  views.Filters
		page     int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			list := views.NewExpenseList(a.client, a.toasts)
			if category != "" {
				cats, err := a.client.ListCategories(ctx)
				if err != nil {
					return err
				}
				id, err := resolveCategory(cats, category)
				if err != nil {
					return err
				}
				filters.CategoryID = id
			}
			list.Restore(filters, page-1)
			if err := list.Load(ctx); err != nil {
				return err
			}

			st := list.State()
			if len(st.Expenses) == 0 {
				if st.Filters.Active() {
					fmt.Fprintln(a.out, "No expenses match these filters.")
				} else {
					fmt.Fprintln(a.out, "No expenses yet.")
				}
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
			for _, e := range st.Expenses {
				fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s\t%s\n", e.ID, e.Date, e.Category.Icon, e.Category.Name,
					format.Truncate(e.Description, 40), format.Currency(e.Amount))
			}
			tw.Flush()
			fmt.Fprintln(a.out, st.Page.Label())
			if st.Page.Visible() {
				fmt.Fprintf(a.out, "Page %d of %d\n", st.Page.Page+1, st.Page.TotalPages)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category name or id")
	cmd.Flags().StringVar(&filters.StartDate, "from", "", "Earliest date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.EndDate, "to", "", "Latest date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

// expenseFlags are the editable fields of an expense.
type expenseFlags struct {
	amount      string
	category    string
	date        string
	description string
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVar(&f.category, "category", "", "Category name or id")
	cmd.Flags().StringVar(&f.date, "date", "", "Date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
}

// apply overlays the flags that were set onto in.
func (f *expenseFlags) apply(cmd *cobra.Command, in *validate.ExpenseInput, cats []models.Category) error {
	if cmd.Flags().Changed("amount") {
		in.Amount = f.amount
	}
	if cmd.Flags().Changed("category") {
		id, err := resolveCategory(cats, f.category)
		if err != nil {
			return err
		}
		in.CategoryID = strconv.FormatInt(id, 10)
	}
	if cmd.Flags().Changed("date") {
		in.Date = f.date
	}
	if cmd.Flags().Changed("description") {
		in.Description = f.description
	}
	return nil
}

func (a *app) expensesAddCmd() *cobra.Command {
	var f expenseFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			form := views.NewExpenseForm(a.client, a.toasts, models.DateOf(a.now()))
			if err := form.Load(ctx, 0); err != nil {
				return err
			}
			in := form.Input
			if err := f.apply(cmd, &in, form.Categories); err != nil {
				return err
			}
			e, err := form.Submit(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Expense %d: %s on %s (%s)\n", e.ID, format.Currency(e.Amount), e.Date, e.Category.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) expensesEditCmd() *cobra.Command {
	var f expenseFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			form := views.NewExpenseForm(a.client, a.toasts, models.DateOf(a.now()))
			if err := form.Load(ctx, id); err != nil {
				return err
			}
			in := form.Input
			if err := f.apply(cmd, &in, form.Categories); err != nil {
				return err
			}
			e, err := form.Submit(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Expense %d: %s on %s (%s)\n", e.ID, format.Currency(e.Amount), e.Date, e.Category.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) expensesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			form := views.NewExpenseForm(a.client, a.toasts, models.DateOf(a.now()))
			form.ID = id
			return form.Delete(cmd.Context())
		},
	}
}

// resolveCategory accepts a category id or a case-insensitive name.
func resolveCategory(cats []models.Category, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, s) {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}
