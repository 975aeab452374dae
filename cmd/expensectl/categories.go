package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/views"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List and manage categories",
	}
	cmd.AddCommand(a.categoriesListCmd(), a.categoriesAddCmd(), a.categoriesDeleteCmd())
	return cmd
}

func (a *app) categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List default and custom categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := views.NewCategories(a.client, a.toasts)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tKIND")
			for _, cat := range c.Defaults() {
				fmt.Fprintf(tw, "%d\t%s %s\tdefault\n", cat.ID, cat.Icon, cat.Name)
			}
			for _, cat := range c.Custom() {
				fmt.Fprintf(tw, "%d\t%s %s\tcustom\n", cat.ID, cat.Icon, cat.Name)
			}
			return tw.Flush()
		},
	}
}

func (a *app) categoriesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a custom category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := views.NewCategories(a.client, a.toasts)
			return c.Add(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *app) categoriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a custom category; its expenses move to Other",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return views.NewCategories(a.client, a.toasts).Delete(cmd.Context(), id)
		},
	}
}
