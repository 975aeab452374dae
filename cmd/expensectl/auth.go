package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/models"
	"expense-dashboard/internal/prompt"
	"expense-dashboard/internal/views"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ask(&email, &password); err != nil {
				return err
			}
			user, err := views.Login(cmd.Context(), a.client, a.store, a.toasts, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prompted := password == ""
			if err := a.ask(&email, &password); err != nil {
				return err
			}
			confirm := password
			if prompted {
				var err error
				if confirm, err = prompt.Password(a.in, a.out, "Confirm password: "); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}
			return views.Register(cmd.Context(), a.client, a.toasts, email, password, confirm)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted twice when omitted)")
	return cmd
}

// ask prompts for whichever credentials were not given as flags.
func (a *app) ask(email, password *string) error {
	if strings.TrimSpace(*email) == "" {
		fmt.Fprint(a.out, "Email: ")
		line, err := prompt.Line(a.in)
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		*email = line
	}
	if *password == "" {
		pw, err := prompt.Password(a.in, a.out, "Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		*password = pw
	}
	return nil
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := views.Logout(a.store); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			printUser(a, user)
			return nil
		},
	}
}

func printUser(a *app, u models.User) {
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
}
