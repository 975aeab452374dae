// Command expensectl is a terminal client for the expense API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"expense-dashboard/internal/api"
	"expense-dashboard/internal/log"
	"expense-dashboard/internal/session"
	"expense-dashboard/internal/toast"
	"expense-dashboard/internal/validate"
	"expense-dashboard/internal/views"
)

const msgSessionExpired = "Your session has expired. Please log in again."

func main() {
	if err := execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line. Toasts raised along the way are printed
// before any error.
func execute(args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{in: in, out: out, now: time.Now}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := root.ExecuteContext(ctx)
	a.flushToasts()
	if err != nil {
		fmt.Fprintf(errOut, "Error: %s\n", describe(err))
	}
	return err
}

// app is the state shared by every command of one invocation.
type app struct {
	apiURL      string
	sessionFile string
	verbose     bool

	in  io.Reader
	out io.Writer
	now func() time.Time

	store  *session.Store
	client *api.Client
	toasts *toast.Center
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "expensectl",
		Short:         "Track expenses from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.open()
		},
	}

	defaultURL := os.Getenv("API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", defaultURL, "Base URL of the expense server")
	root.PersistentFlags().StringVar(&a.sessionFile, "session-file", "", "Where the login is kept (default: user config dir)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log API calls")

	root.AddCommand(
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.expensesCmd(),
		a.categoriesCmd(),
		a.budgetCmd(),
		a.chartCmd(),
	)
	return root
}

// open loads the session and builds the API client.
func (a *app) open() error {
	path := a.sessionFile
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := session.Open(path)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	logger := log.New(log.Config{Level: log.ParseLevel(level), Component: log.ComponentCLI, Output: os.Stderr})

	a.store = store
	a.toasts = toast.NewCenter()
	a.client = api.New(a.apiURL,
		api.WithSession(store),
		api.WithLogger(logger.WithComponent(log.ComponentClient)),
		api.WithUnauthorizedHandler(func() { a.toasts.Info(msgSessionExpired) }),
	)
	return nil
}

// flushToasts prints pending notifications.
func (a *app) flushToasts() {
	if a.toasts == nil {
		return
	}
	for _, t := range a.toasts.Drain() {
		mark := "•"
		switch t.Kind {
		case toast.Success:
			mark = "✓"
		case toast.Error:
			mark = "✗"
		}
		fmt.Fprintf(a.out, "%s %s\n", mark, t.Message)
	}
}

// describe turns an error into the text shown to the user.
func describe(err error) string {
	var fields validate.Errors
	if errors.As(err, &fields) {
		lines := make([]string, 0, len(fields))
		for _, f := range []string{
			validate.FieldEmail, validate.FieldPassword, validate.FieldConfirmPassword,
			validate.FieldName, validate.FieldAmount, validate.FieldCategory,
			validate.FieldDate, validate.FieldDescription,
		} {
			if msg, ok := fields[f]; ok {
				lines = append(lines, f+": "+msg)
			}
		}
		return strings.Join(lines, "\n")
	}
	if msg := views.MessageOf(err); msg != "" {
		return msg
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "not logged in; run 'expensectl login'"
	}
	return err.Error()
}

// cursorFlags registers --month and --year, defaulting to the current
// month.
func cursorFlags(cmd *cobra.Command, month, year *int) {
	cmd.Flags().IntVar(month, "month", 0, "Month (1-12), default current")
	cmd.Flags().IntVar(year, "year", 0, "Year, default current")
}

func (a *app) cursor(month, year int) (views.MonthCursor, error) {
	c := views.CursorOf(a.now())
	if month != 0 {
		c.Month = month
	}
	if year != 0 {
		c.Year = year
	}
	if !c.Valid() {
		return c, fmt.Errorf("month must be between 1 and 12")
	}
	return c, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
