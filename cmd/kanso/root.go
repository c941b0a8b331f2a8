package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-wellness/internal/app"
	"github.com/comitanigiacomo/kanso-wellness/internal/config"
	"github.com/comitanigiacomo/kanso-wellness/internal/logging"
)

type opener func(ctx context.Context) (*app.App, error)

type cli struct {
	output  string
	verbose bool
	open    opener
	app     *app.App
}

// newRootCmd builds the command tree. A nil open loads config from the
// environment and opens the configured store.
func newRootCmd(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:           "kanso",
		Short:         "Kanso wellness tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(c.output); err != nil {
				return err
			}
			if c.open == nil {
				c.open = c.defaultOpener
			}
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app == nil {
				return nil
			}
			if err := c.app.Close(context.WithoutCancel(cmd.Context())); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: some changes were not saved:", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&c.output, "output", "o", formatTable, "output format: table, json or yaml")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		c.habitsCmd(),
		c.mealsCmd(),
		c.supplementsCmd(),
		c.addictionsCmd(),
		c.dashboardCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.coachCmd(),
	)
	return root
}

func (c *cli) defaultOpener(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if c.verbose {
		if logger, err = logging.New("debug", "console"); err != nil {
			return nil, err
		}
	}
	return app.New(ctx, cfg, logger)
}
