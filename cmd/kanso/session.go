package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func (c *cli) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in with a demo account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := c.app.AuthService.Login(cmd.Context(), args[0], password)
			if !ok {
				return domain.ErrInvalidCredentials
			}
			return c.printUser(cmd, user)
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.AuthService.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.AuthService.Current()
			if errors.Is(err, domain.ErrNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
				return nil
			}
			if err != nil {
				return err
			}
			return c.printUser(cmd, user)
		},
	}
}

func (c *cli) printUser(cmd *cobra.Command, user domain.User) error {
	return render(cmd.OutOrStdout(), c.output, user, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tTHEME")
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", user.ID, user.Username, user.Name, user.Theme)
	})
}

func (c *cli) coachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Talk to the wellness coach",
	}

	ask := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the coach a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer, err := c.app.CoachService.Ask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name := c.app.CoachService.Settings().Name
			return render(cmd.OutOrStdout(), c.output, map[string]string{"coach": name, "answer": answer}, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "%s:\t%s\n", name, answer)
			})
		},
	}

	cmd.AddCommand(ask)
	return cmd
}
