package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func (c *cli) addictionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addictions",
		Short: "Track recovery",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tracked addictions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printAddictions(cmd, c.app.AddictionService.List())
		},
	}

	relapse := &cobra.Command{
		Use:   "relapse <id>",
		Short: "Record a relapse and reset the sober streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := c.app.AddictionService.RecordRelapse(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.output == formatTable {
				fmt.Fprintln(cmd.OutOrStdout(), c.app.CoachService.EmergencySupport())
			}
			return c.printAddictions(cmd, []domain.Addiction{a})
		},
	}

	soberDay := &cobra.Command{
		Use:   "sober-day <id>",
		Short: "Add one sober day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := c.app.AddictionService.IncrementSoberDay(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printAddictions(cmd, []domain.Addiction{a})
		},
	}

	cmd.AddCommand(list, relapse, soberDay)
	return cmd
}

func (c *cli) printAddictions(cmd *cobra.Command, addictions []domain.Addiction) error {
	return render(cmd.OutOrStdout(), c.output, addictions, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSEVERITY\tSOBER DAYS\tLAST RELAPSE")
		for _, a := range addictions {
			last := "-"
			if a.LastRelapse != nil {
				last = a.LastRelapse.Format(domain.DateLayout)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", a.ID, a.Name, a.Type, a.Severity, a.DaysSober, last)
		}
	})
}
