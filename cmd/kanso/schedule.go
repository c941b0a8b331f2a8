package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func (c *cli) mealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meals",
		Short: "Show planned meals",
	}

	var date string
	list := &cobra.Command{
		Use:   "list",
		Short: "List meals, optionally for one date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			meals := c.app.MealService.List()
			if date != "" {
				meals = c.app.MealService.ForDate(date)
			}
			return render(cmd.OutOrStdout(), c.output, meals, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tDONE\tDATE\tTIME\tNAME\tKCAL\tFOODS")
				for _, m := range meals {
					fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s\t%.0f\t%s\n",
						m.ID, check(m.Completed), m.ScheduledDate, m.ScheduledTime, m.Name, m.Calories, strings.Join(m.Foods, ", "))
				}
			})
		},
	}
	list.Flags().StringVar(&date, "date", "", "only meals scheduled on YYYY-MM-DD")

	cmd.AddCommand(list)
	return cmd
}

func (c *cli) supplementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplements",
		Short: "Show and check off supplements",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List supplements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printSupplements(cmd, c.app.SupplementService.List())
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a supplement taken or not taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := c.app.SupplementService.ToggleCompletion(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printSupplements(cmd, []domain.Supplement{s})
		},
	}

	cmd.AddCommand(list, toggle)
	return cmd
}

func (c *cli) printSupplements(cmd *cobra.Command, supplements []domain.Supplement) error {
	return render(cmd.OutOrStdout(), c.output, supplements, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tDONE\tTIME\tNAME\tDOSE\tSTREAK")
		for _, s := range supplements {
			fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%s %s\t%d\n",
				s.ID, check(s.Completed), s.ScheduledTime, s.Name, s.Dosage, s.Unit, s.Streak)
		}
	})
}

func (c *cli) dashboardCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's schedule and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := c.app.StatsService.Dashboard(date)
			return render(cmd.OutOrStdout(), c.output, d, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Schedule for %s\n", d.Date)
				for _, item := range d.Schedule {
					fmt.Fprintf(tw, "  %s\t[%s]\t%s\t%s\t%s\n", item.ScheduledTime, check(item.Completed), item.Kind, item.Name, item.Detail)
				}
				fmt.Fprintf(tw, "Habits\t%d/%d\n", d.Summary.Habits.Completed, d.Summary.Habits.Total)
				fmt.Fprintf(tw, "Meals\t%d/%d\n", d.Summary.Meals.Completed, d.Summary.Meals.Total)
				fmt.Fprintf(tw, "Supplements\t%d/%d\n", d.Summary.Supplements.Completed, d.Summary.Supplements.Total)
				fmt.Fprintf(tw, "Sober days\t%d (longest %d)\n", d.Recovery.TotalSoberDays, d.Recovery.LongestStreak)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to show as YYYY-MM-DD (default today)")
	return cmd
}
