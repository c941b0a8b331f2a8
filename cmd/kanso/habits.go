package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func (c *cli) habitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "List and manage daily habits",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printHabits(cmd, c.app.HabitService.List())
		},
	}

	var category string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := domain.HabitDraft{Name: args[0], Category: category}
			if err := draft.Validate(); err != nil {
				return err
			}
			h, err := c.app.HabitService.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return c.printHabits(cmd, []domain.Habit{h})
		},
	}
	add.Flags().StringVarP(&category, "category", "c", "health", "habit category")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a habit done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			h, err := c.app.HabitService.ToggleCompletion(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.printHabits(cmd, []domain.Habit{h})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.HabitService.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted habit %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(list, add, toggle, del)
	return cmd
}

func (c *cli) printHabits(cmd *cobra.Command, habits []domain.Habit) error {
	return render(cmd.OutOrStdout(), c.output, habits, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, "ID\tDONE\tNAME\tCATEGORY\tSTREAK")
		for _, h := range habits {
			fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\t%d\n", h.ID, check(h.Completed), h.Name, h.Category, h.Streak)
		}
	})
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
