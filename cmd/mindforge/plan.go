package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/mindforge/internal/models"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect the weekly study plan",
	}
	cmd.AddCommand(newPlanGenerateCmd(), newPlanShowCmd(), newPlanResetCmd())
	return cmd
}

func newPlanGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Distribute the subjects over the weeks up to the deadline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var deadline *time.Time
			if raw, _ := cmd.Flags().GetString("deadline"); raw != "" {
				t, err := time.ParseInLocation(models.DayKeyLayout, raw, time.Local)
				if err != nil {
					return fmt.Errorf("deadline must be YYYY-MM-DD: %q", raw)
				}
				deadline = &t
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.Plan.Generate(cmd.Context(), deadline)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d weeks until %s\n", len(plan.Weeks), plan.Deadline.Format(models.DayKeyLayout))
			for i, w := range plan.Weeks {
				fmt.Fprintf(out, "  [%d] %s  %s..%s  %.0fh\n", i, w.ID,
					w.Start.Format(models.DayKeyLayout), w.End.Format(models.DayKeyLayout), w.TotalHours)
			}
			return nil
		},
	}
	cmd.Flags().String("deadline", "", "Deadline as YYYY-MM-DD (defaults to the stored one)")
	return cmd
}

func newPlanShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [week]",
		Short: "Show one week of the plan (the first when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("week must be an index: %q", args[0])
				}
				index = n
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			week, err := a.Plan.Week(cmd.Context(), index)
			if err != nil {
				return err
			}
			printWeek(cmd.OutOrStdout(), week)
			return nil
		},
	}
}

func printWeek(out io.Writer, w *models.WeekBlock) {
	fmt.Fprintf(out, "Week %s: %s..%s  %.1fh planned, %.1fh done\n", w.ID,
		w.Start.Format(models.DayKeyLayout), w.End.Format(models.DayKeyLayout), w.TotalHours, w.CompletedHours)
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, d := range w.Days {
		mark := " "
		if d.Completed {
			mark = "x"
		}
		parts := make([]string, 0, len(d.Subjects))
		for _, s := range d.Subjects {
			parts = append(parts, fmt.Sprintf("%s %.0fh", s.Name, s.Hours))
		}
		fmt.Fprintf(out, "[%s] %d %s  %4.1fh  %s\n", mark, d.Day, time.Weekday(d.Day).String()[:3], d.Hours, strings.Join(parts, ", "))
	}
}

func newPlanResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every subject, the deadline and all weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Plan.Reset(cmd.Context(), confirmerFor(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan reset")
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
