package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/vytor/mindforge/internal/models"
)

func newSubjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Manage the subjects of the study plan",
	}
	cmd.AddCommand(newSubjectsAddCmd(), newSubjectsImportCmd(), newSubjectsListCmd(), newSubjectsRemoveCmd())
	return cmd
}

func newSubjectsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <hours-per-week>",
		Short: "Add a subject with its weekly hour budget",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("hours must be a whole number: %q", args[1])
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			sub, err := a.Plan.AddSubject(cmd.Context(), args[0], hours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%dh/week, %s)\n", sub.Name, sub.HoursPerWeek, sub.Color)
			return nil
		},
	}
}

func newSubjectsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: `Merge subjects from a JSON list of {"nome", "horasPorSemana"}`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read subjects: %w", err)
			}
			var entries []models.SubjectInput
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("parse subjects: %w", err)
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			added, err := a.Plan.ImportSubjects(cmd.Context(), entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d subjects\n", added, len(entries))
			return nil
		},
	}
}

func newSubjectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.Plan.Get(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(plan.Subjects) == 0 {
				fmt.Fprintln(out, "No subjects.")
				return nil
			}
			for _, s := range plan.Subjects {
				fmt.Fprintf(out, "%-24s %3dh/week  %s\n", s.Name, s.HoursPerWeek, s.Color)
			}
			return nil
		},
	}
}

func newSubjectsRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Plan.RemoveSubject(cmd.Context(), args[0], confirmerFor(cmd)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
