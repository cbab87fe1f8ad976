package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/mindforge/internal/models"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show answer statistics, deck and plan summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			o, err := a.Stats.Overview(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Statistics")
			fmt.Fprintln(out, strings.Repeat("-", 40))
			fmt.Fprintf(out, "Questions:     %d (%d mastered, %d in review)\n", o.Questions.Total, o.Questions.Mastered, o.Questions.Review)
			fmt.Fprintf(out, "Answers:       %d/%d correct (%s)\n", o.Summary.TotalCorrect, o.Summary.TotalAttempted, o.Summary.OverallRate)
			fmt.Fprintf(out, "Flashcards:    %d (%d due, %d new, %d reviews)\n", o.Deck.TotalCards, o.Deck.CardsDue, o.Deck.CardsNew, o.Deck.TotalReviews)
			fmt.Fprintf(out, "Daily goal:    %d/%d (%.0f%%)\n", o.Goal.Done, o.Goal.Goal, o.Goal.Percentage)
			deadline := "-"
			if o.Plan.Deadline != nil {
				deadline = o.Plan.Deadline.Format(models.DayKeyLayout)
			}
			fmt.Fprintf(out, "Plan:          %d subjects, %d weeks, deadline %s\n", o.Plan.Subjects, o.Plan.Weeks, deadline)

			if len(o.Summary.BySubject) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "By subject")
				for _, b := range o.Summary.BySubject {
					fmt.Fprintf(out, "  %-20s %3d/%-3d %s\n", b.Label, b.Correct, b.Attempted, b.Rate)
				}
			}
			if len(o.Summary.ByTag) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "By tag")
				for _, b := range o.Summary.ByTag {
					fmt.Fprintf(out, "  %-20s %3d/%-3d %s\n", b.Label, b.Correct, b.Attempted, b.Rate)
				}
			}
			return nil
		},
	}
}
