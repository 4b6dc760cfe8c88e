package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoclarity/memoclarity/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's dashboard",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	s, err := d.Tracker.Summarize(time.Now())
	if err != nil {
		return err
	}

	checked := "no"
	if s.CheckedInToday {
		checked = "yes"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Date\t%s\n", s.Date)
	fmt.Fprintf(w, "Checked in today\t%s\n", checked)
	fmt.Fprintf(w, "Streak\t%d days (best %d)\n", s.Streak.Current, s.Streak.Max)
	fmt.Fprintf(w, "Cognitive score\t%d\n", s.CognitiveScore)
	fmt.Fprintf(w, "Avg game score\t%.1f\n", s.AvgGameScore)
	fmt.Fprintf(w, "Listening this week\t%d min\n", s.WeeklyMinutes)
	fmt.Fprintf(w, "Tickets this month\t%d\n", s.MonthTickets)
	fmt.Fprintf(w, "Tickets lifetime\t%d\n", s.LifetimeTickets)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(s.Badges) > 0 {
		fmt.Println("\nBadges:")
		for _, b := range s.Badges {
			fmt.Printf("  %s (%d-day streak)\n", b.Name, b.Milestone)
		}
	}
	return nil
}
