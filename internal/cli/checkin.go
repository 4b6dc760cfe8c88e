package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoclarity/memoclarity/internal/daemon"
	"github.com/memoclarity/memoclarity/internal/domain"
)

func init() {
	checkinCmd.Flags().StringVar(&checkinTestimony, "testimony", "", "Share a short testimony with today's check-in")
	checkinCmd.Flags().BoolVar(&checkinPublic, "public", false, "Make the testimony visible in the community feed")
	rootCmd.AddCommand(checkinCmd)
}

var (
	checkinTestimony string
	checkinPublic    bool
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record today's check-in",
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Tracker.CheckIn(time.Now(), checkinTestimony, checkinPublic)
	if err != nil {
		return err
	}

	if result.AlreadyCheckedIn {
		fmt.Printf("Already checked in today (%s). Streak: %d days.\n",
			result.Entry.Date, result.Streak.Current)
		return nil
	}

	fmt.Printf("Checked in for %s. Streak: %d days (best %d).\n",
		result.Entry.Date, result.Streak.Current, result.Streak.Max)

	for _, b := range result.NewBadges {
		fmt.Printf("  Badge earned: %s (%d-day streak)\n", b.Name, b.Milestone)
	}
	for _, tk := range result.Tickets {
		label := "ticket"
		if tk.Tickets != 1 {
			label = "tickets"
		}
		fmt.Printf("  +%d %s (%s)\n", tk.Tickets, label, tk.Type)
	}
	if domain.IsMilestone(result.Streak.Current) && checkinTestimony == "" {
		fmt.Println("  Milestone day! Share a testimony to earn bonus tickets.")
	}
	fmt.Printf("Cognitive score: %d\n", result.CognitiveScore)
	return nil
}
