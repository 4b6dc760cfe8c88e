package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memoclarity/memoclarity/internal/daemon"
)

func init() {
	ticketsCmd.Flags().IntVar(&ticketsLimit, "limit", 20, "Number of history entries to show")
	rootCmd.AddCommand(ticketsCmd)
}

var ticketsLimit int

var ticketsCmd = &cobra.Command{
	Use:   "tickets",
	Short: "Show raffle ticket balance and history",
	RunE:  runTickets,
}

func runTickets(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	data, err := d.Tracker.Tickets.Data()
	if err != nil {
		return err
	}

	fmt.Printf("This month: %d tickets\n", data.CurrentMonthTickets)
	fmt.Printf("Lifetime:   %d tickets\n", data.TotalLifetimeTickets)

	history, err := d.Tracker.Tickets.History(ticketsLimit)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("\nNo tickets earned yet. Run 'memoclarity checkin' to get started.")
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tACTION\tTICKETS\tDESCRIPTION")
	for _, tk := range history {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", tk.Date, tk.Type, tk.Tickets, tk.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(data.MonthlyStats) > 0 {
		months := make([]string, 0, len(data.MonthlyStats))
		for m := range data.MonthlyStats {
			months = append(months, m)
		}
		sort.Strings(months)

		fmt.Println("\nPast months:")
		for _, m := range months {
			st := data.MonthlyStats[m]
			fmt.Printf("  %s: %d tickets from %d actions\n", m, st.TotalTickets, st.Actions)
		}
	}
	return nil
}
