package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memoclarity/memoclarity/internal/daemon"
	"github.com/memoclarity/memoclarity/internal/domain"
)

func init() {
	gamesCmd.Flags().IntVar(&gamesLimit, "limit", 10, "Number of recent results to show")
	rootCmd.AddCommand(gamesCmd)
}

var gamesLimit int

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Show game levels and recent results",
	RunE:  runGames,
}

func runGames(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	levels, err := d.Tracker.Games.Levels()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tLEVEL")
	for _, g := range domain.AllGameTypes() {
		fmt.Fprintf(w, "%s\t%d\n", g, levels[g])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	results, err := d.Tracker.Games.Recent(gamesLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("\nNo games played yet.")
		return nil
	}

	fmt.Println("\nRecent results:")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tGAME\tLEVEL\tSCORE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", r.Date, r.GameType, r.Level, r.Score)
	}
	return w.Flush()
}
