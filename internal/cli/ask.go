package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/memoclarity/memoclarity/internal/daemon"
)

func init() {
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the MemoClarity assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	reply, err := d.Chat.Ask(strings.Join(args, " "), time.Now())
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}
