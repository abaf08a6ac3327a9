package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/questlog/questlog/internal/daemon"
	"github.com/spf13/cobra"
)

func init() {
	badgesCmd.Flags().Int64Var(&badgesUserID, "user", 1, "User ID to show badges for")
	rootCmd.AddCommand(badgesCmd)
}

var badgesUserID int64

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List earned and unearned badges",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	earned, err := d.Badges.Earned(badgesUserID)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(earned))
	for _, b := range earned {
		have[b.Badge] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tSTATUS\tDESCRIPTION")
	for _, def := range d.Badges.Catalog() {
		status := "locked"
		if have[def.Name] {
			status = "earned " + def.Icon
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", def.Name, status, def.Description)
	}
	return w.Flush()
}
