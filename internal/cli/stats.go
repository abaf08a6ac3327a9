package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/questlog/questlog/internal/app/analytics"
	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/daemon"
	"github.com/questlog/questlog/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	statsCmd.Flags().Int64Var(&statsUserID, "user", 1, "User ID to show stats for")
	statsCmd.Flags().IntVar(&statsTZOffset, "tz-offset", 0, "Timezone offset in minutes west of UTC")
	rootCmd.AddCommand(statsCmd)
}

var (
	statsUserID   int64
	statsTZOffset int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show a user's level, streak and weekly summary",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	user, err := d.DB.GetUser(statsUserID)
	if err != nil {
		return err
	}
	history, err := d.DB.ListActivities(statsUserID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	progress := engagement.ProgressToNext(user.XP)
	streak := engagement.ComputeStreak(history, statsTZOffset, now)

	from, to := localtime.WeekWindow(now, statsTZOffset)
	week, err := d.DB.ListActivitiesBetween(statsUserID, from, to)
	if err != nil {
		return err
	}
	agg := analytics.Aggregate(week, from, to)

	fmt.Printf("%s  (level %d, %d XP, %d credits)\n", user.Name, progress.Level, user.XP, user.ChestCredits)
	fmt.Printf("Streak: %d days (longest %d)\n", streak.CurrentDays, streak.LongestDays)
	fmt.Printf("This week: %.1f points across %d activities\n\n", agg.TotalScore, agg.ActivityCount)

	if agg.ActivityCount == 0 {
		fmt.Println("No activities this week. Log one with 'questlog log'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tMINUTES\tSCORE\tSHARE")
	for _, cat := range domain.Categories() {
		b, ok := agg.ByCategory[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.0f%%\n", cat, b.Minutes, b.Score, b.Percentage)
	}
	return w.Flush()
}
