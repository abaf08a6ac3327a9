package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/app/scoring"
	"github.com/questlog/questlog/internal/daemon"
	"github.com/questlog/questlog/internal/domain"
	"github.com/spf13/cobra"
)

func init() {
	logCmd.Flags().Int64Var(&logUserID, "user", 1, "User ID to log the activity for")
	logCmd.Flags().IntVar(&logTZOffset, "tz-offset", 0, "Timezone offset in minutes west of UTC")
	logCmd.Flags().BoolVar(&logFocus, "focus", false, "Mark the activity as a focus session")
	rootCmd.AddCommand(logCmd)
}

var (
	logUserID   int64
	logTZOffset int
	logFocus    bool
)

var logCmd = &cobra.Command{
	Use:   "log <text>",
	Short: "Log an activity from plain language",
	Long: `Log an activity described in plain language, e.g.:

  questlog log "studied Go for 2 hours"
  questlog log --focus "deep work on the report for 90 minutes"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	text := strings.Join(args, " ")
	parsed, err := d.Parser.Parse(context.Background(), text)
	if err != nil {
		return fmt.Errorf("parse activity: %w", err)
	}

	now := time.Now().UTC()
	a := domain.Activity{
		UserID:         logUserID,
		Name:           parsed.Name,
		Category:       parsed.Category,
		DurationMin:    parsed.DurationMin,
		Timestamp:      now,
		Score:          scoring.Score(parsed.Category, parsed.DurationMin),
		IsFocusSession: logFocus,
	}

	xp := scoring.XPForActivity(a.DurationMin, a.IsFocusSession)
	id, oldXP, newXP, err := d.DB.LogActivity(a, xp, scoring.CreditsPerActivity)
	if err != nil {
		return err
	}
	a.ID = id

	fmt.Printf("Logged: %s (%s, %d min)\n", a.Name, a.Category, a.DurationMin)
	fmt.Printf("  Score: %+.1f   XP: +%d\n", a.Score, xp)

	if up, ok := engagement.DetectLevelUp(oldXP, newXP); ok {
		fmt.Printf("  Level up! %d -> %d\n", up.OldLevel, up.NewLevel)
	}

	history, err := d.DB.ListActivities(logUserID)
	if err != nil {
		return err
	}
	streak := engagement.ComputeStreak(history, logTZOffset, now)
	stats := engagement.BuildStats(history, engagement.LevelForXP(newXP), streak, localtime.Hour(now, logTZOffset))
	earned, err := d.Badges.Evaluate(logUserID, stats)
	if err != nil {
		return err
	}
	for _, name := range earned {
		fmt.Printf("  Badge earned: %s %s\n", engagement.IconFor(name), name)
	}
	return nil
}
