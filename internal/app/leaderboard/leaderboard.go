// Package leaderboard ranks a cohort snapshot by score.
//
// Policy: standard competition ranking. Entries sort by descending score;
// tied scores share a rank and the next distinct score resumes at its
// positional rank, so scores [10, 10, 5] rank [1, 1, 3]. Within a tie group
// entries order by ascending user id for determinism.
package leaderboard

import (
	"sort"

	"github.com/questlog/questlog/internal/domain"
)

// Rank sorts and assigns competition ranks in place. An empty cohort returns
// an empty slice, not an error.
func Rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries
}

// Filter keeps ranked entries whose user id passes keep, preserving the
// cohort-relative ranks already assigned. Used for the friends view: the
// subset is never re-ranked.
func Filter(ranked []domain.LeaderboardEntry, keep func(userID int64) bool) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, 0, len(ranked))
	for _, e := range ranked {
		if keep(e.UserID) {
			out = append(out, e)
		}
	}
	return out
}
