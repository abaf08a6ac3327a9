package api

import (
	"net/http"
	"time"

	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/app/leaderboard"
	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/domain"
)

// --- GET /api/leaderboard?tz_offset&view=global|friends ---

// The cohort is every public user plus the viewer (even when private).
// Ranks are assigned over the full cohort; the friends view filters the
// ranked rows afterwards so a filtered entry keeps its true rank.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	off := tzOffset(r)
	now := time.Now().UTC()

	weekFrom, weekTo := localtime.WeekWindow(now, off)
	scores, err := s.db.ScoresBetween(weekFrom, weekTo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cohort, err := s.db.ListPublicUsers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := make([]domain.LeaderboardEntry, 0, len(cohort)+1)
	selfIncluded := false
	for _, u := range cohort {
		if u.ID == uid {
			selfIncluded = true
		}
		entries = append(entries, entryFor(u, scores, uid))
	}
	if !selfIncluded {
		self, err := s.db.GetUser(uid)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		entries = append(entries, entryFor(self, scores, uid))
	}

	ranked := leaderboard.Rank(entries)

	if r.URL.Query().Get("view") == "friends" {
		friendIDs, err := s.db.FriendIDs(uid)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		keep := map[int64]bool{uid: true}
		for _, id := range friendIDs {
			keep[id] = true
		}
		ranked = leaderboard.Filter(ranked, func(id int64) bool { return keep[id] })
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": ranked,
		"week_start":  localtime.DateKey(weekFrom, off),
	})
}

func entryFor(u domain.User, scores map[int64]float64, viewerID int64) domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		UserID:      u.ID,
		Name:        u.Name,
		AvatarColor: u.AvatarColor,
		Level:       engagement.LevelForXP(u.XP),
		Score:       scores[u.ID],
		IsSelf:      u.ID == viewerID,
	}
}
