package api

import (
	"net/http"
	"time"

	"github.com/questlog/questlog/internal/app/analytics"
	"github.com/questlog/questlog/internal/app/engagement"
)

// --- GET /api/dashboard?tz_offset&date ---

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	off := tzOffset(r)

	from, to, err := requestedDayWindow(r, off)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user, err := s.db.GetUser(uid)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	day := analytics.Aggregate(history, from, to)
	streak := engagement.ComputeStreak(history, off, time.Now().UTC())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"daily_score":        day.TotalScore,
		"total_minutes":      day.TotalMinutes,
		"activity_count":     day.ActivityCount,
		"category_breakdown": day.ByCategory,
		"streak":             streak,
		"level":              engagement.ProgressToNext(user.XP),
		"chest_credits":      user.ChestCredits,
	})
}

// --- GET /api/recap?tz_offset ---

func (s *Server) handleRecap(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	off := tzOffset(r)

	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	recap := analytics.Recap(history, off, time.Now().UTC())
	writeJSON(w, http.StatusOK, recap)
}
