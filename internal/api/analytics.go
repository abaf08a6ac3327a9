package api

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/questlog/questlog/internal/app/analytics"
	"github.com/questlog/questlog/internal/domain"
)

// trendDays resolves the days query parameter with a sane default and cap.
func trendDays(r *http.Request) int {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	return days
}

// --- GET /api/analytics/heatmap?tz_offset ---

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.Heatmap(history, tzOffset(r)))
}

// --- GET /api/analytics/trends?tz_offset&days ---

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.Trend(history, trendDays(r), tzOffset(r), time.Now().UTC()))
}

// --- GET /api/analytics/summary?tz_offset&days ---

// The combined response assembles independent sub-sections. A sub-section
// with insufficient input reports has_data=false; it never takes down its
// siblings.
func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	off := tzOffset(r)
	days := trendDays(r)
	now := time.Now().UTC()

	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var (
		heatmap domain.Heatmap
		trend   domain.Trend
		recap   domain.WeeklyRecap
	)
	var g errgroup.Group
	g.Go(func() error {
		heatmap = analytics.Heatmap(history, off)
		return nil
	})
	g.Go(func() error {
		trend = analytics.Trend(history, days, off, now)
		return nil
	})
	g.Go(func() error {
		recap = analytics.Recap(history, off, now)
		return nil
	})
	_ = g.Wait() // sections report has_data instead of failing

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"heatmap": heatmap,
		"trend":   trend,
		"recap":   recap,
	})
}
