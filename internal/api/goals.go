package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/questlog/questlog/internal/app/goals"
	"github.com/questlog/questlog/internal/domain"
)

// --- POST /api/goals ---

type createGoalRequest struct {
	Category    string  `json:"category,omitempty"`
	Title       string  `json:"title"`
	TargetHours float64 `json:"target_value"`
	Timeframe   string  `json:"timeframe"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TargetHours <= 0 {
		writeError(w, http.StatusBadRequest, "target_value must be positive")
		return
	}
	timeframe := domain.Timeframe(req.Timeframe)
	if timeframe != domain.TimeframeWeekly && timeframe != domain.TimeframeMonthly {
		writeError(w, http.StatusBadRequest, "timeframe must be weekly or monthly")
		return
	}

	goal := domain.Goal{
		UserID:      uid,
		Category:    domain.ParseCategory(req.Category),
		Title:       req.Title,
		TargetHours: req.TargetHours,
		Timeframe:   timeframe,
	}
	if goal.Title == "" {
		goal.Title = string(goal.Category)
	}

	created, err := s.db.CreateGoal(goal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// --- GET /api/goals?tz_offset ---

// goalWithProgress embeds derived progress; nothing here is read from
// storage except the goal row and the activity window.
type goalWithProgress struct {
	domain.Goal
	Progress domain.GoalProgress `json:"progress"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	off := tzOffset(r)
	now := time.Now().UTC()

	list, err := s.db.ListGoals(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := make([]goalWithProgress, 0, len(list))
	for _, g := range list {
		out = append(out, goalWithProgress{
			Goal:     g,
			Progress: goals.Progress(g, history, now, off),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"goals": out})
}

// --- DELETE /api/goals/{id} ---

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	if err := s.db.DeleteGoal(id, uid); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
