package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/questlog/questlog/internal/app/analytics"
	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/app/localtime"
	"github.com/questlog/questlog/internal/app/scoring"
	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/infra/metrics"
)

// --- POST /api/activities ---

// logActivityRequest accepts either free-form text (delegated to the
// configured parser) or an already-structured activity.
type logActivityRequest struct {
	Text      string `json:"text,omitempty"`
	LocalHour *int   `json:"local_hour,omitempty"`

	Name           string `json:"activity_name,omitempty"`
	Category       string `json:"category,omitempty"`
	DurationMin    int    `json:"duration_minutes,omitempty"`
	IsFocusSession bool   `json:"is_focus_session,omitempty"`
}

type logActivityResponse struct {
	Activity     domain.Activity `json:"activity"`
	DailyScore   float64         `json:"daily_score"`
	Streak       domain.Streak   `json:"streak"`
	XPAwarded    int64           `json:"xp_awarded"`
	LeveledUp    bool            `json:"leveled_up"`
	LevelUp      *domain.LevelUp `json:"level_up,omitempty"`
	NewBadges    []string        `json:"newly_earned_badges"`
	ChestCredits int64           `json:"chest_credits_awarded"`
}

func (s *Server) handleLogActivity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req logActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name, category, duration, focus := req.Name, domain.ParseCategory(req.Category), req.DurationMin, req.IsFocusSession
	if req.Text != "" && (name == "" || duration == 0) {
		parsed, err := s.parser.Parse(r.Context(), req.Text)
		if err != nil {
			writeError(w, http.StatusBadGateway, "activity parsing failed: "+err.Error())
			return
		}
		name, category, duration = parsed.Name, parsed.Category, parsed.DurationMin
	}
	if duration <= 0 {
		writeDomainError(w, domain.ErrInvalidDuration)
		return
	}
	if name == "" {
		name = string(category)
	}

	now := time.Now().UTC()
	off := tzOffset(r)

	activity := domain.Activity{
		UserID:         uid,
		Name:           name,
		Category:       category,
		DurationMin:    duration,
		Timestamp:      now,
		Score:          scoring.Score(category, duration),
		IsFocusSession: focus,
	}
	xp := scoring.XPForActivity(duration, focus)

	id, oldXP, newXP, err := s.db.LogActivity(activity, xp, scoring.CreditsPerActivity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	activity.ID = id

	metrics.ActivitiesLogged.WithLabelValues(string(category)).Inc()
	metrics.ActivityMinutes.WithLabelValues(string(category)).Add(float64(duration))
	metrics.XPAwarded.Add(float64(xp))

	resp := logActivityResponse{
		Activity:     activity,
		XPAwarded:    xp,
		ChestCredits: scoring.CreditsPerActivity,
		NewBadges:    []string{},
	}
	if up, ok := engagement.DetectLevelUp(oldXP, newXP); ok {
		resp.LeveledUp = true
		resp.LevelUp = &up
		metrics.LevelUps.Inc()
	}

	// Post-log derivations run on the full history snapshot that now
	// includes the inserted activity.
	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp.Streak = engagement.ComputeStreak(history, off, now)

	dayFrom, dayTo := localtime.DayWindowOf(now, off)
	resp.DailyScore = analytics.Aggregate(history, dayFrom, dayTo).TotalScore

	triggerHour := localtime.Hour(now, off)
	if req.LocalHour != nil && *req.LocalHour >= 0 && *req.LocalHour <= 23 {
		triggerHour = *req.LocalHour
	}
	stats := engagement.BuildStats(history, engagement.LevelForXP(newXP), resp.Streak, triggerHour)
	newBadges, err := s.badges.Evaluate(uid, stats)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if newBadges != nil {
		resp.NewBadges = newBadges
		for _, b := range newBadges {
			metrics.BadgesEarned.WithLabelValues(b).Inc()
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

// --- GET /api/activities?tz_offset&date ---

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
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

	activities, err := s.db.ListActivitiesBetween(uid, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}

// requestedDayWindow resolves the optional date=YYYY-MM-DD query parameter
// against the caller's local calendar, defaulting to the local today.
func requestedDayWindow(r *http.Request, off int) (time.Time, time.Time, error) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from, to := localtime.DayWindow(day.Year(), day.Month(), day.Day(), off)
		return from, to, nil
	}
	from, to := localtime.DayWindowOf(time.Now().UTC(), off)
	return from, to, nil
}

// --- PUT /api/activities/{id} ---

type updateActivityRequest struct {
	Name        string `json:"activity_name"`
	Category    string `json:"category"`
	DurationMin int    `json:"duration_minutes"`
}

func (s *Server) handleUpdateActivity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DurationMin <= 0 {
		writeDomainError(w, domain.ErrInvalidDuration)
		return
	}

	category := domain.ParseCategory(req.Category)
	score := scoring.Score(category, req.DurationMin)
	if err := s.db.UpdateActivity(id, uid, req.Name, category, req.DurationMin, score); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.db.GetActivity(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- DELETE /api/activities/{id} ---

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}
	if err := s.db.DeleteActivity(id, uid); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
