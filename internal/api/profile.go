package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/domain"
)

// --- POST /api/users ---

type createUserRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatar_color"`
	Bio         string `json:"bio"`
	BirthYear   int    `json:"birth_year,omitempty"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email and name are required")
		return
	}

	u := domain.User{
		Email:       req.Email,
		Name:        req.Name,
		AvatarColor: req.AvatarColor,
		Bio:         req.Bio,
		BirthYear:   req.BirthYear,
		IsPublic:    true,
	}
	if req.IsPublic != nil {
		u.IsPublic = *req.IsPublic
	}

	created, err := s.db.CreateUser(u)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// --- GET /api/profile?tz_offset ---

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	user, err := s.db.GetUser(uid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	history, err := s.db.ListActivities(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	badgeCount, err := s.db.BadgeCount(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":           user,
		"level":          engagement.ProgressToNext(user.XP),
		"streak":         engagement.ComputeStreak(history, tzOffset(r), time.Now().UTC()),
		"badge_count":    badgeCount,
		"activity_count": len(history),
	})
}

// --- PUT /api/profile ---

type updateProfileRequest struct {
	Name        string `json:"name"`
	AvatarColor string `json:"avatar_color"`
	Bio         string `json:"bio"`
	IsPublic    *bool  `json:"is_public,omitempty"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	current, err := s.db.GetUser(uid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Name == "" {
		req.Name = current.Name
	}
	isPublic := current.IsPublic
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	if err := s.db.UpdateProfile(uid, req.Name, req.AvatarColor, req.Bio, isPublic); err != nil {
		writeDomainError(w, err)
		return
	}
	updated, err := s.db.GetUser(uid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// --- GET /api/badges ---

// Returns the full catalog annotated with the caller's earned state.
func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	earned, err := s.badges.Earned(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, b := range earned {
		earnedAt[b.Badge] = b.EarnedAt
	}

	type badgeView struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Icon        string     `json:"icon"`
		Earned      bool       `json:"earned"`
		EarnedAt    *time.Time `json:"earned_at,omitempty"`
	}

	catalog := s.badges.Catalog()
	out := make([]badgeView, 0, len(catalog))
	for _, def := range catalog {
		v := badgeView{Name: def.Name, Description: def.Description, Icon: def.Icon}
		if at, ok := earnedAt[def.Name]; ok {
			v.Earned = true
			v.EarnedAt = &at
		}
		out = append(out, v)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"badges": out})
}
