package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/questlog/questlog/internal/domain"
)

// ─── Friends ────────────────────────────────────────────────────────────────

// --- GET /api/friends ---

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	friends, err := s.social.Friends(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	requests, err := s.social.Requests(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if friends == nil {
		friends = []domain.User{}
	}
	if requests == nil {
		requests = []domain.Friendship{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"friends":  friends,
		"requests": requests,
	})
}

// --- POST /api/friends/request ---

type friendRequestBody struct {
	ReceiverID int64 `json:"receiver_id"`
}

func (s *Server) handleFriendRequest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := s.social.RequestFriend(uid, req.ReceiverID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// --- POST /api/friends/{id}/accept ---

func (s *Server) handleFriendAccept(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid friendship id")
		return
	}
	if err := s.social.AcceptFriend(id, uid); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// --- POST /api/challenges ---

type createChallengeRequest struct {
	OpponentID int64  `json:"opponent_id"`
	Category   string `json:"category,omitempty"`
	Timeframe  string `json:"timeframe"`
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var req createChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := s.social.CreateChallenge(uid, req.OpponentID, domain.ParseCategory(req.Category), domain.Timeframe(req.Timeframe))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// --- GET /api/challenges ---

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	standings, err := s.social.Challenges(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if standings == nil {
		standings = []domain.ChallengeStanding{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"challenges": standings})
}

// --- POST /api/challenges/{id}/accept ---

func (s *Server) handleAcceptChallenge(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	c, err := s.social.AcceptChallenge(chi.URLParam(r, "id"), uid, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// --- POST /api/challenges/{id}/settle ---

func (s *Server) handleSettleChallenge(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	standing, err := s.social.Settle(chi.URLParam(r, "id"), uid, time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, standing)
}
