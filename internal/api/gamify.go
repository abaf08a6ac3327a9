package api

import (
	"net/http"

	"github.com/questlog/questlog/internal/app/engagement"
	"github.com/questlog/questlog/internal/domain"
	"github.com/questlog/questlog/internal/infra/metrics"
)

// --- POST /api/chests/open ---

func (s *Server) handleOpenChest(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	result, err := s.chests.Open(uid)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.ChestsOpened.WithLabelValues(string(result.Item.Rarity)).Inc()
	writeJSON(w, http.StatusOK, result)
}

// --- GET /api/items ---

// Owned items joined against the catalog; unknown catalog ids keep a
// placeholder name so stale rows never break the response.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	owned, err := s.chests.Items(uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type itemView struct {
		Item     domain.ItemDef `json:"item"`
		Count    int            `json:"count"`
		IsBroken bool           `json:"is_broken"`
	}
	out := make([]itemView, 0, len(owned))
	for _, o := range owned {
		def, ok := engagement.ItemByID(o.ItemID)
		if !ok {
			def = domain.ItemDef{ID: o.ItemID, Name: o.ItemID, Rarity: domain.RarityCommon}
		}
		out = append(out, itemView{Item: def, Count: o.Count, IsBroken: o.IsBroken})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": out})
}
