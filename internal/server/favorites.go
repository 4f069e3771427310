package server

import (
	"net/http"

	"github.com/abelbrown/aagag/internal/model"
)

type toggleRequest struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// handleGetFavorites returns the favorites list, optionally for one ?region=
func (s *Server) handleGetFavorites(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")

	entries := s.favorites.Entries()
	if region != "" {
		kept := entries[:0]
		for _, f := range entries {
			if f.Region == region {
				kept = append(kept, f)
			}
		}
		entries = kept
	}
	if entries == nil {
		entries = []model.Favorite{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"favorites":   entries,
		"total_count": len(entries),
		"persistent":  s.favorites.Persistent(),
	})
}

// handleToggleFavorite flips one (name, region) pair
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if _, ok := s.fetcher.Catalog().Lookup(req.Region); !ok {
		respondError(w, http.StatusBadRequest, "Unknown region")
		return
	}

	added := s.favorites.Toggle(req.Name, req.Region)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":         req.Name,
		"region":       req.Region,
		"favorite":     added,
		"region_count": s.favorites.CountForRegion(req.Region),
	})
}
