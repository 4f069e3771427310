package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abelbrown/aagag/internal/controller"
	"github.com/abelbrown/aagag/internal/fetch"
	"github.com/abelbrown/aagag/internal/model"
)

type regionResponse struct {
	Key     string `json:"key"`
	Source  string `json:"source"`
	Entries *int   `json:"entries,omitempty"`
}

type itemResponse struct {
	model.Restaurant
	Favorite bool `json:"favorite"`
}

type itemsResponse struct {
	Region   string         `json:"region"`
	Source   string         `json:"source"`
	State    string         `json:"state"`
	Metadata model.Metadata `json:"metadata"`
	Items    []itemResponse `json:"items"`
	Total    int            `json:"total_count"`
	Page     int            `json:"page"`
	HasMore  bool           `json:"has_more"`
	Sort     string         `json:"sort"`
	Seed     uint64         `json:"seed,string"`
}

type tagsResponse struct {
	Region string   `json:"region"`
	Tags   []string `json:"tags"`
	Total  int      `json:"total_count"`
}

// handleGetRegions returns the catalog, or only the loadable regions with ?probe=true
func (s *Server) handleGetRegions(w http.ResponseWriter, r *http.Request) {
	if probe, _ := strconv.ParseBool(r.URL.Query().Get("probe")); probe {
		available := s.fetcher.Probe(r.Context())
		regions := make([]regionResponse, len(available))
		for i, a := range available {
			entries := a.Entries
			regions[i] = regionResponse{Key: a.Region.Key, Source: a.Source, Entries: &entries}
		}
		respondJSON(w, http.StatusOK, regions)
		return
	}

	cat := s.fetcher.Catalog()
	regions := make([]regionResponse, len(cat))
	for i, reg := range cat {
		regions[i] = regionResponse{Key: reg.Key, Source: reg.Source}
	}
	respondJSON(w, http.StatusOK, regions)
}

// handleGetItems runs the browse pipeline for one region
func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opt, err := model.ParseSortPreset(q.Get("sort"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid sort")
		return
	}
	page := 1
	if p := q.Get("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			respondError(w, http.StatusBadRequest, "Invalid page")
			return
		}
	}
	var seed uint64
	if sd := q.Get("seed"); sd != "" {
		seed, err = strconv.ParseUint(sd, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid seed")
			return
		}
	}
	favoritesOnly, _ := strconv.ParseBool(q.Get("favorites"))

	b, ok := s.load(w, r, seed)
	if !ok {
		return
	}
	b.SetQuery(q.Get("q"))
	b.SetTags(q["tag"])
	b.SetFavoritesOnly(favoritesOnly)
	b.SetSort(opt)
	v := b.SeekPage(page)

	items := make([]itemResponse, len(v.Items))
	for i, item := range v.Items {
		items[i] = itemResponse{Restaurant: item, Favorite: v.Favorite[i]}
	}

	respondJSON(w, http.StatusOK, itemsResponse{
		Region:   v.Region.Key,
		Source:   v.Source,
		State:    v.State.String(),
		Metadata: v.Metadata,
		Items:    items,
		Total:    v.Total,
		Page:     v.Page,
		HasMore:  v.HasMore,
		Sort:     v.Sort.Preset(),
		Seed:     b.Seed(),
	})
}

// handleGetTags returns the region's tags, narrowed by ?q=
func (s *Server) handleGetTags(w http.ResponseWriter, r *http.Request) {
	b, ok := s.load(w, r, 0)
	if !ok {
		return
	}
	v := b.SetTagQuery(r.URL.Query().Get("q"))

	respondJSON(w, http.StatusOK, tagsResponse{
		Region: v.Region.Key,
		Tags:   v.AvailableTags,
		Total:  v.TagCount,
	})
}

// load builds a Browser for the {region} URL parameter and feeds it the
// fetched dataset. It writes the error response itself and reports false
// when the dataset could not be loaded.
func (s *Server) load(w http.ResponseWriter, r *http.Request, seed uint64) (*controller.Browser, bool) {
	region := chi.URLParam(r, "region")

	b := controller.New(controller.Options{
		Catalog:   s.fetcher.Catalog(),
		Favorites: s.favorites,
		PageSize:  s.opts.PageSize,
		Language:  s.opts.Language,
		Seed:      seed,
	})
	req := b.SelectRegion(region)
	ds, err := s.fetcher.Fetch(r.Context(), region)
	b.Receive(controller.Loaded{Request: req, Dataset: ds, Err: err})

	if err != nil {
		var se *fetch.StatusError
		switch {
		case errors.Is(err, fetch.ErrUnknownRegion):
			respondError(w, http.StatusNotFound, "Region not found")
		case errors.As(err, &se) && se.Code == http.StatusNotFound:
			respondError(w, http.StatusNotFound, "Dataset not found")
		default:
			respondError(w, http.StatusBadGateway, "Failed to fetch dataset")
		}
		return nil, false
	}
	return b, true
}
