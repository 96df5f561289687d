package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/smehra/proconnect/internal/config"
	"github.com/smehra/proconnect/internal/engine"
	"github.com/smehra/proconnect/internal/vectormath"
)

// APIHandlers exposes HTTP handlers for the recommendation API.
type APIHandlers struct {
	logger   *slog.Logger
	engine   *engine.Engine
	defaults config.EngineConfig
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, eng *engine.Engine, defaults config.EngineConfig) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		engine:   eng,
		defaults: defaults,
	}
}

type friendSuggestionPayload struct {
	UserID  string `json:"userId"`
	Mutuals int    `json:"mutuals"`
}

type friendsResponse struct {
	UserID           string                    `json:"userId"`
	Friends          []friendSuggestionPayload `json:"friends"`
	DirectCount      int                       `json:"directFriendsCount"`
	FriendsOfFriends int                       `json:"friendsOfFriendsCount"`
}

type personSuggestionPayload struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name,omitempty"`
	Score  float64 `json:"score"`
}

type peopleResponse struct {
	UserID string                    `json:"userId"`
	People []personSuggestionPayload `json:"peopleYouMayKnow"`
}

type jobMatchPayload struct {
	JobID            string  `json:"jobId"`
	Title            string  `json:"title"`
	Company          string  `json:"company,omitempty"`
	Location         string  `json:"location,omitempty"`
	PostingURL       string  `json:"jobPostingUrl,omitempty"`
	NormalizedSalary float64 `json:"normalizedSalary,omitempty"`
	Score            float64 `json:"score"`
}

type jobsResponse struct {
	UserID string            `json:"userId"`
	Jobs   []jobMatchPayload `json:"jobs"`
}

type pathResponse struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Path []string `json:"path"`
	Hops int      `json:"hops"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *APIHandlers) recommendFriends(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := h.parseLimit(r)

	suggestions, counts, err := h.engine.FriendRecommendations(r.Context(), userID, limit)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	resp := friendsResponse{
		UserID:           userID,
		Friends:          make([]friendSuggestionPayload, 0, len(suggestions)),
		DirectCount:      counts.Direct,
		FriendsOfFriends: counts.FriendsOfFriends,
	}
	for _, s := range suggestions {
		resp.Friends = append(resp.Friends, friendSuggestionPayload{
			UserID:  s.UserID,
			Mutuals: s.Mutuals,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) suggestPeople(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := h.parseLimit(r)

	suggestions, err := h.engine.RecommendPeople(r.Context(), userID, limit)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	resp := peopleResponse{
		UserID: userID,
		People: make([]personSuggestionPayload, 0, len(suggestions)),
	}
	for _, s := range suggestions {
		resp.People = append(resp.People, personSuggestionPayload{
			UserID: s.UserID,
			Name:   s.Name,
			Score:  s.Correlation,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) recommendJobs(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit := h.parseLimit(r)

	minSimilarity := h.defaults.DefaultMinSimilarity
	if v := r.URL.Query().Get("min_similarity"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", "min_similarity must be a number")
			return
		}
		minSimilarity = parsed
	}

	matches, err := h.engine.RecommendJobs(r.Context(), userID, limit, minSimilarity)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	resp := jobsResponse{
		UserID: userID,
		Jobs:   make([]jobMatchPayload, 0, len(matches)),
	}
	for _, m := range matches {
		resp.Jobs = append(resp.Jobs, jobMatchPayload{
			JobID:            m.JobID,
			Title:            m.Title,
			Company:          m.Company,
			Location:         m.Location,
			PostingURL:       m.PostingURL,
			NormalizedSalary: m.NormalizedSalary,
			Score:            m.Score,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) shortestPath(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "from and to user IDs are required")
		return
	}

	path, err := h.engine.ShortestPath(r.Context(), from, to)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, pathResponse{
		From: from,
		To:   to,
		Path: path.UserIDs,
		Hops: path.Hops,
	})
}

func (h *APIHandlers) parseLimit(r *http.Request) int {
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			return limit
		}
	}
	return h.defaults.DefaultLimit
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses. Each
// kind keeps its own code so clients can tell "unknown user" from "no path"
// from "not embedded yet".
func (h *APIHandlers) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, engine.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, engine.ErrFeaturesMissing):
		writeError(w, http.StatusNotFound, "features_missing", err.Error())
	case errors.Is(err, engine.ErrEmbeddingMissing):
		writeError(w, http.StatusNotFound, "embedding_missing", err.Error())
	case errors.Is(err, engine.ErrNoPath):
		writeError(w, http.StatusNotFound, "no_path", err.Error())
	case errors.Is(err, engine.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.Is(err, vectormath.ErrDimensionMismatch):
		h.logger.Error("vector dimension mismatch", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "data_integrity", "vector dimensions are inconsistent")
	default:
		h.logger.Error("engine request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal", "request failed")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}
