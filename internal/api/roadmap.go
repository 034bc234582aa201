package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge/internal/storage"
)

type roadmapRequest struct {
	TargetRole           string `json:"targetRole" validate:"required,min=2"`
	TimeframeMonths      int    `json:"timeframeMonths" validate:"required,min=1,max=36"`
	LearningHoursPerWeek int    `json:"learningHoursPerWeek" validate:"required,min=1,max=80"`
}

func handleGenerateRoadmap(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req roadmapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
			return
		}

		user, err := deps.Store.GetUser(userID(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		phases := deps.Roadmaps.Generate(r.Context(), user.Profile(), req.TargetRole, req.TimeframeMonths, req.LearningHoursPerWeek)

		rm := storage.Roadmap{
			ID:                   uuid.NewString(),
			UserID:               user.ID,
			TargetRole:           req.TargetRole,
			TimeframeMonths:      req.TimeframeMonths,
			LearningHoursPerWeek: req.LearningHoursPerWeek,
			Phases:               phases,
			CurrentPhase:         1,
			Progress:             0,
			CreatedAt:            time.Now().UTC(),
		}
		if err := deps.Store.SaveRoadmap(rm); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save roadmap: %v", err)
			return
		}

		writeJSON(w, http.StatusCreated, rm)
	}
}

func handleCurrentRoadmap(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rm, err := deps.Store.LatestRoadmap(userID(r))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "no roadmap generated yet")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get roadmap: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, rm)
	}
}

type progressRequest struct {
	CurrentPhase *int `json:"currentPhase" validate:"omitempty,min=1"`
	Progress     *int `json:"progress" validate:"omitempty,min=0,max=100"`
}

func handleRoadmapProgress(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req progressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
			return
		}
		if req.CurrentPhase == nil && req.Progress == nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "nothing to update")
			return
		}

		rm, err := deps.Store.UpdateRoadmapProgress(chi.URLParam(r, "id"), userID(r), req.CurrentPhase, req.Progress)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "roadmap not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update roadmap: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, rm)
	}
}
