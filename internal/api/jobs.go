package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/gap"
	"github.com/skillbridge/skillbridge/internal/matching"
	"github.com/skillbridge/skillbridge/internal/recommend"
	"github.com/skillbridge/skillbridge/internal/storage"
)

type jobListResponse struct {
	Jobs       []catalog.Job `json:"jobs"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func handleListJobs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := storage.JobFilter{
			Search:   q.Get("search"),
			Location: q.Get("location"),
			JobType:  q.Get("jobType"),
			Skill:    q.Get("skill"),
			Page:     parseIntParam(r, "page", 1, 0),
			Limit:    parseIntParam(r, "limit", 20, 100),
		}

		jobs, total, err := deps.Store.ListJobs(filter)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list jobs: %v", err)
			return
		}
		if jobs == nil {
			jobs = []catalog.Job{}
		}

		pages := 0
		if filter.Limit > 0 {
			pages = (total + filter.Limit - 1) / filter.Limit
		}
		writeJSON(w, http.StatusOK, jobListResponse{
			Jobs: jobs,
			Pagination: pagination{
				Page:  filter.Page,
				Limit: filter.Limit,
				Total: total,
				Pages: pages,
			},
		})
	}
}

func handleGetJob(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := deps.Store.GetJob(chi.URLParam(r, "id"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get job: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

func handleJobMatch(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Store.GetUser(userID(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		job, err := deps.Store.GetJob(chi.URLParam(r, "id"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get job: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, matching.Score(user.Profile(), job))
	}
}

func handleJobGaps(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Store.GetUser(userID(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		job, err := deps.Store.GetJob(chi.URLParam(r, "id"))
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "job not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get job: %v", err)
			return
		}

		resources, err := deps.Store.AllResources()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list resources: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, gap.Analyze(user.Skills, job.RequiredSkills, resources))
	}
}

func handleRecommendedJobs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Store.GetUser(userID(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		jobs, err := deps.Store.AllJobs()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list jobs: %v", err)
			return
		}

		limit := parseIntParam(r, "limit", 10, 50)
		ranked := recommend.RankJobs(user.Profile(), jobs, limit)
		if ranked == nil {
			ranked = []recommend.RankedJob{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": ranked})
	}
}

func handleListResources(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := deps.Store.AllResources()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list resources: %v", err)
			return
		}
		if resources == nil {
			resources = []catalog.Resource{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"resources": resources})
	}
}
