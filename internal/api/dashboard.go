package api

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/gap"
	"github.com/skillbridge/skillbridge/internal/recommend"
)

const dashboardTopN = 10
const learningTargetJobs = 10

type dashboardResponse struct {
	Jobs      []recommend.OverlapJob     `json:"jobs"`
	Resources []recommend.RankedResource `json:"resources"`
}

// handleDashboard returns the overlap-ranked top jobs and resources for the
// dashboard. The two catalog reads run concurrently.
func handleDashboard(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Store.GetUser(userID(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		var jobs []catalog.Job
		var resources []catalog.Resource

		g, _ := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			jobs, err = deps.Store.AllJobs()
			return err
		})
		g.Go(func() error {
			var err error
			resources, err = deps.Store.AllResources()
			return err
		})
		if err := g.Wait(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load catalog: %v", err)
			return
		}

		profile := user.Profile()
		resp := dashboardResponse{
			Jobs:      recommend.JobsBySkillOverlap(profile, jobs, dashboardTopN),
			Resources: recommend.RankResources(profile, resources, dashboardTopN),
		}
		if resp.Jobs == nil {
			resp.Jobs = []recommend.OverlapJob{}
		}
		if resp.Resources == nil {
			resp.Resources = []recommend.RankedResource{}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// handleLearningRecommendations aggregates skill gaps across the user's top
// matching jobs and suggests what to learn next.
func handleLearningRecommendations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := deps.Store.GetUser(userID(r))
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get user: %v", err)
			return
		}

		var jobs []catalog.Job
		var resources []catalog.Resource

		g, _ := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			jobs, err = deps.Store.AllJobs()
			return err
		})
		g.Go(func() error {
			var err error
			resources, err = deps.Store.AllResources()
			return err
		})
		if err := g.Wait(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to load catalog: %v", err)
			return
		}

		profile := user.Profile()
		targets := recommend.RankJobs(profile, jobs, learningTargetJobs)
		targetJobs := make([]catalog.Job, len(targets))
		for i, t := range targets {
			targetJobs[i] = t.Job
		}

		writeJSON(w, http.StatusOK, gap.Comprehensive(profile, targetJobs, resources))
	}
}
