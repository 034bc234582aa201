// Package api implements the SkillBridge REST API and its MCP server.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/skillbridge/skillbridge/internal/assistant"
	"github.com/skillbridge/skillbridge/internal/roadmap"
	"github.com/skillbridge/skillbridge/internal/storage"
)

const maxRequestBodySize = 1 << 20 // 1MB
const maxUploadSize = 10 << 20     // 10MB

// Deps holds everything the HTTP handlers need.
type Deps struct {
	Store     *storage.Store
	Roadmaps  *roadmap.Generator
	Assistant *assistant.Bot
	JWTSecret string
	TokenTTL  int // hours
}

var validate = validator.New()

// NewHandler returns the full SkillBridge REST API.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Post("/api/auth/register", handleRegister(deps))
	r.Post("/api/auth/login", handleLogin(deps))

	r.Group(func(r chi.Router) {
		r.Use(jwtAuth(deps.JWTSecret))

		r.Get("/api/auth/me", handleMe(deps))
		r.Put("/api/profile", handleUpdateProfile(deps))
		r.Post("/api/profile/cv", handleUploadCV(deps))
		r.Put("/api/profile/skills", handleUpdateSkills(deps))

		r.Get("/api/jobs", handleListJobs(deps))
		r.Get("/api/jobs/{id}", handleGetJob(deps))
		r.Get("/api/jobs/{id}/match", handleJobMatch(deps))
		r.Get("/api/jobs/{id}/gaps", handleJobGaps(deps))
		r.Get("/api/jobs/recommended", handleRecommendedJobs(deps))
		r.Get("/api/resources", handleListResources(deps))

		r.Get("/api/dashboard/recommendations", handleDashboard(deps))
		r.Get("/api/dashboard/learning", handleLearningRecommendations(deps))

		r.Post("/api/roadmap/generate", handleGenerateRoadmap(deps))
		r.Get("/api/roadmap/current", handleCurrentRoadmap(deps))
		r.Put("/api/roadmap/{id}/progress", handleRoadmapProgress(deps))

		r.Post("/api/assistant/chat", handleChat(deps))
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
