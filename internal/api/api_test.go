package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/skillbridge/skillbridge/internal/assistant"
	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/roadmap"
	"github.com/skillbridge/skillbridge/internal/storage"
	"github.com/skillbridge/skillbridge/internal/textgen"
)

func newTestHandler(t *testing.T) (http.Handler, *storage.Store) {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	selector, err := roadmap.NewSelector()
	if err != nil {
		t.Fatalf("NewSelector() error: %v", err)
	}

	h := NewHandler(Deps{
		Store:     store,
		Roadmaps:  roadmap.NewGenerator(textgen.Disabled{}, selector),
		Assistant: assistant.New(textgen.Disabled{}),
		JWTSecret: "test-secret",
		TokenTTL:  1,
	})
	return h, store
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func register(t *testing.T, h http.Handler, email string, skills []string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"fullName":        "Test User",
		"email":           email,
		"password":        "password123",
		"experienceLevel": "Junior",
		"preferredTrack":  "Full Stack Development",
		"skills":          skills,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decode[authResponse](t, rec).Token
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRegisterLoginMe(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript"})

	rec := doJSON(t, h, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	me := decode[userView](t, rec)
	if me.Email != "alex@example.com" || me.ExperienceLevel != "Junior" {
		t.Errorf("me = %+v", me)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "Alex@Example.com",
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	if decode[authResponse](t, rec).Token == "" {
		t.Error("login returned empty token")
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	tests := []struct {
		name string
		body map[string]any
	}{
		{"short password", map[string]any{"fullName": "A B", "email": "x@y.com", "password": "short"}},
		{"bad email", map[string]any{"fullName": "A B", "email": "not-an-email", "password": "password123"}},
		{"bad level", map[string]any{"fullName": "A B", "email": "x@y.com", "password": "password123", "experienceLevel": "Wizard"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)
	register(t, h, "dup@example.com", nil)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"fullName": "Other User",
		"email":    "dup@example.com",
		"password": "password123",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, _ := newTestHandler(t)
	register(t, h, "alex@example.com", nil)

	for _, body := range []map[string]any{
		{"email": "alex@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "password123"},
	} {
		rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		json.Unmarshal(rec.Body.Bytes(), &resp)
		if resp.Error.Message != "invalid email or password" {
			t.Errorf("message = %q", resp.Error.Message)
		}
	}
}

func TestAuthRequired(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/api/jobs", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/jobs", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript"})

	rec := doJSON(t, h, http.MethodPut, "/api/profile", token, map[string]any{
		"experienceLevel": "Mid",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	me := decode[userView](t, rec)
	if me.ExperienceLevel != "Mid" {
		t.Errorf("ExperienceLevel = %s", me.ExperienceLevel)
	}
	if me.FullName != "Test User" || len(me.Skills) != 1 {
		t.Errorf("untouched fields changed: %+v", me)
	}
}

func TestJobListAndMatch(t *testing.T) {
	h, store := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript", "React"})

	job := catalog.Job{
		ID:                    "job-1",
		Title:                 "Frontend Developer Intern",
		Company:               "TestCo",
		Location:              "Remote",
		RequiredSkills:        []string{"JavaScript", "React", "HTML", "CSS"},
		RecommendedExperience: "0-1 years",
		JobType:               "Internship",
		PostedAt:              time.Now().UTC(),
	}
	if err := store.InsertJob(job); err != nil {
		t.Fatalf("InsertJob() error: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/jobs", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list := decode[jobListResponse](t, rec)
	if len(list.Jobs) != 1 || list.Pagination.Total != 1 || list.Pagination.Pages != 1 {
		t.Errorf("list = %+v", list)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/jobs/job-1/match", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("match status = %d, body %s", rec.Code, rec.Body.String())
	}
	match := decode[struct {
		MatchPercentage int      `json:"matchPercentage"`
		MissingSkills   []string `json:"missingSkills"`
	}](t, rec)
	if match.MatchPercentage != 45 {
		t.Errorf("matchPercentage = %d, want 45", match.MatchPercentage)
	}
	if len(match.MissingSkills) != 2 {
		t.Errorf("missingSkills = %v", match.MissingSkills)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/jobs/nope/match", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing job: status = %d, want 404", rec.Code)
	}
}

func TestJobGaps(t *testing.T) {
	h, store := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript"})

	if err := store.InsertJob(catalog.Job{
		ID:             "job-1",
		Title:          "Backend Developer",
		RequiredSkills: []string{"JavaScript", "Docker"},
		PostedAt:       time.Now().UTC(),
	}); err != nil {
		t.Fatalf("InsertJob() error: %v", err)
	}
	if err := store.InsertResource(catalog.Resource{
		ID: "r1", Title: "Docker Basics", RelatedSkills: []string{"Docker"}, CostType: catalog.Free,
	}); err != nil {
		t.Fatalf("InsertResource() error: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/jobs/job-1/gaps", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Docker Basics") || !strings.Contains(body, `"Docker"`) {
		t.Errorf("gaps body = %s", body)
	}
}

func TestRoadmapFlow(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", nil)

	rec := doJSON(t, h, http.MethodGet, "/api/roadmap/current", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("empty roadmap: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/roadmap/generate", token, map[string]any{
		"targetRole":           "Full Stack Developer",
		"timeframeMonths":      6,
		"learningHoursPerWeek": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d, body %s", rec.Code, rec.Body.String())
	}
	rm := decode[storage.Roadmap](t, rec)
	if len(rm.Phases) != 4 {
		t.Errorf("phases = %d, want 4 for a 6 month plan", len(rm.Phases))
	}
	if rm.CurrentPhase != 1 || rm.Progress != 0 {
		t.Errorf("fresh roadmap state: phase %d progress %d", rm.CurrentPhase, rm.Progress)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/roadmap/current", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("current status = %d", rec.Code)
	}
	if decode[storage.Roadmap](t, rec).ID != rm.ID {
		t.Error("current roadmap is not the one just generated")
	}

	rec = doJSON(t, h, http.MethodPut, "/api/roadmap/"+rm.ID+"/progress", token, map[string]any{
		"currentPhase": 2, "progress": 30,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("progress status = %d, body %s", rec.Code, rec.Body.String())
	}
	updated := decode[storage.Roadmap](t, rec)
	if updated.CurrentPhase != 2 || updated.Progress != 30 {
		t.Errorf("after update: phase %d progress %d", updated.CurrentPhase, updated.Progress)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/roadmap/"+rm.ID+"/progress", token, map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty progress body: status = %d, want 400", rec.Code)
	}
}

func TestRoadmapGenerateValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", nil)

	rec := doJSON(t, h, http.MethodPost, "/api/roadmap/generate", token, map[string]any{
		"targetRole":           "Full Stack Developer",
		"timeframeMonths":      48,
		"learningHoursPerWeek": 10,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateSkills(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript"})

	rec := doJSON(t, h, http.MethodPut, "/api/profile/skills", token, map[string]any{
		"skills": []string{"Go", "Docker"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	me := decode[userView](t, rec)
	if len(me.Skills) != 2 || me.Skills[0] != "Go" {
		t.Errorf("Skills = %v", me.Skills)
	}
}

func TestUploadCV(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("cv", "resume.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error: %v", err)
	}
	io.WriteString(fw, "Senior engineer with 6 years of experience in Go, Docker and Kubernetes.")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/profile/cv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Skills          []string `json:"skills"`
		ExperienceLevel string   `json:"experienceLevel"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ExperienceLevel != "Senior" {
		t.Errorf("experienceLevel = %s, want Senior", resp.ExperienceLevel)
	}
	found := false
	for _, s := range resp.Skills {
		if s == "Docker" {
			found = true
		}
	}
	if !found {
		t.Errorf("skills = %v, want Docker present", resp.Skills)
	}

	// Extracted skills land on the profile.
	rec2 := doJSON(t, h, http.MethodGet, "/api/auth/me", token, nil)
	me := decode[userView](t, rec2)
	if len(me.Skills) == 0 {
		t.Error("profile skills empty after CV upload")
	}
}

func TestDashboard(t *testing.T) {
	h, store := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript", "React"})

	if err := store.InsertJob(catalog.Job{
		ID: "j1", Title: "Frontend Developer", RequiredSkills: []string{"JavaScript", "React"},
		PostedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("InsertJob() error: %v", err)
	}
	if err := store.InsertResource(catalog.Resource{
		ID: "r1", Title: "React Course", RelatedSkills: []string{"React"}, CostType: catalog.Free,
	}); err != nil {
		t.Fatalf("InsertResource() error: %v", err)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/dashboard/recommendations", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Frontend Developer") || !strings.Contains(body, "React Course") {
		t.Errorf("dashboard body = %s", body)
	}
}

func TestAssistantChat(t *testing.T) {
	h, _ := newTestHandler(t)
	token := register(t, h, "alex@example.com", []string{"JavaScript"})

	rec := doJSON(t, h, http.MethodPost, "/api/assistant/chat", token, map[string]any{
		"message": "what roles fit me?",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reply == "" {
		t.Error("empty reply")
	}
}
