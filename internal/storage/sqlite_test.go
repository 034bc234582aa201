package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/roadmap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testUser(id, email string) User {
	return User{
		ID:              id,
		FullName:        "Test User",
		Email:           email,
		PasswordHash:    "hash",
		Education:       "BSc",
		Department:      "Engineering",
		ExperienceLevel: catalog.Junior,
		PreferredTrack:  "Full Stack Development",
		Skills:          []string{"Go", "SQL"},
		CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUserRoundTrip(t *testing.T) {
	s := newTestStore(t)

	u := testUser("u1", "a@example.com")
	if err := s.CreateUser(u); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	got, err := s.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() error: %v", err)
	}
	if got.Email != u.Email || got.FullName != u.FullName || got.ExperienceLevel != catalog.Junior {
		t.Errorf("GetUser() = %+v", got)
	}
	if len(got.Skills) != 2 || got.Skills[0] != "Go" {
		t.Errorf("Skills = %v", got.Skills)
	}
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, u.CreatedAt)
	}

	byEmail, err := s.GetUserByEmail("a@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if byEmail.ID != "u1" {
		t.Errorf("GetUserByEmail().ID = %s", byEmail.ID)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateUser(testUser("u1", "dup@example.com")); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	err := s.CreateUser(testUser("u2", "dup@example.com"))
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email error = %v, want ErrEmailTaken", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetUser("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserProfilePartial(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateUser(testUser("u1", "a@example.com")); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	level := catalog.Senior
	skills := []string{"Go", "Kubernetes"}
	got, err := s.UpdateUserProfile("u1", ProfileUpdate{
		ExperienceLevel: &level,
		Skills:          &skills,
	})
	if err != nil {
		t.Fatalf("UpdateUserProfile() error: %v", err)
	}

	if got.ExperienceLevel != catalog.Senior {
		t.Errorf("ExperienceLevel = %s, want Senior", got.ExperienceLevel)
	}
	if len(got.Skills) != 2 || got.Skills[1] != "Kubernetes" {
		t.Errorf("Skills = %v", got.Skills)
	}
	// Untouched fields survive.
	if got.FullName != "Test User" || got.PreferredTrack != "Full Stack Development" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestUpdateUserProfileNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "Nobody"
	if _, err := s.UpdateUserProfile("missing", ProfileUpdate{FullName: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func testJob(id, title string, postedAt time.Time) catalog.Job {
	return catalog.Job{
		ID:                    id,
		Title:                 title,
		Company:               "TestCo",
		Location:              "Remote",
		RequiredSkills:        []string{"Go"},
		RecommendedExperience: "1-3 years",
		JobType:               "Full-time",
		Description:           "A test job.",
		PostedAt:              postedAt,
	}
}

func TestJobsNewestFirstWithPagination(t *testing.T) {
	s := newTestStore(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		if err := s.InsertJob(testJob(id, "Job "+id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("InsertJob() error: %v", err)
		}
	}

	jobs, total, err := s.ListJobs(JobFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListJobs() error: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(jobs) != 2 || jobs[0].ID != "e" || jobs[1].ID != "d" {
		t.Errorf("page 1 = %v, want [e d]", jobIDs(jobs))
	}

	jobs, _, err = s.ListJobs(JobFilter{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("ListJobs() error: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "a" {
		t.Errorf("page 3 = %v, want [a]", jobIDs(jobs))
	}
}

func TestListJobsFilters(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()

	j1 := testJob("j1", "Frontend Developer", now)
	j1.Location = "Berlin"
	j1.RequiredSkills = []string{"React", "CSS"}
	j2 := testJob("j2", "Backend Developer", now.Add(-time.Hour))
	j2.JobType = "Contract"
	j2.RequiredSkills = []string{"Go", "PostgreSQL"}
	for _, j := range []catalog.Job{j1, j2} {
		if err := s.InsertJob(j); err != nil {
			t.Fatalf("InsertJob() error: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter JobFilter
		want   []string
	}{
		{"search title", JobFilter{Search: "frontend"}, []string{"j1"}},
		{"location", JobFilter{Location: "berlin"}, []string{"j1"}},
		{"job type", JobFilter{JobType: "Contract"}, []string{"j2"}},
		{"skill", JobFilter{Skill: "postgresql"}, []string{"j2"}},
		{"no filter", JobFilter{}, []string{"j1", "j2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, total, err := s.ListJobs(tt.filter)
			if err != nil {
				t.Fatalf("ListJobs() error: %v", err)
			}
			got := jobIDs(jobs)
			if total != len(tt.want) || len(got) != len(tt.want) {
				t.Fatalf("got %v (total %d), want %v", got, total, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestGetJobNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetJob("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetJob(missing) error = %v, want ErrNotFound", err)
	}
}

func TestResourcesKeepInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	for _, r := range []catalog.Resource{
		{ID: "r1", Title: "First", RelatedSkills: []string{"Go"}, CostType: catalog.Free},
		{ID: "r2", Title: "Second", RelatedSkills: []string{"SQL"}, CostType: catalog.Paid, Price: 10},
	} {
		if err := s.InsertResource(r); err != nil {
			t.Fatalf("InsertResource() error: %v", err)
		}
	}

	got, err := s.AllResources()
	if err != nil {
		t.Fatalf("AllResources() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("AllResources() order wrong: %+v", got)
	}
	if got[1].CostType != catalog.Paid || got[1].Price != 10 {
		t.Errorf("resource fields = %+v", got[1])
	}
}

func TestRoadmapLifecycle(t *testing.T) {
	s := newTestStore(t)
	if err := s.CreateUser(testUser("u1", "a@example.com")); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	first := Roadmap{
		ID: "rm1", UserID: "u1", TargetRole: "Backend Developer",
		TimeframeMonths: 6, LearningHoursPerWeek: 10,
		Phases:       []roadmap.Phase{{PhaseNumber: 1, Title: "Basics", Topics: []string{"Go"}}},
		CurrentPhase: 1, CreatedAt: base,
	}
	second := first
	second.ID = "rm2"
	second.TargetRole = "Platform Engineer"
	second.CreatedAt = base.Add(time.Hour)

	for _, rm := range []Roadmap{first, second} {
		if err := s.SaveRoadmap(rm); err != nil {
			t.Fatalf("SaveRoadmap() error: %v", err)
		}
	}

	latest, err := s.LatestRoadmap("u1")
	if err != nil {
		t.Fatalf("LatestRoadmap() error: %v", err)
	}
	if latest.ID != "rm2" {
		t.Errorf("LatestRoadmap().ID = %s, want rm2", latest.ID)
	}

	got, err := s.GetRoadmap("rm1", "u1")
	if err != nil {
		t.Fatalf("GetRoadmap() error: %v", err)
	}
	if len(got.Phases) != 1 || got.Phases[0].Title != "Basics" {
		t.Errorf("Phases = %+v", got.Phases)
	}

	// Roadmaps are scoped to their owner.
	if _, err := s.GetRoadmap("rm1", "other-user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user GetRoadmap error = %v, want ErrNotFound", err)
	}

	phase, progress := 2, 40
	updated, err := s.UpdateRoadmapProgress("rm1", "u1", &phase, &progress)
	if err != nil {
		t.Fatalf("UpdateRoadmapProgress() error: %v", err)
	}
	if updated.CurrentPhase != 2 || updated.Progress != 40 {
		t.Errorf("after update: phase %d progress %d", updated.CurrentPhase, updated.Progress)
	}
}

func TestSeedPopulatesCatalog(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.CatalogEmpty()
	if err != nil {
		t.Fatalf("CatalogEmpty() error: %v", err)
	}
	if !empty {
		t.Fatal("new store should have an empty catalog")
	}

	if err := s.Seed(); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	empty, err = s.CatalogEmpty()
	if err != nil {
		t.Fatalf("CatalogEmpty() error: %v", err)
	}
	if empty {
		t.Error("catalog still empty after Seed()")
	}

	jobs, err := s.AllJobs()
	if err != nil {
		t.Fatalf("AllJobs() error: %v", err)
	}
	if len(jobs) != 18 {
		t.Errorf("seeded %d jobs, want 18", len(jobs))
	}

	resources, err := s.AllResources()
	if err != nil {
		t.Fatalf("AllResources() error: %v", err)
	}
	if len(resources) != 20 {
		t.Errorf("seeded %d resources, want 20", len(resources))
	}

	demo, err := s.GetUserByEmail("test@example.com")
	if err != nil {
		t.Fatalf("demo user missing: %v", err)
	}
	if demo.PreferredTrack != "Full Stack Development" {
		t.Errorf("demo user track = %q", demo.PreferredTrack)
	}
}

func jobIDs(jobs []catalog.Job) []string {
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	return ids
}
