package recommend

import (
	"reflect"
	"testing"

	"github.com/skillbridge/skillbridge/internal/catalog"
)

func TestRankJobsOrdering(t *testing.T) {
	profile := catalog.Profile{Skills: []string{"JavaScript", "React", "Node.js"}}
	jobs := []catalog.Job{
		{ID: "none", Title: "Chef", RequiredSkills: []string{"Cooking"}},
		{ID: "full", Title: "Full Stack Developer", RequiredSkills: []string{"JavaScript", "React", "Node.js"}},
		{ID: "half", Title: "Backend Developer", RequiredSkills: []string{"Node.js", "Rust"}},
	}

	got := RankJobs(profile, jobs, 0)

	if len(got) != 3 {
		t.Fatalf("got %d jobs, want 3", len(got))
	}
	if got[0].Job.ID != "full" {
		t.Errorf("first = %s, want full", got[0].Job.ID)
	}
	if got[len(got)-1].Job.ID != "none" {
		t.Errorf("last = %s, want none", got[len(got)-1].Job.ID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].MatchPercentage > got[i-1].MatchPercentage {
			t.Errorf("jobs not sorted descending at %d: %d > %d", i, got[i].MatchPercentage, got[i-1].MatchPercentage)
		}
	}
}

func TestRankJobsStableOnTies(t *testing.T) {
	profile := catalog.Profile{Skills: []string{"Go"}}
	jobs := []catalog.Job{
		{ID: "first", RequiredSkills: []string{"Go"}},
		{ID: "second", RequiredSkills: []string{"Go"}},
		{ID: "third", RequiredSkills: []string{"Go"}},
	}

	got := RankJobs(profile, jobs, 0)

	order := []string{got[0].Job.ID, got[1].Job.ID, got[2].Job.ID}
	if want := []string{"first", "second", "third"}; !reflect.DeepEqual(order, want) {
		t.Errorf("tie order = %v, want input order %v", order, want)
	}
}

func TestRankJobsLimit(t *testing.T) {
	profile := catalog.Profile{Skills: []string{"Go"}}
	jobs := []catalog.Job{
		{ID: "a", RequiredSkills: []string{"Go"}},
		{ID: "b", RequiredSkills: []string{"Go"}},
		{ID: "c", RequiredSkills: []string{"Go"}},
	}

	if got := RankJobs(profile, jobs, 2); len(got) != 2 {
		t.Errorf("limit 2 returned %d jobs", len(got))
	}
	if got := RankJobs(profile, jobs, 0); len(got) != 3 {
		t.Errorf("limit 0 returned %d jobs, want all", len(got))
	}
}

func TestJobsBySkillOverlap(t *testing.T) {
	profile := catalog.Profile{Skills: []string{"javascript", "React", "MongoDB"}}
	jobs := []catalog.Job{
		{ID: "two", RequiredSkills: []string{"JavaScript", "React", "Rust"}},
		{ID: "zero", RequiredSkills: []string{"Cooking"}},
		{ID: "three", RequiredSkills: []string{"JavaScript", "React", "MongoDB"}},
	}

	got := JobsBySkillOverlap(profile, jobs, 0)

	if len(got) != 2 {
		t.Fatalf("got %d jobs, want 2 (zero-overlap dropped)", len(got))
	}
	if got[0].Job.ID != "three" || got[1].Job.ID != "two" {
		t.Errorf("order = [%s, %s], want [three, two]", got[0].Job.ID, got[1].Job.ID)
	}
	// Matched skills carry the profile's casing.
	if want := []string{"javascript", "React", "MongoDB"}; !reflect.DeepEqual(got[0].MatchedSkills, want) {
		t.Errorf("MatchedSkills = %v, want %v", got[0].MatchedSkills, want)
	}
	if want := "Matches: javascript, React, MongoDB"; got[0].Reason != want {
		t.Errorf("Reason = %q, want %q", got[0].Reason, want)
	}
}

func TestRankResourcesResourceCasing(t *testing.T) {
	profile := catalog.Profile{Skills: []string{"react"}}
	resources := []catalog.Resource{
		{ID: "r", Title: "React Course", RelatedSkills: []string{"React", "JavaScript"}},
	}

	got := RankResources(profile, resources, 0)

	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if want := []string{"React"}; !reflect.DeepEqual(got[0].MatchedSkills, want) {
		t.Errorf("MatchedSkills = %v, want %v", got[0].MatchedSkills, want)
	}
	if got[0].MatchCount != 1 {
		t.Errorf("MatchCount = %d, want 1", got[0].MatchCount)
	}
	if want := "Matches: React"; got[0].Reason != want {
		t.Errorf("Reason = %q, want %q", got[0].Reason, want)
	}
}

func TestRankResourcesTrackAppended(t *testing.T) {
	profile := catalog.Profile{
		Skills:         []string{"HTML"},
		PreferredTrack: "Web Development",
	}
	resources := []catalog.Resource{
		{ID: "r", RelatedSkills: []string{"HTML", "Web Development"}},
	}

	got := RankResources(profile, resources, 0)

	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if want := []string{"HTML", "Web Development"}; !reflect.DeepEqual(got[0].MatchedSkills, want) {
		t.Errorf("MatchedSkills = %v, want %v", got[0].MatchedSkills, want)
	}
}

func TestRankResourcesTrackNotDuplicated(t *testing.T) {
	profile := catalog.Profile{
		Skills:         []string{"Web Development"},
		PreferredTrack: "Web Development",
	}
	resources := []catalog.Resource{
		{ID: "r", RelatedSkills: []string{"Web Development"}},
	}

	got := RankResources(profile, resources, 0)

	if len(got) != 1 {
		t.Fatalf("got %d resources, want 1", len(got))
	}
	if want := []string{"Web Development"}; !reflect.DeepEqual(got[0].MatchedSkills, want) {
		t.Errorf("MatchedSkills = %v, want %v", got[0].MatchedSkills, want)
	}
}

func TestRankResourcesDropsAndSorts(t *testing.T) {
	profile := catalog.Profile{Skills: []string{"React", "JavaScript"}}
	resources := []catalog.Resource{
		{ID: "one", RelatedSkills: []string{"React"}},
		{ID: "unrelated", RelatedSkills: []string{"Marketing"}},
		{ID: "two", RelatedSkills: []string{"React", "JavaScript"}},
	}

	got := RankResources(profile, resources, 0)

	if len(got) != 2 {
		t.Fatalf("got %d resources, want 2", len(got))
	}
	if got[0].Resource.ID != "two" || got[1].Resource.ID != "one" {
		t.Errorf("order = [%s, %s], want [two, one]", got[0].Resource.ID, got[1].Resource.ID)
	}
}
