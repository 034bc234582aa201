// Package recommend ranks jobs and learning resources for a user profile.
//
// Two independent job paths exist: RankJobs applies the weighted match score,
// while JobsBySkillOverlap uses the dashboard's simpler skill-count rule.
// Resource ranking likewise uses a raw overlap rule, separate from the
// weighted job formula.
package recommend

import (
	"sort"
	"strings"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/matching"
)

// RankedJob pairs a job with its match result. The job itself is never
// mutated; scoring output lives alongside it in this composition.
type RankedJob struct {
	Job catalog.Job `json:"job"`
	matching.Result
}

// RankedResource is a learning resource annotated with its skill overlap.
type RankedResource struct {
	Resource      catalog.Resource `json:"resource"`
	MatchedSkills []string         `json:"matchedSkills"`
	MatchCount    int              `json:"matchCount"`
	Reason        string           `json:"reason"`
}

// OverlapJob is a job ranked by raw skill overlap rather than the weighted
// formula. MatchedSkills carry the profile's casing.
type OverlapJob struct {
	Job           catalog.Job `json:"job"`
	MatchedSkills []string    `json:"matchedSkills"`
	MatchCount    int         `json:"matchCount"`
	Reason        string      `json:"reason"`
}

// RankJobs scores every job against the profile and returns them sorted by
// match percentage descending. The sort is stable: jobs with equal scores keep
// their input order. A limit <= 0 means no truncation.
func RankJobs(profile catalog.Profile, jobs []catalog.Job, limit int) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, job := range jobs {
		ranked = append(ranked, RankedJob{Job: job, Result: matching.Score(profile, job)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercentage > ranked[j].MatchPercentage
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// JobsBySkillOverlap ranks jobs by how many profile skills overlap their
// required skills, drops jobs with no overlap, and sorts by overlap count
// descending (stable). A limit <= 0 means no truncation.
func JobsBySkillOverlap(profile catalog.Profile, jobs []catalog.Job, limit int) []OverlapJob {
	ranked := make([]OverlapJob, 0, len(jobs))
	for _, job := range jobs {
		var matched []string
		for _, skill := range profile.Skills {
			if anyMatch(job.RequiredSkills, skill) {
				matched = append(matched, skill)
			}
		}
		if len(matched) == 0 {
			continue
		}
		ranked = append(ranked, OverlapJob{
			Job:           job,
			MatchedSkills: matched,
			MatchCount:    len(matched),
			Reason:        "Matches: " + strings.Join(matched, ", "),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchCount > ranked[j].MatchCount
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// RankResources ranks resources by overlap between the profile's skills (and
// preferred track) and each resource's related skills. Matched skills carry
// the casing of the resource's related skills. When the preferred track
// matches a related skill and is not already listed, it is appended. Resources
// with no matches are dropped; the sort by match count is stable. A limit <= 0
// means no truncation.
func RankResources(profile catalog.Profile, resources []catalog.Resource, limit int) []RankedResource {
	ranked := make([]RankedResource, 0, len(resources))
	for _, res := range resources {
		var matched []string
		for _, skill := range profile.Skills {
			if related, ok := firstMatch(res.RelatedSkills, skill); ok {
				matched = append(matched, related)
			}
		}

		if profile.PreferredTrack != "" && anyMatch(res.RelatedSkills, profile.PreferredTrack) &&
			!containsString(matched, profile.PreferredTrack) {
			matched = append(matched, profile.PreferredTrack)
		}

		if len(matched) == 0 {
			continue
		}
		ranked = append(ranked, RankedResource{
			Resource:      res,
			MatchedSkills: matched,
			MatchCount:    len(matched),
			Reason:        "Matches: " + strings.Join(matched, ", "),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchCount > ranked[j].MatchCount
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func anyMatch(skills []string, token string) bool {
	for _, s := range skills {
		if matching.SkillsMatch(s, token) {
			return true
		}
	}
	return false
}

func firstMatch(skills []string, token string) (string, bool) {
	for _, s := range skills {
		if matching.SkillsMatch(s, token) {
			return s, true
		}
	}
	return "", false
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
