// Package gap identifies the required skills a user is missing and ranks
// learning resources by how many of those gaps each one covers.
package gap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/matching"
)

// maxRecommendations caps the ranked resource list.
const maxRecommendations = 10

// Recommendation is a learning resource annotated with the missing skills it
// covers.
type Recommendation struct {
	catalog.Resource
	MatchedSkills []string `json:"matchedSkills"`
	Reason        string   `json:"reason"`
}

// Analysis is the result of a gap analysis against one required-skill set.
type Analysis struct {
	MissingSkills   []string         `json:"missingSkills"`
	GapCount        int              `json:"gapCount"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ComprehensiveAnalysis aggregates gaps across a collection of target jobs.
type ComprehensiveAnalysis struct {
	CurrentSkills  []string `json:"currentSkills"`
	TargetSkills   []string `json:"targetSkills"`
	Gap            Analysis `json:"gapAnalysis"`
	PrioritySkills []string `json:"prioritySkills"`
}

// Analyze returns the required skills not satisfied by userSkills (original
// casing preserved) and up to ten resources ranked by gap coverage. Resources
// covering no missing skill are dropped; ties on coverage rank free resources
// before paid ones, and remaining ties keep input order.
func Analyze(userSkills, requiredSkills []string, resources []catalog.Resource) Analysis {
	missing := make([]string, 0, len(requiredSkills))
	for _, required := range requiredSkills {
		if !covered(userSkills, required) {
			missing = append(missing, required)
		}
	}

	return Analysis{
		MissingSkills:   missing,
		GapCount:        len(missing),
		Recommendations: recommend(missing, resources),
	}
}

// Comprehensive unions the required skills of all target jobs, deduplicated by
// exact string equality in first-seen order, and analyzes the gap against that
// union. PrioritySkills are the first five missing skills in union order.
func Comprehensive(profile catalog.Profile, jobs []catalog.Job, resources []catalog.Resource) ComprehensiveAnalysis {
	seen := make(map[string]struct{})
	var target []string
	for _, job := range jobs {
		for _, skill := range job.RequiredSkills {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			target = append(target, skill)
		}
	}

	analysis := Analyze(profile.Skills, target, resources)

	priority := analysis.MissingSkills
	if len(priority) > 5 {
		priority = priority[:5]
	}

	return ComprehensiveAnalysis{
		CurrentSkills:  profile.Skills,
		TargetSkills:   target,
		Gap:            analysis,
		PrioritySkills: priority,
	}
}

func covered(userSkills []string, required string) bool {
	for _, s := range userSkills {
		if matching.SkillsMatch(s, required) {
			return true
		}
	}
	return false
}

func recommend(missing []string, resources []catalog.Resource) []Recommendation {
	if len(missing) == 0 {
		return []Recommendation{}
	}

	recs := make([]Recommendation, 0, len(resources))
	for _, res := range resources {
		var matched []string
		for _, skill := range missing {
			if coveredBy(res.RelatedSkills, skill) {
				matched = append(matched, skill)
			}
		}
		if len(matched) == 0 {
			continue
		}
		recs = append(recs, Recommendation{
			Resource:      res,
			MatchedSkills: matched,
			Reason:        coverageReason(matched),
		})
	}

	// Coverage count first, free before paid on ties; stable keeps input order.
	sort.SliceStable(recs, func(i, j int) bool {
		if len(recs[i].MatchedSkills) != len(recs[j].MatchedSkills) {
			return len(recs[i].MatchedSkills) > len(recs[j].MatchedSkills)
		}
		return recs[i].CostType == catalog.Free && recs[j].CostType != catalog.Free
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func coveredBy(relatedSkills []string, skill string) bool {
	for _, rs := range relatedSkills {
		if matching.SkillsMatch(rs, skill) {
			return true
		}
	}
	return false
}

func coverageReason(matched []string) string {
	plural := ""
	if len(matched) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Covers %d missing skill%s: %s", len(matched), plural, strings.Join(matched, ", "))
}
