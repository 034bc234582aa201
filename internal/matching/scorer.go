// Package matching computes a 0–100 match percentage between a user profile
// and a job posting. Scoring is a pure function over its inputs: no I/O, no
// shared state, identical inputs always produce an identical Result.
package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/skillbridge/skillbridge/internal/catalog"
)

// Weight distribution of the composite score: skill overlap dominates,
// experience fit and track affinity are bonuses on top.
const (
	skillWeight        = 0.7
	maxExperienceScore = 20
	maxTrackScore      = 10
)

// NoRequiredSkillsReason is returned for jobs that list no required skills.
const NoRequiredSkillsReason = "No required skills specified for this job"

// Result is the outcome of scoring one (profile, job) pair. MatchedSkills and
// MissingSkills carry the original casing from the job's required skills, and
// together partition the required-skill set.
type Result struct {
	MatchPercentage     int      `json:"matchPercentage"`
	MatchedSkills       []string `json:"matchedSkills"`
	MissingSkills       []string `json:"missingSkills"`
	Reason              string   `json:"reason"`
	SkillMatchCount     int      `json:"skillMatchCount"`
	TotalRequiredSkills int      `json:"totalRequiredSkills"`
}

// Score computes the weighted match between a profile and a job:
// skill overlap (70%), experience-level fit (up to 20 points), and track
// affinity (10 points). The total is rounded and clamped to [0, 100].
func Score(profile catalog.Profile, job catalog.Job) Result {
	if len(job.RequiredSkills) == 0 {
		return Result{
			MatchedSkills: []string{},
			MissingSkills: []string{},
			Reason:        NoRequiredSkillsReason,
		}
	}

	matched := make([]string, 0, len(job.RequiredSkills))
	missing := make([]string, 0, len(job.RequiredSkills))
	for _, required := range job.RequiredSkills {
		if anySkillMatches(profile.Skills, required) {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}

	skillScore := float64(len(matched)) / float64(len(job.RequiredSkills)) * 100
	expScore := experienceScore(profile.ExperienceLevel, job.RecommendedExperience)
	trkScore := trackScore(profile.PreferredTrack, job.Title)

	total := int(math.Round(skillScore*skillWeight + float64(expScore+trkScore)))
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return Result{
		MatchPercentage:     total,
		MatchedSkills:       matched,
		MissingSkills:       missing,
		Reason:              reason(total, len(matched), len(job.RequiredSkills), missing),
		SkillMatchCount:     len(matched),
		TotalRequiredSkills: len(job.RequiredSkills),
	}
}

// experienceScore rates how the user's level fits the job's free-text
// experience hint. The hint is scanned for seniority keyword families; text
// that names no family, or an absent hint, scores a neutral 10.
func experienceScore(level catalog.ExperienceLevel, recommended string) int {
	text := strings.ToLower(strings.TrimSpace(recommended))
	if text == "" {
		return 10
	}

	ord := level.Ordinal()
	switch {
	case strings.Contains(text, "senior") || strings.Contains(text, "lead"):
		if ord >= catalog.Senior.Ordinal() {
			return maxExperienceScore
		}
		if ord >= catalog.Mid.Ordinal() {
			return 10
		}
		return 0
	case strings.Contains(text, "mid") || strings.Contains(text, "intermediate"):
		if ord >= catalog.Junior.Ordinal() {
			return maxExperienceScore
		}
		return 10
	case strings.Contains(text, "junior") || strings.Contains(text, "entry"):
		if ord <= catalog.Junior.Ordinal() {
			return maxExperienceScore
		}
		return 15
	}
	return 10
}

// trackScore awards a flat bonus when the user's preferred track textually
// overlaps the job title: the title contains the track, or the track contains
// the title's first word.
func trackScore(track, title string) int {
	if track == "" || title == "" {
		return 0
	}
	trackLower := strings.ToLower(track)
	titleLower := strings.ToLower(title)
	if strings.Contains(titleLower, trackLower) {
		return maxTrackScore
	}
	if words := strings.Fields(titleLower); len(words) > 0 && strings.Contains(trackLower, words[0]) {
		return maxTrackScore
	}
	return 0
}

func reason(total, matchCount, requiredCount int, missing []string) string {
	switch {
	case total >= 80:
		return fmt.Sprintf("Excellent match! You have %d of %d required skills.", matchCount, requiredCount)
	case total >= 60:
		return fmt.Sprintf("Good match. You have %d of %d required skills.", matchCount, requiredCount)
	case total >= 40:
		return fmt.Sprintf("Partial match. You have %d of %d required skills. Consider learning: %s.",
			matchCount, requiredCount, strings.Join(firstN(missing, 3), ", "))
	default:
		return fmt.Sprintf("Low match. You have %d of %d required skills. Missing: %s.",
			matchCount, requiredCount, strings.Join(firstN(missing, 5), ", "))
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
