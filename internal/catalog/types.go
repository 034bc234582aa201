// Package catalog defines the domain types shared by the matching, gap
// analysis, and recommendation packages: user profiles, job postings, and
// learning resources. All types are plain values owned by the caller; the
// scoring packages read them and never mutate them.
package catalog

import "time"

// ExperienceLevel is a user's self-reported seniority.
type ExperienceLevel string

const (
	Fresher ExperienceLevel = "Fresher"
	Junior  ExperienceLevel = "Junior"
	Mid     ExperienceLevel = "Mid"
	Senior  ExperienceLevel = "Senior"
)

// Ordinal maps the level to a comparable rank. Unknown values rank as Fresher.
func (l ExperienceLevel) Ordinal() int {
	switch l {
	case Junior:
		return 1
	case Mid:
		return 2
	case Senior:
		return 3
	default:
		return 0
	}
}

// Profile is the skills view of a user. Skills keep their input order and may
// contain duplicates; scoring does not deduplicate them.
type Profile struct {
	Skills          []string        `json:"skills"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	PreferredTrack  string          `json:"preferredTrack"`
}

// Job is a single job posting from the catalog.
type Job struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	Company               string    `json:"company"`
	Location              string    `json:"location"`
	RequiredSkills        []string  `json:"requiredSkills"`
	RecommendedExperience string    `json:"recommendedExperience"`
	JobType               string    `json:"jobType"`
	Description           string    `json:"description"`
	PostedAt              time.Time `json:"postedAt"`
}

// CostType classifies a learning resource as free or paid.
type CostType string

const (
	Free CostType = "Free"
	Paid CostType = "Paid"
)

// Resource is a learning resource (course, tutorial, documentation).
type Resource struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Platform      string   `json:"platform"`
	URL           string   `json:"url"`
	RelatedSkills []string `json:"relatedSkills"`
	CostType      CostType `json:"costType"`
	Price         float64  `json:"price"`
	Description   string   `json:"description"`
}
