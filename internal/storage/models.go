package storage

import (
	"errors"
	"time"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/roadmap"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when registering an already-used email address.
var ErrEmailTaken = errors.New("email already registered")

// User is a registered account with its skills profile.
type User struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    string
	Education       string
	Department      string
	ExperienceLevel catalog.ExperienceLevel
	PreferredTrack  string
	Skills          []string
	CVText          string
	CreatedAt       time.Time
}

// Profile returns the scoring view of the user.
func (u User) Profile() catalog.Profile {
	return catalog.Profile{
		Skills:          u.Skills,
		ExperienceLevel: u.ExperienceLevel,
		PreferredTrack:  u.PreferredTrack,
	}
}

// ProfileUpdate is a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	FullName        *string
	Education       *string
	Department      *string
	ExperienceLevel *catalog.ExperienceLevel
	PreferredTrack  *string
	Skills          *[]string
	CVText          *string
}

// JobFilter narrows job listings. Zero values mean "no constraint".
type JobFilter struct {
	Search   string // matches title, company, or description
	Location string
	JobType  string
	Skill    string // matches any required skill
	Page     int    // 1-based; 0 means first page
	Limit    int    // 0 means default page size
}

// Roadmap is a stored career roadmap for one user.
type Roadmap struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	TargetRole           string          `json:"targetRole"`
	TimeframeMonths      int             `json:"timeframeMonths"`
	LearningHoursPerWeek int             `json:"learningHoursPerWeek"`
	Phases               []roadmap.Phase `json:"phases"`
	CurrentPhase         int             `json:"currentPhase"`
	Progress             int             `json:"progress"`
	CreatedAt            time.Time       `json:"createdAt"`
}
