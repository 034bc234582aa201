// Package roadmap builds phased career roadmaps. A Selector serves static
// templates embedded as JSON data assets; a Generator optionally produces
// roadmaps through a text-generation backend, falling back to the Selector
// whenever the backend is unavailable or returns malformed output.
package roadmap

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed templates/*.json
var templatesFS embed.FS

// genericTemplateFile holds the fallback for roles with no dedicated template.
const genericTemplateFile = "generic.json"

// LearningResource is a pointer to external study material inside a phase.
type LearningResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// Phase is one step of a roadmap.
type Phase struct {
	PhaseNumber       int                `json:"phaseNumber"`
	Title             string             `json:"title"`
	Duration          string             `json:"duration"`
	Topics            []string           `json:"topics"`
	Technologies      []string           `json:"technologies"`
	ProjectIdeas      []string           `json:"projectIdeas"`
	LearningResources []LearningResource `json:"learningResources"`
	Milestones        []string           `json:"milestones"`
}

type templateFile struct {
	Role   string  `json:"role"`
	Phases []Phase `json:"phases"`
}

// Selector serves roadmap templates keyed by exact target-role string.
type Selector struct {
	templates map[string][]Phase
	generic   []Phase
}

// NewSelector loads all embedded templates. It fails only if the embedded
// data is malformed, which is a build defect rather than a runtime condition.
func NewSelector() (*Selector, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	s := &Selector{templates: make(map[string][]Phase)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := templatesFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}
		var tmpl templateFile
		if err := json.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}
		if entry.Name() == genericTemplateFile {
			s.generic = tmpl.Phases
			continue
		}
		if tmpl.Role == "" {
			return nil, fmt.Errorf("template %s has no role", entry.Name())
		}
		s.templates[tmpl.Role] = tmpl.Phases
	}

	if len(s.generic) == 0 {
		return nil, fmt.Errorf("missing generic template")
	}
	return s, nil
}

// Select returns the phases for the target role, truncated to fit the
// timeframe: up to 3 months keeps the first 3 phases, up to 6 months the
// first 4, longer timeframes keep all. Templates shorter than the cut are
// returned as-is. Roles with no dedicated template get the generic one.
func (s *Selector) Select(targetRole string, timeframeMonths int) []Phase {
	phases, ok := s.templates[targetRole]
	if !ok {
		phases = s.generic
	}

	max := len(phases)
	switch {
	case timeframeMonths <= 3:
		max = 3
	case timeframeMonths <= 6:
		max = 4
	}
	if len(phases) > max {
		phases = phases[:max]
	}

	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}

// Roles returns the target roles with a dedicated template, sorted.
func (s *Selector) Roles() []string {
	roles := make([]string, 0, len(s.templates))
	for role := range s.templates {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
