package roadmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/textgen"
)

const generatorSystemPrompt = "You are a career development expert. Create detailed, " +
	"practical career roadmaps that help people achieve their career goals."

// Generator produces roadmaps through a text-generation backend, falling back
// to the static Selector when generation fails or returns malformed output.
// The fallback is part of the contract: Generate never returns an error.
type Generator struct {
	gen      textgen.Generator
	selector *Selector
}

// NewGenerator creates a Generator. gen may be textgen.Disabled, in which case
// every request is served by the selector.
func NewGenerator(gen textgen.Generator, selector *Selector) *Generator {
	return &Generator{gen: gen, selector: selector}
}

// Generate returns roadmap phases for the target role and timeframe,
// personalised to the profile when the generation backend is available.
func (g *Generator) Generate(ctx context.Context, profile catalog.Profile, targetRole string, timeframeMonths, hoursPerWeek int) []Phase {
	raw, err := g.gen.Generate(ctx, generatorSystemPrompt, buildPrompt(profile, targetRole, timeframeMonths, hoursPerWeek))
	if err != nil {
		slog.Debug("roadmap generation failed, using template", "role", targetRole, "error", err)
		return g.selector.Select(targetRole, timeframeMonths)
	}

	phases, err := parsePhases(raw)
	if err != nil {
		slog.Warn("roadmap response unparseable, using template", "role", targetRole, "error", err)
		return g.selector.Select(targetRole, timeframeMonths)
	}
	return phases
}

func buildPrompt(profile catalog.Profile, targetRole string, timeframeMonths, hoursPerWeek int) string {
	skills := strings.Join(profile.Skills, ", ")
	if skills == "" {
		skills = "None specified"
	}
	level := profile.ExperienceLevel
	if level == "" {
		level = catalog.Fresher
	}

	return fmt.Sprintf(`Create a detailed %d month career roadmap for transitioning to a %s role.

Current Profile:
- Skills: %s
- Experience Level: %s
- Learning Hours per Week: %d

Generate a step-by-step roadmap with phases. Each phase should include:
- Phase number and title
- Duration (e.g., "Week 1-2")
- Topics to learn
- Technologies to master
- Project ideas
- Learning resources (title, type, and description)
- Milestones to achieve

Return the response as a JSON object with this structure:
{
  "phases": [
    {
      "phaseNumber": 1,
      "title": "Phase Title",
      "duration": "Week 1-2",
      "topics": ["Topic 1", "Topic 2"],
      "technologies": ["Tech 1", "Tech 2"],
      "projectIdeas": ["Project 1", "Project 2"],
      "learningResources": [
        {
          "title": "Resource Title",
          "url": "https://example.com",
          "type": "Course"
        }
      ],
      "milestones": ["Milestone 1", "Milestone 2"]
    }
  ]
}

Make it practical and achievable.`, timeframeMonths, targetRole, skills, level, hoursPerWeek)
}

// parsePhases extracts roadmap phases from a model response. Models frequently
// wrap JSON in markdown code fences or prepend conversational filler, so the
// parser strips fences and cuts the substring between the first { and the
// last } before unmarshalling.
func parsePhases(resp string) ([]Phase, error) {
	s := strings.TrimSpace(resp)

	if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		if strings.HasPrefix(s, "json") {
			s = s[4:]
		}
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var obj struct {
		Phases []Phase `json:"phases"`
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("unmarshal phases: %w", err)
	}
	if len(obj.Phases) == 0 {
		return nil, fmt.Errorf("response contains no phases")
	}
	return obj.Phases, nil
}
