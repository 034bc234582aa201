// Package assistant implements the CareerBot mentor: a rule-based responder
// over the user's profile, optionally upgraded by a text-generation backend.
// Generation failures are silent; the rule-based path always answers.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skillbridge/skillbridge/internal/catalog"
	"github.com/skillbridge/skillbridge/internal/textgen"
)

const greeting = "Hello! I'm your CareerBot assistant. How can I help you with your career journey today?"

// Bot answers career questions for a user profile.
type Bot struct {
	gen textgen.Generator
}

// New creates a Bot. gen may be textgen.Disabled for rule-based-only replies.
func New(gen textgen.Generator) *Bot {
	return &Bot{gen: gen}
}

// Respond answers the query for the given profile. profile may be nil for
// anonymous queries.
func (b *Bot) Respond(ctx context.Context, query string, profile *catalog.Profile) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return greeting
	}

	if reply, err := b.gen.Generate(ctx, systemPrompt(profile), query); err == nil {
		return reply
	} else if !errors.Is(err, textgen.ErrUnavailable) {
		slog.Debug("assistant generation failed, using rules", "error", err)
	}

	return ruleBased(strings.ToLower(query), profile)
}

func systemPrompt(profile *catalog.Profile) string {
	var sb strings.Builder
	sb.WriteString("You are CareerBot, a helpful career mentor assistant for the SkillBridge platform.\n")
	sb.WriteString("Your goal is to help users with career guidance, skill development, and job matching.\n")
	sb.WriteString("Provide practical, actionable advice. Be concise, friendly, and encouraging.\n")
	if profile != nil {
		skills := strings.Join(profile.Skills, ", ")
		if skills == "" {
			skills = "Not specified"
		}
		track := profile.PreferredTrack
		if track == "" {
			track = "Not specified"
		}
		fmt.Fprintf(&sb, "User Profile:\n- Skills: %s\n- Experience Level: %s\n- Preferred Track: %s\n",
			skills, profile.ExperienceLevel, track)
	}
	return sb.String()
}

// why builds a short transparency trailer explaining what the suggestion is
// based on.
func why(profile *catalog.Profile, extra string) string {
	base := "Why this suggestion:"
	switch {
	case profile != nil && len(profile.Skills) > 0:
		base += fmt.Sprintf(" based on your skills (%s).", strings.Join(firstN(profile.Skills, 5), ", "))
	case profile != nil && profile.PreferredTrack != "":
		base += fmt.Sprintf(" because you indicated an interest in %s.", profile.PreferredTrack)
	default:
		base += " based on common industry expectations for these roles."
	}
	if extra != "" {
		base += " " + extra
	}
	return "\n\n" + base
}

func ruleBased(query string, profile *catalog.Profile) string {
	var skills []string
	level := catalog.Fresher
	track := ""
	if profile != nil {
		skills = profile.Skills
		if profile.ExperienceLevel != "" {
			level = profile.ExperienceLevel
		}
		track = profile.PreferredTrack
	}

	has := func(terms ...string) bool {
		for _, t := range terms {
			if strings.Contains(query, t) {
				return true
			}
		}
		return false
	}

	switch {
	case has("role") && has("fit", "match", "suit"):
		if len(skills) == 0 {
			return "To find roles that fit your skills, please update your profile with your skills. " +
				"Once you add your skills, I can provide better recommendations!" +
				why(profile, "Skills help match to real job requirements.")
		}
		roleSuggestion := track
		if roleSuggestion == "" {
			roleSuggestion = "Full Stack Developer"
		}
		seniority := "Junior/Mid-level Developer"
		if level == catalog.Senior {
			seniority = "Senior Developer or Tech Lead"
		}
		return fmt.Sprintf("Based on your skills (%s), you might be a good fit for roles like:\n- %s\n- Software Developer\n- %s\n\n"+
			"I recommend checking the job listings to see specific opportunities that match your profile!",
			strings.Join(firstN(skills, 5), ", "), roleSuggestion, seniority) +
			why(profile, "Check job descriptions for required seniority and tech stack.")

	case has("learn", "study", "skill") && has("next"):
		if track == "" {
			return "To get personalized learning recommendations, please set your preferred career track in your profile. " +
				"Then check your skill gap analysis and recommended resources!" +
				why(profile, "Preferred track enables targeted learning plans.")
		}
		return fmt.Sprintf("For %s, I recommend focusing on:\n1. Core technologies in your track\n"+
			"2. Industry-standard tools and frameworks\n3. Building practical projects\n\n"+
			"Check the learning resources for curated materials, or run a gap analysis for personalized recommendations!", track) +
			why(profile, fmt.Sprintf("This sequence builds practical capability for %s.", track))

	case has("learn", "study", "skill"):
		return "Great question! I recommend:\n1. Run a skill gap analysis\n2. Browse the learning resources\n" +
			"3. Consider creating a career roadmap for structured learning\n\n" +
			"What specific skill or area would you like to learn about?" +
			why(profile, "This helps you focus and track progress.")

	case has("job") && has("match", "recommend", "find"):
		return "I can help you find jobs! Browse the job listings to see available opportunities. " +
			"Your recommendations are matched by skill overlap and experience level." +
			why(profile, "Jobs are matched by skill overlap and experience.")

	case has("roadmap", "path", "plan"):
		return "A career roadmap is a great way to structure your learning! Generate one by selecting " +
			"your target role and timeframe. The roadmap gives you a step-by-step plan with phases, " +
			"topics, projects, and resources. Would you like to create one?" +
			why(profile, "A roadmap focuses learning and timelines for progress.")

	case has("gap", "missing", "need"):
		return "To see your skill gaps, run a gap analysis against the jobs you are interested in. " +
			"It lists the skills you are missing and recommends learning resources for each. " +
			"This will help you identify what to learn next to reach your career goals!" +
			why(profile, "Identifying gaps targets your study effectively.")

	case has("hello", "hi", "hey"):
		return "Hello! I'm CareerBot, your career mentor. I can help you with:\n" +
			"- Finding roles that match your skills\n- Learning recommendations\n" +
			"- Career roadmap planning\n- Skill gap analysis\n- Job matching\n\nWhat would you like to know?" +
			why(profile, "")

	case has("help", "what can you"):
		return "I can help you with:\n1. Role Matching: \"Which roles fit my skills?\"\n" +
			"2. Learning: \"What should I learn next?\"\n3. Job Recommendations: \"Find me jobs\"\n" +
			"4. Career Roadmap: \"Create a roadmap for [role]\"\n5. Skill Gaps: \"What skills am I missing?\"\n\n" +
			"Try asking me one of these questions!" +
			why(profile, "")
	}

	return fmt.Sprintf("I understand you're asking about %q. Here's how I can help:\n\n"+
		"- Ask \"Which roles fit my skills?\" for role recommendations\n"+
		"- Ask \"What should I learn next?\" for learning guidance\n"+
		"- Ask \"Create a roadmap\" for career planning", query) +
		why(profile, "")
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
