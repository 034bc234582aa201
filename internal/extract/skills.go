// Package extract pulls structured profile data out of raw CV material:
// skills via a keyword dictionary, an experience-level heuristic, and text
// extraction from PDF and HTML uploads.
package extract

import (
	"regexp"
	"strings"

	"github.com/skillbridge/skillbridge/internal/catalog"
)

// techSkills is the keyword dictionary for skill extraction. Entries keep
// their canonical casing; matching is case-insensitive on word boundaries.
var techSkills = []string{
	// Programming languages
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go", "Rust", "PHP", "Ruby", "Swift", "Kotlin",
	// Frontend
	"React", "Vue", "Angular", "Next.js", "Nuxt", "Svelte", "HTML", "CSS", "SCSS", "SASS", "Tailwind", "Bootstrap",
	// Backend
	"Node.js", "Express", "Django", "Flask", "Spring", "Laravel", "FastAPI", "NestJS",
	// Databases
	"MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis", "Elasticsearch", "DynamoDB",
	// Cloud and ops
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Jenkins", "GitHub Actions", "Terraform",
	// Tools and patterns
	"Git", "REST API", "GraphQL", "Microservices", "WebSocket", "JWT", "OAuth",
	// Data science
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy", "Scikit-learn",
	// Mobile
	"React Native", "Flutter", "iOS", "Android",
	// Other
	"Agile", "Scrum", "DevOps", "Linux", "Unix", "Shell Scripting",
}

// skillPatterns is built once from techSkills.
var skillPatterns = buildSkillPatterns()

type skillPattern struct {
	name string
	re   *regexp.Regexp
}

func buildSkillPatterns() []skillPattern {
	patterns := make([]skillPattern, 0, len(techSkills))
	for _, skill := range techSkills {
		// Word boundaries keep "Java" from firing inside arbitrary words;
		// the trailing boundary is dropped for names ending in a symbol
		// ("C++", "C#") where \b cannot match.
		quoted := regexp.QuoteMeta(strings.ToLower(skill))
		expr := `\b` + quoted
		if last := skill[len(skill)-1]; isWordByte(last) {
			expr += `\b`
		}
		patterns = append(patterns, skillPattern{name: skill, re: regexp.MustCompile(expr)})
	}
	return patterns
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Skills extracts known skills from CV text, in dictionary order with
// canonical casing. Empty input yields an empty slice.
func Skills(cvText string) []string {
	text := strings.ToLower(cvText)
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	found := make([]string, 0, 16)
	for _, p := range skillPatterns {
		if p.re.MatchString(text) {
			found = append(found, p.name)
		}
	}
	return found
}

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*(?:-\s*\d+\s*)?years?`)

// ExperienceLevel guesses the seniority of a CV by seniority keywords first
// and a years-of-experience figure second. Unrecognizable text maps to
// Fresher.
func ExperienceLevel(cvText string) catalog.ExperienceLevel {
	text := strings.ToLower(cvText)

	switch {
	case strings.Contains(text, "senior") || strings.Contains(text, "lead "):
		return catalog.Senior
	case strings.Contains(text, "mid-level") || strings.Contains(text, "intermediate"):
		return catalog.Mid
	case strings.Contains(text, "junior"):
		return catalog.Junior
	}

	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		switch years := atoiSafe(m[1]); {
		case years >= 6:
			return catalog.Senior
		case years >= 3:
			return catalog.Mid
		case years >= 1:
			return catalog.Junior
		}
	}
	return catalog.Fresher
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
