package matching

import "strings"

// SkillsMatch reports whether two skill tokens refer to the same skill.
// Comparison is case-insensitive bidirectional substring containment: the
// tokens match if either one contains the other after lowercasing. There is
// no stemming and no synonym table, so "React" matches "react developer" and
// "Java" matches "JavaScript".
func SkillsMatch(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// anySkillMatches reports whether any entry of skills matches the token.
func anySkillMatches(skills []string, token string) bool {
	for _, s := range skills {
		if SkillsMatch(s, token) {
			return true
		}
	}
	return false
}
