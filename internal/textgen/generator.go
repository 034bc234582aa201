// Package textgen abstracts an external text-generation backend behind a
// small capability interface. Components that consume it (roadmap generation,
// the career assistant) must treat every error as a signal to fall back to
// their rule-based path; generation is an enhancement, never a requirement.
package textgen

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no generation backend is configured.
var ErrUnavailable = errors.New("text generation unavailable")

// Generator produces free-form text from a system instruction and a prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Disabled is the default Generator when no backend is configured. Every call
// fails with ErrUnavailable, routing consumers to their static fallbacks.
type Disabled struct{}

func (Disabled) Generate(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}
