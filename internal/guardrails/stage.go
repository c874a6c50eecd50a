package guardrails

import (
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
)

// Stage is an ordered chain of rules applied to one payload.
type Stage struct {
	position models.Position
	rules    []Rule
}

func NewStage(position models.Position, rules []Rule) *Stage {
	return &Stage{
		position: position,
		rules:    rules,
	}
}

func (s *Stage) Position() models.Position {
	return s.position
}

func (s *Stage) Len() int {
	return len(s.rules)
}

// Apply runs the rules in order and stops at the first violation.
// Later rules are not evaluated once one has fired.
func (s *Stage) Apply(text string) models.Outcome {
	for _, rule := range s.rules {
		outcome := rule.Check(text)
		if !outcome.Passed {
			return outcome
		}
	}

	return models.Pass(text)
}
