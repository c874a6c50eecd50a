package guardrails

import (
	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
)

// Rule inspects a text payload and either passes it through unchanged or
// reports a violation. Implementations must be stateless.
type Rule interface {
	Name() string
	Check(text string) models.Outcome
}
