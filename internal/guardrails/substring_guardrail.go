package guardrails

import (
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
)

type SubstringGuardrail struct {
	name      string
	position  models.Position
	forbidden string
}

func NewSubstringGuardrail(name string, position models.Position, forbidden string) *SubstringGuardrail {
	return &SubstringGuardrail{
		name:      name,
		position:  position,
		forbidden: forbidden,
	}
}

func (g *SubstringGuardrail) Name() string {
	return g.name
}

// Check matches the forbidden term case-insensitively anywhere in text.
func (g *SubstringGuardrail) Check(text string) models.Outcome {
	if strings.Contains(strings.ToLower(text), strings.ToLower(g.forbidden)) {
		return models.Violation(g.name, ViolationMessage(g.position, g.forbidden))
	}

	return models.Pass(text)
}

// ViolationMessage quotes the term verbatim, without escaping.
func ViolationMessage(position models.Position, term string) string {
	return fmt.Sprintf("%s guardrail triggered. We aren't allowed to talk about \"%s\".", position.Label(), term)
}
