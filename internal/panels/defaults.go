package panels

import (
	"context"

	"github.com/povarna/generative-ai-agents/guardrail-agent/internal/models"
)

// Defaults are the values a client renders before any interaction.
type Defaults struct {
	Form FormDefaults `json:"form"`
	LLM  LLMDefaults  `json:"llm"`
}

type FormDefaults struct {
	NClicks int    `json:"n_clicks"`
	Input1  string `json:"input_1"`
	Input2  string `json:"input_2"`
	Counter int64  `json:"counter" description:"Current value of the shared counter"`
}

type LLMDefaults struct {
	RawResponse string `json:"raw_response"`
	Final       string `json:"final"`
}

// Defaults reports the initial panel state. The counter is read, not advanced.
func (f *Form) Defaults(ctx context.Context) (Defaults, error) {
	value, err := f.counter.Value(ctx)
	if err != nil {
		return Defaults{}, err
	}

	return Defaults{
		Form: FormDefaults{
			Input1:  DefaultInput1,
			Input2:  DefaultInput2,
			Counter: value,
		},
		LLM: LLMDefaults{
			RawResponse: models.InitialRawPlaceholder,
			Final:       models.InitialFinalPlaceholder,
		},
	}, nil
}
