package panels

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Initial values of the two form inputs.
const (
	DefaultInput1 = "Montréal"
	DefaultInput2 = "Canada"
)

type FormSubmission struct {
	NClicks int    `json:"n_clicks" description:"Number of times the submit button was pressed"`
	Input1  string `json:"input_1" description:"First text input"`
	Input2  string `json:"input_2" description:"Second text input"`
}

type FormResult struct {
	Message string `json:"message"`
	Counter int64  `json:"counter"`
}

type Form struct {
	counter CounterStore
	logger  *zerolog.Logger
}

func NewForm(counter CounterStore, logger *zerolog.Logger) *Form {
	return &Form{counter: counter, logger: logger}
}

// Submit echoes the inputs and advances the shared counter by one.
func (f *Form) Submit(ctx context.Context, sub FormSubmission) (FormResult, error) {
	value, err := f.counter.Increment(ctx)
	if err != nil {
		return FormResult{}, err
	}

	f.logger.Debug().
		Int("nClicks", sub.NClicks).
		Int64("counter", value).
		Msg("form submitted")

	return FormResult{
		Message: FormMessage(sub),
		Counter: value,
	}, nil
}

func FormMessage(sub FormSubmission) string {
	return fmt.Sprintf("The Button has been pressed %d times, Input 1 is \"%s\", and Input 2 is \"%s\"",
		sub.NClicks, sub.Input1, sub.Input2)
}
