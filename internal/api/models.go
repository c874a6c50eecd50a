package api

import (
	"encoding/json"
	"fmt"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// SSE event names for the two-phase LLM panel update.
const (
	EventPending = "pending"
	EventResult  = "result"
)

type SSEEvent struct {
	Event string `json:"-"`
	Data  any    `json:"-"`
}

func (e SSEEvent) Format() (string, error) {
	jsonData, err := json.Marshal(e.Data)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("event: %s\ndata: %s\n\n", e.Event, string(jsonData)), nil
}
