package events

import (
	"context"
	"time"
)

// Completed describes a finished evaluation run. Published after the
// response is assembled; delivery is best-effort and never blocks a request.
type Completed struct {
	RequestID   string    `json:"request_id"`
	RunHash     string    `json:"run_hash"`
	Status      string    `json:"status"`
	Models      []string  `json:"models"`
	SynthesisOK bool      `json:"synthesis_ok"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher notifies interested observers that an evaluation finished.
type Publisher interface {
	Publish(ctx context.Context, ev Completed) error
	Close() error
}
