package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/nats-io/nats.go"
)

const subjectCompleted = "evaluations.completed"

// NewNATS constructs a thin NATS-backed publisher.
func NewNATS(log *slog.Logger, nc *nats.Conn) Publisher {
	return &natsPublisher{log: log, nc: nc}
}

type natsPublisher struct {
	log *slog.Logger
	nc  *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, ev Completed) error {
	if ev.RequestID == "" {
		return errors.New("request id required")
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.nc.Publish(subjectCompleted, body)
}

func (p *natsPublisher) Close() error {
	p.nc.Close()
	return nil
}
