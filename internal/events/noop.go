package events

import "context"

// NoOpPublisher drops every event. Used when no event broker is configured.
type NoOpPublisher struct{}

func NewNoOpPublisher() *NoOpPublisher {
	return &NoOpPublisher{}
}

func (*NoOpPublisher) Publish(context.Context, Completed) error {
	return nil
}

func (*NoOpPublisher) Close() error {
	return nil
}
