package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"prism/internal/provider"
)

// Dispatcher fans a prompt out to every requested model concurrently. The
// registry is injected at construction time; the dispatcher never branches
// on provider identity, only on the Client interface.
type Dispatcher struct {
	registry *provider.Registry
	log      *slog.Logger
}

func NewDispatcher(registry *provider.Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// Dispatch invokes every requested model concurrently under an independent
// per-model timeout and returns one ModelResult per id, in request order.
// Failures are captured into the corresponding slot and never abort siblings.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt string, params provider.GenerateParams, timeout time.Duration, models []string) []ModelResult {
	results := make([]ModelResult, len(models))
	var g errgroup.Group
	for i, id := range models {
		g.Go(func() error {
			results[i] = d.invoke(ctx, id, prompt, params, timeout)
			return nil
		})
	}
	// invoke never returns an error; all failure lands in the slot.
	_ = g.Wait()
	return results
}

func (d *Dispatcher) invoke(ctx context.Context, id, prompt string, params provider.GenerateParams, timeout time.Duration) ModelResult {
	res := ModelResult{Model: id, Provider: providerLabel(id)}

	resolved, ok := d.registry.Resolve(id)
	if !ok {
		res.Status = StatusError
		res.ErrorCode = CodeClientUnavailable
		res.ErrorMessage = fmt.Sprintf("model %q is not registered", id)
		return res
	}
	res.Provider = resolved.Info.Provider
	if !resolved.Info.Available {
		reason := resolved.Info.Reason
		if reason == "" {
			reason = "model unavailable"
		}
		res.Status = StatusError
		res.ErrorCode = CodeClientUnavailable
		res.ErrorMessage = reason
		return res
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		gen provider.Generation
		err error
	}
	// Buffered so a late result never blocks the goroutine; it is simply
	// discarded once the deadline has fired.
	ch := make(chan outcome, 1)
	start := time.Now()
	go func() {
		gen, err := resolved.Client.Generate(callCtx, resolved.Model, prompt, params)
		ch <- outcome{gen: gen, err: err}
	}()

	select {
	case out := <-ch:
		res.LatencyMS = latencyMS(start)
		if out.err != nil {
			return d.failure(res, out.err, timeout)
		}
		res.OK = true
		res.Status = StatusSuccess
		res.Text = out.gen.Text
		res.Usage = out.gen.Usage
		res.Meta = out.gen.Meta
		return res
	case <-callCtx.Done():
		res.LatencyMS = latencyMS(start)
		if ctx.Err() != nil {
			res.Status = StatusError
			res.ErrorCode = CodeCancelled
			res.ErrorMessage = "request cancelled"
			return res
		}
		res.Status = StatusTimeout
		res.ErrorCode = CodeTimeout
		res.ErrorMessage = fmt.Sprintf("no result after %s", timeout)
		d.log.Warn("model timed out", "model", id, "timeout", timeout)
		return res
	}
}

func (d *Dispatcher) failure(res ModelResult, err error, timeout time.Duration) ModelResult {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		res.Status = StatusTimeout
		res.ErrorCode = CodeTimeout
		res.ErrorMessage = fmt.Sprintf("no result after %s", timeout)
	case errors.Is(err, context.Canceled):
		res.Status = StatusError
		res.ErrorCode = CodeCancelled
		res.ErrorMessage = "request cancelled"
	default:
		res.Status = StatusError
		var perr *provider.Error
		if errors.As(err, &perr) {
			res.ErrorCode = perr.Code
			res.ErrorMessage = provider.RedactSecrets(perr.Message)
		} else {
			res.ErrorCode = CodeProviderError
			res.ErrorMessage = provider.RedactSecrets(err.Error())
		}
		d.log.Warn("model invocation failed", "model", res.Model, "code", res.ErrorCode)
	}
	return res
}

// providerLabel guesses a provider name from the id prefix; used when the id
// cannot be resolved at all.
func providerLabel(id string) string {
	if prefix, _, found := strings.Cut(id, ":"); found {
		return prefix
	}
	return id
}

func latencyMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
