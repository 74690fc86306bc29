package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"prism/internal/app"
	"prism/internal/eval"
	"prism/internal/events"
	"prism/internal/httputil"
	"prism/internal/ratelimit"
)

type evaluateRequest struct {
	Prompt          string   `json:"prompt" validate:"required"`
	Models          []string `json:"models" validate:"required,min=1,unique,dive,required"`
	Temperature     float64  `json:"temperature" validate:"gte=0,lte=2"`
	MaxTokens       int      `json:"max_tokens" validate:"omitempty,min=1,max=4096"`
	TimeoutS        float64  `json:"timeout_s" validate:"omitempty,gt=0,lte=120"`
	SynthesisMethod string   `json:"synthesis_method" validate:"omitempty,oneof=longest_nonempty consensus_overlap best_of_n"`
}

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.Close()

	r := httputil.NewRouter(deps.Log)
	r.Use(ratelimit.Middleware(deps.Log, deps.Limiter))

	r.Post("/api/evaluate", evaluateHandler(deps))
	r.Get("/api/models", modelsHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("gateway listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func evaluateHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		if req.MaxTokens == 0 {
			req.MaxTokens = 512
		}
		if req.TimeoutS == 0 {
			req.TimeoutS = deps.Config.DefaultTimeout
		}
		method := eval.Method(req.SynthesisMethod)
		if method == "" {
			method = eval.MethodLongestNonEmpty
		}

		resp, err := deps.Engine.Evaluate(r.Context(), eval.Request{
			Prompt:          req.Prompt,
			Models:          req.Models,
			Temperature:     req.Temperature,
			MaxTokens:       req.MaxTokens,
			TimeoutS:        req.TimeoutS,
			SynthesisMethod: method,
		})
		if err != nil {
			if errors.Is(err, eval.ErrInvalidRequest) {
				httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
				return
			}
			httputil.Fail(deps.Log, w, "evaluation failed", err, http.StatusInternalServerError)
			return
		}

		publishCompleted(deps, resp)
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

// publishCompleted notifies observers; a broker failure never fails the
// request.
func publishCompleted(deps app.Deps, resp *eval.Response) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ev := events.Completed{
		RequestID:   resp.RequestID,
		RunHash:     resp.RunHash,
		Status:      resp.Status,
		Models:      resp.Params.Models,
		SynthesisOK: resp.Synthesis.OK,
		CreatedAt:   resp.CreatedAt,
	}
	if err := deps.Events.Publish(ctx, ev); err != nil {
		deps.Log.Warn("failed to publish completion event", "err", err, "request_id", resp.RequestID)
	}
}

func modelsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"models": deps.Registry.List(),
		})
	}
}
