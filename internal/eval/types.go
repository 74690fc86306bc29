// Package eval is the evaluation-and-synthesis core: it fans one prompt out
// to several model clients, measures how much the answers agree, and selects
// a single synthesized answer with a stated rationale. All per-model failure
// is captured as data on the result; nothing here aborts a batch.
package eval

import (
	"time"

	"prism/internal/provider"
)

// Method selects the synthesis strategy applied to successful results.
type Method string

const (
	MethodLongestNonEmpty  Method = "longest_nonempty"
	MethodConsensusOverlap Method = "consensus_overlap"
	MethodBestOfN          Method = "best_of_n"
)

// Status classifies one model invocation outcome.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusTimeout Status = "timeout"
)

// Error codes recorded on failed model results.
const (
	CodeClientUnavailable = "client_unavailable"
	CodeProviderError     = "provider_error"
	CodeTimeout           = "timeout"
	CodeCancelled         = "cancelled"
)

// Overall run status derived from the per-model outcomes.
const (
	RunStatusSuccess = "success"
	RunStatusPartial = "partial"
	RunStatusFailed  = "failed"
)

// Request is one evaluation job. It is immutable once accepted.
type Request struct {
	Prompt          string
	Models          []string
	Temperature     float64
	MaxTokens       int
	TimeoutS        float64 // per-model timeout in seconds
	SynthesisMethod Method
}

// Params echoes the accepted request parameters on the response.
type Params struct {
	Models          []string `json:"models"`
	Temperature     float64  `json:"temperature"`
	MaxTokens       int      `json:"max_tokens"`
	TimeoutS        float64  `json:"timeout_s"`
	SynthesisMethod Method   `json:"synthesis_method"`
}

// ModelResult is the outcome of one model invocation. Exactly one exists per
// requested model id, in request order regardless of completion order.
type ModelResult struct {
	Model        string          `json:"model"`
	Provider     string          `json:"provider"`
	OK           bool            `json:"ok"`
	Status       Status          `json:"status"`
	Text         string          `json:"text,omitempty"`
	ErrorCode    string          `json:"error_code,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	LatencyMS    float64         `json:"latency_ms,omitempty"`
	Usage        *provider.Usage `json:"usage,omitempty"`
	Meta         map[string]any  `json:"meta,omitempty"`
}

// usable reports whether the result can feed comparison and synthesis.
func (r ModelResult) usable() bool {
	return r.Status == StatusSuccess && r.Text != ""
}

// ComparePair holds pairwise similarity metrics for an unordered pair of
// models; ids are stored with A < B so no pair appears twice.
type ComparePair struct {
	A                   string  `json:"a"`
	B                   string  `json:"b"`
	TokenOverlapJaccard float64 `json:"token_overlap_jaccard"`
	LengthRatio         float64 `json:"length_ratio"`
	KeywordCoverage     float64 `json:"keyword_coverage"`
}

// CompareSummary reduces the pairwise metrics and per-model outcomes into
// scalar statistics. AvgSimilarity is nil when no pairs exist.
type CompareSummary struct {
	AvgSimilarity    *float64     `json:"avg_similarity"`
	AgreementRatio   float64      `json:"agreement_ratio"`
	UniqueResponses  int          `json:"unique_responses"`
	AvgLengthChars   float64      `json:"avg_length_chars"`
	MostDisagreePair *ComparePair `json:"most_disagree_pair,omitempty"`
	Notes            string       `json:"notes,omitempty"`
}

// CompareResult is the comparison section of the response.
type CompareResult struct {
	Pairs   []ComparePair  `json:"pairs"`
	Summary CompareSummary `json:"summary"`
}

// Synthesis is the selected final answer. Text is null when OK is false;
// an all-failed run is a valid terminal state, not an error.
type Synthesis struct {
	OK        bool    `json:"ok"`
	Method    Method  `json:"method"`
	Text      *string `json:"text"`
	Rationale string  `json:"rationale,omitempty"`
}

// Response is the full record of one evaluation cycle.
type Response struct {
	RequestID string        `json:"request_id"`
	CreatedAt time.Time     `json:"created_at"`
	RunHash   string        `json:"run_hash"`
	Prompt    string        `json:"prompt"`
	Params    Params        `json:"params"`
	Results   []ModelResult `json:"results"`
	Synthesis Synthesis     `json:"synthesis"`
	Compare   CompareResult `json:"compare"`
	Status    string        `json:"status"`
}
