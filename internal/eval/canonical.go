package eval

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// canonicalRequest is the deterministic shape hashed into a run identifier:
// trimmed prompt, sorted model ids, fixed key order, compact JSON.
type canonicalRequest struct {
	Prompt string          `json:"prompt"`
	Models []string        `json:"models"`
	Params canonicalParams `json:"params"`
}

type canonicalParams struct {
	Temperature     float64 `json:"temperature"`
	MaxTokens       int     `json:"max_tokens"`
	TimeoutS        float64 `json:"timeout_s"`
	SynthesisMethod Method  `json:"synthesis_method"`
}

// RunHash returns a stable SHA-256 hex digest of the canonical request form,
// so identical requests can be recognized across systems without comparing
// full payloads.
func RunHash(req Request) string {
	models := append([]string(nil), req.Models...)
	sort.Strings(models)
	canonical := canonicalRequest{
		Prompt: strings.TrimSpace(req.Prompt),
		Models: models,
		Params: canonicalParams{
			Temperature:     req.Temperature,
			MaxTokens:       req.MaxTokens,
			TimeoutS:        req.TimeoutS,
			SynthesisMethod: req.SynthesisMethod,
		},
	}
	data, err := json.Marshal(canonical)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
