package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
)

// Mock serves deterministic built-in models so the service can run with no
// credentials at all. Model "echo" mirrors the prompt; "reasoner" produces a
// templated analysis seeded by the prompt, so identical prompts always yield
// identical output.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

var reasonerVerbs = []string{"consider", "estimate", "compare", "project", "outline", "contrast"}
var reasonerNouns = []string{"impact", "tradeoff", "risk", "opportunity", "path", "constraint"}
var reasonerStances = []string{"concise", "cautious", "optimistic", "skeptical"}

func (m *Mock) Generate(ctx context.Context, model, prompt string, params GenerateParams) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	switch model {
	case "echo":
		return m.echo(prompt), nil
	case "reasoner":
		return m.reason(prompt), nil
	default:
		return Generation{}, &Error{Code: "unknown_model", Message: fmt.Sprintf("mock model %q is not registered", model)}
	}
}

func (m *Mock) echo(prompt string) Generation {
	text := "[echo] " + strings.TrimSpace(prompt)
	return Generation{
		Text:  text,
		Usage: mockUsage(prompt, text),
	}
}

func (m *Mock) reason(prompt string) Generation {
	h := fnv.New64a()
	h.Write([]byte(strings.TrimSpace(prompt)))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	stance := reasonerStances[rng.Intn(len(reasonerStances))]
	steps := 2 + rng.Intn(3)
	var b strings.Builder
	b.WriteString("analysis:")
	for i := 0; i < steps; i++ {
		verb := reasonerVerbs[rng.Intn(len(reasonerVerbs))]
		noun := reasonerNouns[rng.Intn(len(reasonerNouns))]
		fmt.Fprintf(&b, "\n- step %d: %s %s", i+1, verb, noun)
	}
	text := b.String()
	return Generation{
		Text:  text,
		Usage: mockUsage(prompt, text),
		Meta:  map[string]any{"stance": stance},
	}
}

// mockUsage approximates token counts by whitespace words.
func mockUsage(prompt, text string) *Usage {
	promptTokens := len(strings.Fields(prompt))
	completionTokens := len(strings.Fields(text))
	return &Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}
