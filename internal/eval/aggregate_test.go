package eval

import "testing"

func TestAggregateAgreement(t *testing.T) {
	tests := []struct {
		name          string
		results       []ModelResult
		wantAgreement float64
		wantUnique    int
		wantAvgLength float64
	}{
		{
			name:          "full agreement",
			results:       []ModelResult{success("a", "hello world"), success("b", "Hello World")},
			wantAgreement: 1.0,
			wantUnique:    1,
			wantAvgLength: 11,
		},
		{
			name:          "majority agreement",
			results:       []ModelResult{success("a", "yes"), success("b", "yes"), success("c", "no")},
			wantAgreement: 2.0 / 3.0,
			wantUnique:    2,
			wantAvgLength: (3 + 3 + 2) / 3.0,
		},
		{
			name:          "no successes",
			results:       []ModelResult{failed("a", CodeProviderError), failed("b", CodeTimeout)},
			wantAgreement: 0,
			wantUnique:    0,
			wantAvgLength: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Aggregate(tt.results, Compare(tt.results))
			if !almostEqual(summary.AgreementRatio, tt.wantAgreement) {
				t.Errorf("agreement_ratio = %v, want %v", summary.AgreementRatio, tt.wantAgreement)
			}
			if summary.UniqueResponses != tt.wantUnique {
				t.Errorf("unique_responses = %d, want %d", summary.UniqueResponses, tt.wantUnique)
			}
			if !almostEqual(summary.AvgLengthChars, tt.wantAvgLength) {
				t.Errorf("avg_length_chars = %v, want %v", summary.AvgLengthChars, tt.wantAvgLength)
			}
		})
	}
}

func TestAggregateAvgSimilarity(t *testing.T) {
	results := []ModelResult{success("a", "x y"), success("b", "x y"), success("c", "p q")}
	pairs := Compare(results)
	summary := Aggregate(results, pairs)

	if summary.AvgSimilarity == nil {
		t.Fatal("avg_similarity should be set when pairs exist")
	}
	// pairs: (a,b)=1.0, (a,c)=0.0, (b,c)=0.0
	if !almostEqual(*summary.AvgSimilarity, 1.0/3.0) {
		t.Errorf("avg_similarity = %v, want %v", *summary.AvgSimilarity, 1.0/3.0)
	}
	if summary.MostDisagreePair == nil {
		t.Fatal("most_disagree_pair should be set when pairs exist")
	}
	// (a,c) and (b,c) tie at 0.0; (a,c) sorts first.
	if summary.MostDisagreePair.A != "a" || summary.MostDisagreePair.B != "c" {
		t.Errorf("most_disagree_pair = (%s,%s), want (a,c)", summary.MostDisagreePair.A, summary.MostDisagreePair.B)
	}
}

func TestAggregateInsufficientResults(t *testing.T) {
	tests := []struct {
		name    string
		results []ModelResult
	}{
		{"no results", nil},
		{"single success", []ModelResult{success("a", "only one")}},
		{"all failed", []ModelResult{failed("a", CodeProviderError), failed("b", CodeProviderError)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Aggregate(tt.results, Compare(tt.results))
			if summary.Notes != NoteInsufficientResults {
				t.Errorf("notes = %q, want %q", summary.Notes, NoteInsufficientResults)
			}
			if summary.AvgSimilarity != nil {
				t.Errorf("avg_similarity = %v, want nil", *summary.AvgSimilarity)
			}
			if summary.MostDisagreePair != nil {
				t.Errorf("most_disagree_pair should be nil, got %+v", summary.MostDisagreePair)
			}
		})
	}
}

func TestAggregateRatiosInRange(t *testing.T) {
	results := []ModelResult{
		success("a", "one two three"),
		success("b", "two three four"),
		success("c", "nine ten eleven"),
		failed("d", CodeTimeout),
	}
	summary := Aggregate(results, Compare(results))

	if summary.AgreementRatio < 0 || summary.AgreementRatio > 1 {
		t.Errorf("agreement_ratio = %v, out of [0,1]", summary.AgreementRatio)
	}
	if summary.AvgSimilarity != nil && (*summary.AvgSimilarity < 0 || *summary.AvgSimilarity > 1) {
		t.Errorf("avg_similarity = %v, out of [0,1]", *summary.AvgSimilarity)
	}
	if summary.UniqueResponses > 3 {
		t.Errorf("unique_responses = %d exceeds success count 3", summary.UniqueResponses)
	}
}
