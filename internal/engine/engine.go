package engine

// Recommend runs the full scoring flow for one request: validate the
// selection, aggregate it against the index, classify and triage. It is a
// pure function of its arguments; two calls with identical inputs produce
// identical ordered output.
func Recommend(idx *Index, sel Selection, isFallbackRetry bool, opts TriageOptions) (TriageResult, error) {
	if err := ValidateSelection(sel, isFallbackRetry); err != nil {
		return TriageResult{}, err
	}
	return Triage(Score(idx, sel), opts), nil
}
