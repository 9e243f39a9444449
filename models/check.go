package models

// CheckResult is the outcome of one compatibility probe
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Err    string `json:"error,omitempty"`
}

// CheckSummary aggregates all probes of one checker run
type CheckSummary struct {
	Results []CheckResult `json:"results"`
	Passed  int           `json:"passed"`
	Total   int           `json:"total"`
}

// AllPassed reports whether every probe passed.
func (s CheckSummary) AllPassed() bool {
	return s.Total > 0 && s.Passed == s.Total
}
