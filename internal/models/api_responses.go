package models

// CheckRequest is the JSON body accepted by the check API.
type CheckRequest struct {
	Domain   string   `json:"domain"`
	Keywords []string `json:"keywords"`
}

// CheckResponse is returned by the check API.
type CheckResponse struct {
	RunID   string          `json:"run_id"`
	Domain  string          `json:"domain"`
	Results []KeywordResult `json:"results"`
}
