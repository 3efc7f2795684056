package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RiskLevel is the engine's coarse classification of a listing's risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Action is the recommended next step for a match.
type Action string

const (
	ActionPursue   Action = "pursue"
	ActionConsider Action = "consider"
	ActionPass     Action = "pass"
)

// Methodology records which scoring path produced a response.
type Methodology string

const (
	MethodologyML        Methodology = "ml"
	MethodologyHeuristic Methodology = "heuristic"
	MethodologyHybrid    Methodology = "hybrid"
)

// MatchResult is a single scored buyer/listing pairing.
type MatchResult struct {
	BusinessID        string    `json:"business_id"`
	BusinessName      string    `json:"business_name,omitempty"`
	Score             float64   `json:"match_score"`
	Confidence        float64   `json:"confidence"`
	Reasons           []string  `json:"reasons,omitempty"`
	RiskAssessment    RiskLevel `json:"risk_assessment,omitempty"`
	RecommendedAction Action    `json:"recommended_action,omitempty"`
}

// MatchingResponse is the full ranked result of one match request. It is
// constructed fresh per request and never mutated after return.
type MatchingResponse struct {
	Matches         []MatchResult `json:"matches"`
	TotalMatches    int           `json:"total_matches"`
	Confidence      float64       `json:"confidence"`
	Methodology     Methodology   `json:"methodology"`
	ProcessingTime  time.Duration `json:"processing_time"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

// Len returns the number of matches after truncation.
func (r *MatchingResponse) Len() int {
	return len(r.Matches)
}

// FindByBusinessID returns the match for the given listing, or nil.
func (r *MatchingResponse) FindByBusinessID(id string) *MatchResult {
	for i := range r.Matches {
		if r.Matches[i].BusinessID == id {
			return &r.Matches[i]
		}
	}
	return nil
}

// TopMatch returns the name of the highest-ranked match, or empty.
func (r *MatchingResponse) TopMatch() string {
	if len(r.Matches) == 0 {
		return ""
	}
	return r.Matches[0].BusinessName
}

// ReportByAction groups matches by recommended action for terminal review.
func (r *MatchingResponse) ReportByAction() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, m := range r.Matches {
		key := string(m.RecommendedAction)
		report[key] = append(report[key], map[string]string{
			"business_id":   m.BusinessID,
			"business_name": m.BusinessName,
			"match_score":   fmt.Sprintf("%.2f", m.Score),
			"confidence":    fmt.Sprintf("%.2f", m.Confidence),
			"risk":          string(m.RiskAssessment),
		})
	}
	return report
}

// DumpToTmpFile writes the response as indented JSON to a temp file and
// returns its name.
func (r *MatchingResponse) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
