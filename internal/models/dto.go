package models

const (
	// DefaultContentLimit is applied when a request omits the limit.
	DefaultContentLimit = 10
)

// ContentAnalysisRequest is the body of POST /api/v1/agent/analyze.
// IncludeAnalysis is a pointer so that an omitted field defaults to true.
type ContentAnalysisRequest struct {
	Platform          string `json:"platform" binding:"required"`
	BloggerIdentifier string `json:"bloggerIdentifier" binding:"required"`
	Limit             int    `json:"limit"`
	IncludeAnalysis   *bool  `json:"includeAnalysis"`
}

// ApplyDefaults fills in the documented defaults for omitted fields.
func (r *ContentAnalysisRequest) ApplyDefaults() {
	if r.Limit <= 0 {
		r.Limit = DefaultContentLimit
	}
	if r.IncludeAnalysis == nil {
		t := true
		r.IncludeAnalysis = &t
	}
}

// WantsAnalysis reports whether AI analysis was requested.
func (r *ContentAnalysisRequest) WantsAnalysis() bool {
	return r.IncludeAnalysis == nil || *r.IncludeAnalysis
}

// ContentAnalysisResponse is the result of one ingestion run.
type ContentAnalysisResponse struct {
	Platform         string    `json:"platform"`
	BloggerName      string    `json:"bloggerName"`
	TotalContents    int       `json:"totalContents"`
	Contents         []Content `json:"contents"`
	OverallAnalysis  string    `json:"overallAnalysis"`
	ProcessingTimeMs int64     `json:"processingTimeMs"`
}
