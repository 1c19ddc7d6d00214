package apimodels

// Source tells whether an analysis came from the model or from the
// deterministic fallback.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

type AnalysisResponse struct {
	Success bool `json:"success"`

	Mode   AnalysisMode `json:"mode"`
	Source Source       `json:"source"`

	// Identifies the request in logs
	RequestID string `json:"requestId"`

	// Synthetic estimate, not measured against the model call
	ProcessingTimeMS int `json:"processing_time_ms"`

	// Mode specific payload
	Analysis any `json:"analysis"`

	Reasoning string `json:"reasoning,omitempty"`
	Note      string `json:"note,omitempty"`

	// Present only when the model answered with unparseable text
	ParseError *ParseError `json:"parseError,omitempty"`

	// Schema policy messages for fields that were replaced by defaults
	Warnings []string `json:"warnings,omitempty"`
}

// ParseError is the error-shaped sub-result recorded when the model output
// could not be parsed.
type ParseError struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	RawResponse string `json:"rawResponse"`
}

type BatchResponse struct {
	Success bool                `json:"success"`
	Results []*AnalysisResponse `json:"results"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Model  struct {
		Configured bool   `json:"configured"`
		Provider   string `json:"provider,omitempty"`
	} `json:"model"`
}
