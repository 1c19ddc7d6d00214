package apimodels

// AnalysisMode selects the prompt template, the expected output schema and
// whether scores are computed.
type AnalysisMode string

const (
	ModeOCR                    AnalysisMode = "ocr"
	ModeObjectDetection        AnalysisMode = "object_detection"
	ModeActivityClassification AnalysisMode = "activity_classification"
	ModeFull                   AnalysisMode = "full"
	ModeClickIntelligence      AnalysisMode = "click_intelligence"
	ModeSessionIntelligence    AnalysisMode = "session_intelligence"
	ModeProgressIndicators     AnalysisMode = "progress_indicators"
)

// Modes lists every supported analysis mode.
var Modes = []AnalysisMode{
	ModeOCR,
	ModeObjectDetection,
	ModeActivityClassification,
	ModeFull,
	ModeClickIntelligence,
	ModeSessionIntelligence,
	ModeProgressIndicators,
}

// Valid reports whether m is one of the enumerated modes.
func (m AnalysisMode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// Resolve returns m when it is known and ModeFull otherwise.
func (m AnalysisMode) Resolve() AnalysisMode {
	if m.Valid() {
		return m
	}
	return ModeFull
}

// Screenshot reports whether m is one of the image-only screenshot modes.
func (m AnalysisMode) Screenshot() bool {
	switch m {
	case ModeOCR, ModeObjectDetection, ModeActivityClassification, ModeFull:
		return true
	}
	return false
}

// ClickGoalOriented is the click analysis mode that weighs the click against
// the active goal.
const ClickGoalOriented = "goal_oriented"

type WindowInfo struct {
	Title   string `json:"title,omitempty"`
	AppName string `json:"appName,omitempty"`
	URL     string `json:"url,omitempty"`
}

type GoalContext struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NearbyElement struct {
	Text string `json:"text"`
	Tag  string `json:"tag,omitempty"`
	Role string `json:"role,omitempty"`
}

// ScreenshotRequest is the body of the screenshot analysis endpoint.
type ScreenshotRequest struct {
	// Base64 image, optionally as a data URL
	ImageBase64 string `json:"imageBase64"`

	// One of ocr, object_detection, activity_classification, full.
	// Anything else is analyzed as full.
	AnalysisType AnalysisMode `json:"analysisType,omitempty"`

	// Overrides MIME detection
	MimeType string `json:"mimeType,omitempty"`

	WindowInfo *WindowInfo `json:"windowInfo,omitempty"`
}

// BatchRequest analyzes several screenshots in one call.
type BatchRequest struct {
	Items []ScreenshotRequest `json:"items"`
}

// ClickRequest is the body of the click intelligence endpoint.
type ClickRequest struct {
	ImageBase64      string          `json:"imageBase64,omitempty"`
	MimeType         string          `json:"mimeType,omitempty"`
	ClickCoordinates *Point          `json:"clickCoordinates"`
	NearbyElements   []NearbyElement `json:"nearbyElements,omitempty"`
	WindowInfo       *WindowInfo     `json:"windowInfo,omitempty"`
	GoalContext      *GoalContext    `json:"goalContext,omitempty"`

	// "goal_oriented" or "general"
	AnalysisMode string `json:"analysisMode,omitempty"`
}

// GoalOriented reports whether the click should be weighed against a goal.
func (r ClickRequest) GoalOriented() bool {
	return r.AnalysisMode == ClickGoalOriented || (r.GoalContext != nil && r.GoalContext.Title != "")
}

// SessionRequest is the body of the session intelligence endpoint.
type SessionRequest struct {
	// Used to look up and store the prior session summary
	UserID      string         `json:"userId,omitempty"`
	SessionData map[string]any `json:"sessionData"`
	GoalContext *GoalContext   `json:"goalContext,omitempty"`
}

// ProgressRequest is the body of the progress indicator endpoint.
type ProgressRequest struct {
	TextContent string       `json:"textContent,omitempty"`
	ImageBase64 string       `json:"imageBase64,omitempty"`
	MimeType    string       `json:"mimeType,omitempty"`
	GoalContext *GoalContext `json:"goalContext,omitempty"`
}
