package apimodels

// Activity vocabulary understood by the scorer.
const (
	ActivityCoding        = "coding"
	ActivityWriting       = "writing"
	ActivityDesign        = "design"
	ActivityResearch      = "research"
	ActivityDebugging     = "debugging"
	ActivityTesting       = "testing"
	ActivityPlanning      = "planning"
	ActivityLearning      = "learning"
	ActivityCommunication = "communication"
	ActivityBrowsing      = "browsing"
	ActivityEntertainment = "entertainment"
	ActivitySocialMedia   = "social_media"
	ActivityUnknown       = "unknown"
)

// Activities is the fixed 12-value activity vocabulary.
var Activities = []string{
	ActivityCoding,
	ActivityWriting,
	ActivityDesign,
	ActivityResearch,
	ActivityDebugging,
	ActivityTesting,
	ActivityPlanning,
	ActivityLearning,
	ActivityCommunication,
	ActivityBrowsing,
	ActivityEntertainment,
	ActivitySocialMedia,
}

// KnownActivity reports whether a is part of the vocabulary.
func KnownActivity(a string) bool {
	for _, known := range Activities {
		if a == known {
			return true
		}
	}
	return false
}

type ActivitySignal struct {
	PrimaryActivity     string         `json:"primaryActivity"`
	SecondaryActivities []string       `json:"secondaryActivities"`
	Confidence          float64        `json:"confidence" jsonschema:"minimum=0,maximum=100"`
	ContextClues        map[string]any `json:"contextClues"`
	ProcessingTimeMS    int            `json:"processing_time_ms,omitempty"`
}

type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type TextRegion struct {
	Text        string      `json:"text"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Confidence  float64     `json:"confidence,omitempty"`
}

type OCRSignal struct {
	ExtractedText    string       `json:"extractedText"`
	Confidence       float64      `json:"confidence" jsonschema:"minimum=0,maximum=100"`
	TextRegions      []TextRegion `json:"textRegions"`
	Language         string       `json:"language"`
	ProcessingTimeMS int          `json:"processing_time_ms,omitempty"`
}

// LayoutAnalysis uses a pointer for the complexity so that a missing value
// can be told apart from zero.
type LayoutAnalysis struct {
	LayoutType      string   `json:"layout_type"`
	ComplexityScore *float64 `json:"complexity_score" jsonschema:"minimum=0,maximum=100"`
}

type ObjectSignal struct {
	DetectedObjects  []string        `json:"detectedObjects"`
	UIElements       []string        `json:"uiElements"`
	LayoutAnalysis   *LayoutAnalysis `json:"layoutAnalysis"`
	ProcessingTimeMS int             `json:"processing_time_ms,omitempty"`
}

// FullAnalysis always carries exactly these five keys.
type FullAnalysis struct {
	OCR                    *OCRSignal      `json:"ocr"`
	ObjectDetection        *ObjectSignal   `json:"objectDetection"`
	ActivityClassification *ActivitySignal `json:"activityClassification"`
	ProductivityScore      float64         `json:"productivityScore"`
	AttentionScore         float64         `json:"attentionScore"`
}

type ClickInsight struct {
	TargetElement        string  `json:"targetElement"`
	ContextText          string  `json:"contextText"`
	IntentClassification string  `json:"intentClassification"`
	GoalRelevance        float64 `json:"goalRelevance" jsonschema:"minimum=0,maximum=1"`
	ProductivityScore    float64 `json:"productivityScore" jsonschema:"minimum=0,maximum=1"`
	Reasoning            string  `json:"reasoning,omitempty"`
	ProcessingTimeMS     int     `json:"processing_time_ms,omitempty"`
}

// Progress indicator types.
const (
	IndicatorCompletion   = "completion"
	IndicatorMilestone    = "milestone"
	IndicatorBlocker      = "blocker"
	IndicatorProgressBar  = "progress_bar"
	IndicatorFileCreation = "file_creation"
	IndicatorTestResults  = "test_results"
	IndicatorBuildStatus  = "build_status"
	IndicatorDeployment   = "deployment"
	IndicatorUnknown      = "unknown"
)

// Indicator impacts.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

type ProgressIndicator struct {
	Type       string  `json:"type" jsonschema:"enum=completion,enum=milestone,enum=blocker,enum=progress_bar,enum=file_creation,enum=test_results,enum=build_status,enum=deployment,enum=unknown"`
	Indicator  string  `json:"indicator"`
	Confidence float64 `json:"confidence" jsonschema:"minimum=0,maximum=1"`
	Impact     string  `json:"impact" jsonschema:"enum=positive,enum=negative,enum=neutral"`
}

type ProgressReport struct {
	Indicators       []ProgressIndicator `json:"indicators"`
	Summary          string              `json:"summary,omitempty"`
	ProcessingTimeMS int                 `json:"processing_time_ms,omitempty"`
}

type SessionInsight struct {
	FocusScore        float64  `json:"focusScore" jsonschema:"minimum=0,maximum=100"`
	ProductivityScore float64  `json:"productivityScore" jsonschema:"minimum=0,maximum=100"`
	DistractionCount  int      `json:"distractionCount"`
	PeakFocusPeriod   string   `json:"peakFocusPeriod"`
	Patterns          []string `json:"patterns"`
	Recommendations   []string `json:"recommendations"`
	Summary           string   `json:"summary"`
	ProcessingTimeMS  int      `json:"processing_time_ms,omitempty"`
}
