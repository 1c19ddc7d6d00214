package schema

import "github.com/sozercan/prodsight/apimodels"

// The Fill functions return an empty-but-valid value in place of nil and
// replace nil collections with empty ones, so every key renders.

func FillActivity(a *apimodels.ActivitySignal) *apimodels.ActivitySignal {
	if a == nil {
		a = &apimodels.ActivitySignal{}
	}
	if a.PrimaryActivity == "" {
		a.PrimaryActivity = apimodels.ActivityUnknown
	}
	if a.SecondaryActivities == nil {
		a.SecondaryActivities = []string{}
	}
	if a.ContextClues == nil {
		a.ContextClues = map[string]any{}
	}
	return a
}

func FillOCR(o *apimodels.OCRSignal) *apimodels.OCRSignal {
	if o == nil {
		o = &apimodels.OCRSignal{}
	}
	if o.TextRegions == nil {
		o.TextRegions = []apimodels.TextRegion{}
	}
	if o.Language == "" {
		o.Language = "unknown"
	}
	return o
}

func FillObjects(o *apimodels.ObjectSignal) *apimodels.ObjectSignal {
	if o == nil {
		o = &apimodels.ObjectSignal{}
	}
	if o.DetectedObjects == nil {
		o.DetectedObjects = []string{}
	}
	if o.UIElements == nil {
		o.UIElements = []string{}
	}
	if o.LayoutAnalysis == nil {
		o.LayoutAnalysis = &apimodels.LayoutAnalysis{}
	}
	if o.LayoutAnalysis.LayoutType == "" {
		o.LayoutAnalysis.LayoutType = "unknown"
	}
	if o.LayoutAnalysis.ComplexityScore == nil {
		zero := 0.0
		o.LayoutAnalysis.ComplexityScore = &zero
	}
	return o
}

func FillClick(c *apimodels.ClickInsight) *apimodels.ClickInsight {
	if c == nil {
		c = &apimodels.ClickInsight{}
	}
	if c.TargetElement == "" {
		c.TargetElement = "unknown"
	}
	if c.IntentClassification == "" {
		c.IntentClassification = "unknown"
	}
	return c
}

func FillProgress(p *apimodels.ProgressReport) *apimodels.ProgressReport {
	if p == nil {
		p = &apimodels.ProgressReport{}
	}
	if p.Indicators == nil {
		p.Indicators = []apimodels.ProgressIndicator{}
	}
	return p
}

func FillSession(s *apimodels.SessionInsight) *apimodels.SessionInsight {
	if s == nil {
		s = &apimodels.SessionInsight{}
	}
	if s.Patterns == nil {
		s.Patterns = []string{}
	}
	if s.Recommendations == nil {
		s.Recommendations = []string{}
	}
	return s
}
