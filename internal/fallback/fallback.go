// Package fallback synthesizes deterministic results when no model is
// configured or the model answer cannot be parsed. Results have the same
// shape as model output.
package fallback

import (
	"strings"

	"github.com/sozercan/prodsight/apimodels"
)

const (
	// Note attached to every fallback result.
	Note = "Heuristic result generated without AI analysis; configure a model for higher fidelity."

	ClickIntent             = "navigation"
	ClickProductivity       = 0.5
	GoalOrientedRelevance   = 0.5
	GeneralRelevance        = 0.0
	WindowMatchConfidence   = 40
	unknownTarget           = "unknown"
	progressFallbackSummary = "Progress inferred from keywords in the supplied text."
)

// rule pairs a predicate over lower-cased text with the indicator it yields.
type rule struct {
	match func(text string) bool
	build func() apimodels.ProgressIndicator
}

func containsAny(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

// progressRules are evaluated in order and every match fires.
var progressRules = []rule{
	{
		match: containsAny("completed", "done", "finished"),
		build: func() apimodels.ProgressIndicator {
			return apimodels.ProgressIndicator{
				Type:       apimodels.IndicatorCompletion,
				Indicator:  "Task completion detected",
				Confidence: 0.7,
				Impact:     apimodels.ImpactPositive,
			}
		},
	},
	{
		match: containsAny("error", "failed", "problem"),
		build: func() apimodels.ProgressIndicator {
			return apimodels.ProgressIndicator{
				Type:       apimodels.IndicatorBlocker,
				Indicator:  "Error or blocker detected",
				Confidence: 0.8,
				Impact:     apimodels.ImpactNegative,
			}
		},
	},
	{
		match: containsAny("%", "progress", "loading"),
		build: func() apimodels.ProgressIndicator {
			return apimodels.ProgressIndicator{
				Type:       apimodels.IndicatorProgressBar,
				Indicator:  "Progress in motion",
				Confidence: 0.6,
				Impact:     apimodels.ImpactNeutral,
			}
		},
	},
}

// Progress applies the keyword rules to text.
func Progress(text string) *apimodels.ProgressReport {
	lower := strings.ToLower(text)
	indicators := []apimodels.ProgressIndicator{}
	for _, r := range progressRules {
		if r.match(lower) {
			indicators = append(indicators, r.build())
		}
	}
	return &apimodels.ProgressReport{
		Indicators: indicators,
		Summary:    progressFallbackSummary,
	}
}

// Click describes a click from the nearby element texts alone.
func Click(req apimodels.ClickRequest) *apimodels.ClickInsight {
	texts := make([]string, 0, len(req.NearbyElements))
	for _, e := range req.NearbyElements {
		if t := strings.TrimSpace(e.Text); t != "" {
			texts = append(texts, t)
		}
	}

	insight := &apimodels.ClickInsight{
		TargetElement:        unknownTarget,
		ContextText:          strings.Join(texts, " "),
		IntentClassification: ClickIntent,
		GoalRelevance:        GeneralRelevance,
		ProductivityScore:    ClickProductivity,
		Reasoning:            Note,
	}
	if len(req.NearbyElements) > 0 {
		if t := strings.TrimSpace(req.NearbyElements[0].Text); t != "" {
			insight.TargetElement = t
		}
	}
	if req.GoalOriented() {
		insight.GoalRelevance = GoalOrientedRelevance
	}
	return insight
}

// Session returns fixed, approximate placeholder values. They are not
// derived from the session data.
func Session() *apimodels.SessionInsight {
	return &apimodels.SessionInsight{
		FocusScore:        70,
		ProductivityScore: 65,
		DistractionCount:  3,
		PeakFocusPeriod:   "10:00-11:30",
		Patterns: []string{
			"Longer focus blocks in the morning",
			"Frequent context switches after lunch",
		},
		Recommendations: []string{
			"Schedule deep work during your peak focus period",
			"Batch communication into fixed time slots",
		},
		Summary: "Approximate session summary. " + Note,
	}
}
