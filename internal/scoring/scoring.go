// Package scoring derives productivity and attention scores from partial
// screenshot signals. The functions are pure and accept nil inputs.
package scoring

import (
	"math"

	"github.com/sozercan/prodsight/apimodels"
)

const (
	MinScore = 0
	MaxScore = 100

	// NeutralProductivity is returned when no activity signal exists and is
	// the base for activities outside the vocabulary.
	NeutralProductivity = 50

	// ConfidenceWeight scales an activity confidence of 0-100 into a bonus
	// of at most 10 points.
	ConfidenceWeight = 10.0

	AttentionBase = 60

	// Bonus when the text on screen was read with high confidence.
	OCRClarityBonus     = 15
	OCRClarityThreshold = 80

	// Bonus for an uncluttered screen.
	FewObjectsBonus = 15
	FewObjectsLimit = 5

	// Bonus for a simple layout.
	SimpleLayoutBonus     = 10
	SimpleLayoutThreshold = 50
)

var productivityBase = map[string]float64{
	apimodels.ActivityCoding:        90,
	apimodels.ActivityWriting:       85,
	apimodels.ActivityDesign:        80,
	apimodels.ActivityResearch:      75,
	apimodels.ActivityDebugging:     85,
	apimodels.ActivityTesting:       80,
	apimodels.ActivityPlanning:      70,
	apimodels.ActivityLearning:      75,
	apimodels.ActivityCommunication: 60,
	apimodels.ActivityBrowsing:      40,
	apimodels.ActivityEntertainment: 20,
	apimodels.ActivitySocialMedia:   15,
}

// BaseProductivity returns the table value for an activity, or the neutral
// value when the activity is not part of the vocabulary.
func BaseProductivity(activity string) float64 {
	if base, ok := productivityBase[activity]; ok {
		return base
	}
	return NeutralProductivity
}

// Productivity scores an activity signal in [0, 100], rounded to the nearest
// integer.
func Productivity(activity *apimodels.ActivitySignal) float64 {
	if activity == nil {
		return NeutralProductivity
	}
	score := BaseProductivity(activity.PrimaryActivity) + activity.Confidence/100*ConfidenceWeight
	return math.Round(Clamp(score, MinScore, MaxScore))
}

// Attention scores how focused a screen looks in [0, 100]. Every bonus is
// independent; a missing field leaves its bonus out.
func Attention(ocr *apimodels.OCRSignal, objects *apimodels.ObjectSignal) float64 {
	score := float64(AttentionBase)

	if ocr != nil && ocr.Confidence > OCRClarityThreshold {
		score += OCRClarityBonus
	}
	if objects != nil {
		if objects.DetectedObjects != nil && len(objects.DetectedObjects) < FewObjectsLimit {
			score += FewObjectsBonus
		}
		if layout := objects.LayoutAnalysis; layout != nil && layout.ComplexityScore != nil &&
			*layout.ComplexityScore < SimpleLayoutThreshold {
			score += SimpleLayoutBonus
		}
	}

	return Clamp(score, MinScore, MaxScore)
}

// Clamp bounds v to [lo, hi]. NaN is treated as lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
