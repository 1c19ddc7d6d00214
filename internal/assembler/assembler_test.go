package assembler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/prodsight/apimodels"
	"github.com/sozercan/prodsight/internal/fallback"
	"github.com/sozercan/prodsight/internal/schema"
)

func newAssembler(t *testing.T) *Assembler {
	t.Helper()
	policy, err := schema.New()
	require.NoError(t, err)
	a, err := New(policy)
	require.NoError(t, err)
	return a
}

func parse(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func topLevelKeys(t *testing.T, v any) []string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

var fullKeys = []string{"ocr", "objectDetection", "activityClassification", "productivityScore", "attentionScore"}

func TestFullAlwaysHasFiveKeys(t *testing.T) {
	a := newAssembler(t)

	inputs := map[string]any{
		"nil":            nil,
		"empty object":   map[string]any{},
		"string":         "not an object",
		"array":          []any{1.0, 2.0},
		"only ocr":       parse(t, `{"ocr": {"extractedText": "hi", "confidence": 90}}`),
		"null members":   parse(t, `{"ocr": null, "objectDetection": null, "activityClassification": null}`),
		"wrong types":    parse(t, `{"ocr": "text", "objectDetection": [1], "activityClassification": 7}`),
		"fallback value": fallback.Screenshot(apimodels.ModeFull, &apimodels.WindowInfo{AppName: "Figma"}),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			res, err := a.Assemble(apimodels.ModeFull, in)
			require.NoError(t, err)
			assert.ElementsMatch(t, fullKeys, topLevelKeys(t, res.Analysis))

			full := res.Analysis.(*apimodels.FullAnalysis)
			assert.NotNil(t, full.OCR)
			assert.NotNil(t, full.ObjectDetection)
			assert.NotNil(t, full.ActivityClassification)
		})
	}
}

func TestFullComputesScores(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, parse(t, `{
		"ocr": {"extractedText": "func main()", "confidence": 85},
		"objectDetection": {"detectedObjects": ["a", "b", "c"], "layoutAnalysis": {"layout_type": "editor", "complexity_score": 40}},
		"activityClassification": {"primaryActivity": "coding", "confidence": 90},
		"reasoning": "An editor with Go code."
	}`))
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	assert.Equal(t, 99.0, full.ProductivityScore)
	assert.Equal(t, 100.0, full.AttentionScore)
	assert.Equal(t, "An editor with Go code.", res.Reasoning)
	assert.Empty(t, res.Warnings)
}

func TestFullAbsentSignalsScoreNeutral(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, nil)
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	assert.Equal(t, 50.0, full.ProductivityScore)
	assert.Equal(t, 60.0, full.AttentionScore)
	assert.Equal(t, "unknown", full.ActivityClassification.PrimaryActivity)
	assert.Zero(t, full.ActivityClassification.Confidence)
}

func TestFullRenestsFlatOutput(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, parse(t, `{
		"extractedText": "Inbox (3)",
		"language": "en",
		"detectedObjects": ["list"],
		"primaryActivity": "communication",
		"confidence": 50,
		"productivity_score": 61
	}`))
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	assert.Equal(t, "Inbox (3)", full.OCR.ExtractedText)
	assert.Equal(t, "en", full.OCR.Language)
	assert.Equal(t, []string{"list"}, full.ObjectDetection.DetectedObjects)
	assert.Equal(t, "communication", full.ActivityClassification.PrimaryActivity)
	assert.Equal(t, 61.0, full.ProductivityScore)
	assert.Equal(t, 75.0, full.AttentionScore)
}

func TestFullClampsSuppliedScores(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, parse(t, `{"productivityScore": 140, "attentionScore": -20}`))
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	assert.Equal(t, 100.0, full.ProductivityScore)
	assert.Equal(t, 0.0, full.AttentionScore)
}

func TestFullNonNumericScoreIsComputed(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, parse(t, `{"productivityScore": "high"}`))
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	assert.Equal(t, 50.0, full.ProductivityScore)
	assert.NotEmpty(t, res.Warnings)
}

func TestFullUnknownActivityScoredThenNormalized(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, parse(t, `{
		"activityClassification": {"primaryActivity": "gardening", "secondaryActivities": ["coding", "knitting"], "confidence": 100}
	}`))
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	assert.Equal(t, 60.0, full.ProductivityScore)
	assert.Equal(t, "unknown", full.ActivityClassification.PrimaryActivity)
	assert.Equal(t, []string{"coding"}, full.ActivityClassification.SecondaryActivities)
}

func TestProcessingTimeStamped(t *testing.T) {
	a := newAssembler(t)

	res, err := a.Assemble(apimodels.ModeFull, nil)
	require.NoError(t, err)

	full := res.Analysis.(*apimodels.FullAnalysis)
	for _, ms := range []int{full.OCR.ProcessingTimeMS, full.ObjectDetection.ProcessingTimeMS, full.ActivityClassification.ProcessingTimeMS, res.ProcessingTimeMS} {
		assert.GreaterOrEqual(t, ms, 1000)
		assert.Less(t, ms, 3000)
	}
}

func TestSingleModes(t *testing.T) {
	a := newAssembler(t)
	a.duration = func() int { return 1500 }

	t.Run("ocr unwrapped", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeOCR, parse(t, `{"extractedText": "hello", "confidence": 70}`))
		require.NoError(t, err)
		ocr := res.Analysis.(*apimodels.OCRSignal)
		assert.Equal(t, "hello", ocr.ExtractedText)
		assert.Equal(t, 1500, ocr.ProcessingTimeMS)
		assert.Equal(t, 1500, res.ProcessingTimeMS)
	})

	t.Run("ocr wrapped", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeOCR, parse(t, `{"ocr": {"extractedText": "hello"}}`))
		require.NoError(t, err)
		assert.Equal(t, "hello", res.Analysis.(*apimodels.OCRSignal).ExtractedText)
	})

	t.Run("object detection default", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeObjectDetection, nil)
		require.NoError(t, err)
		objects := res.Analysis.(*apimodels.ObjectSignal)
		assert.NotNil(t, objects.DetectedObjects)
		assert.NotNil(t, objects.LayoutAnalysis)
	})

	t.Run("activity normalized", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeActivityClassification, parse(t, `{"primaryActivity": "napping", "confidence": 30}`))
		require.NoError(t, err)
		assert.Equal(t, "unknown", res.Analysis.(*apimodels.ActivitySignal).PrimaryActivity)
	})

	t.Run("click fallback", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeClickIntelligence, fallback.Click(apimodels.ClickRequest{
			NearbyElements: []apimodels.NearbyElement{{Text: "Submit"}},
		}))
		require.NoError(t, err)
		click := res.Analysis.(*apimodels.ClickInsight)
		assert.Equal(t, "Submit", click.TargetElement)
		assert.Equal(t, "Submit", click.ContextText)
		assert.Equal(t, "navigation", click.IntentClassification)
		assert.Equal(t, 0.5, click.ProductivityScore)
	})

	t.Run("progress bare list", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeProgressIndicators, parse(t, `[
			{"type": "celebration", "indicator": "Party", "confidence": 0.9, "impact": "great"},
			{"type": "test_results", "indicator": "All green", "confidence": 2, "impact": "positive"}
		]`))
		require.NoError(t, err)
		progress := res.Analysis.(*apimodels.ProgressReport)
		require.Len(t, progress.Indicators, 2)
		assert.Equal(t, "unknown", progress.Indicators[0].Type)
		assert.Equal(t, "neutral", progress.Indicators[0].Impact)
		assert.Equal(t, 1.0, progress.Indicators[1].Confidence)
	})

	t.Run("session", func(t *testing.T) {
		res, err := a.Assemble(apimodels.ModeSessionIntelligence, parse(t, `{"focusScore": 120, "summary": "Good"}`))
		require.NoError(t, err)
		session := res.Analysis.(*apimodels.SessionInsight)
		assert.Equal(t, 100.0, session.FocusScore)
		assert.Equal(t, "Good", session.Summary)
		assert.NotNil(t, session.Patterns)
	})
}
