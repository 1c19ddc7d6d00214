package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/prodsight/apimodels"
)

func newPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	return p
}

func decodeJSON(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestDecodeValidObject(t *testing.T) {
	p := newPolicy(t)

	var got apimodels.ActivitySignal
	ok, warnings := p.Decode(KindActivity, decodeJSON(t, `{
		"primaryActivity": "coding",
		"secondaryActivities": ["debugging"],
		"confidence": 87.5,
		"contextClues": {"applications": ["vim"]},
		"extra": "ignored"
	}`), &got)

	assert.True(t, ok)
	assert.Empty(t, warnings)
	assert.Equal(t, "coding", got.PrimaryActivity)
	assert.Equal(t, []string{"debugging"}, got.SecondaryActivities)
	assert.Equal(t, 87.5, got.Confidence)
	assert.Equal(t, map[string]any{"applications": []any{"vim"}}, got.ContextClues)
}

func TestDecodeClampsOutOfRangeNumbers(t *testing.T) {
	p := newPolicy(t)

	var got apimodels.ObjectSignal
	ok, warnings := p.Decode(KindObjects, decodeJSON(t, `{
		"detectedObjects": ["button"],
		"layoutAnalysis": {"layout_type": "grid", "complexity_score": 250}
	}`), &got)

	assert.True(t, ok)
	assert.Empty(t, warnings)
	require.NotNil(t, got.LayoutAnalysis)
	require.NotNil(t, got.LayoutAnalysis.ComplexityScore)
	assert.Equal(t, 100.0, *got.LayoutAnalysis.ComplexityScore)

	var click apimodels.ClickInsight
	ok, _ = p.Decode(KindClick, decodeJSON(t, `{"goalRelevance": -3, "productivityScore": 1.7}`), &click)
	assert.True(t, ok)
	assert.Equal(t, 0.0, click.GoalRelevance)
	assert.Equal(t, 1.0, click.ProductivityScore)
}

func TestDecodeDropsInvalidFields(t *testing.T) {
	p := newPolicy(t)

	var got apimodels.OCRSignal
	ok, warnings := p.Decode(KindOCR, decodeJSON(t, `{
		"extractedText": "hello",
		"confidence": "very high",
		"textRegions": "none"
	}`), &got)

	assert.True(t, ok)
	assert.Equal(t, "hello", got.ExtractedText)
	assert.Zero(t, got.Confidence)
	assert.Nil(t, got.TextRegions)
	assert.NotEmpty(t, warnings)
	for _, w := range warnings {
		assert.Contains(t, w, "ocr: /")
	}
}

func TestDecodeNullsAreAbsent(t *testing.T) {
	p := newPolicy(t)

	var got apimodels.ObjectSignal
	ok, warnings := p.Decode(KindObjects, decodeJSON(t, `{"detectedObjects": null, "layoutAnalysis": null, "uiElements": ["nav", null]}`), &got)

	assert.True(t, ok)
	assert.Empty(t, warnings)
	assert.Nil(t, got.DetectedObjects)
	assert.Nil(t, got.LayoutAnalysis)
	assert.Equal(t, []string{"nav"}, got.UIElements)
}

func TestDecodeNonObject(t *testing.T) {
	p := newPolicy(t)

	var got apimodels.SessionInsight
	ok, warnings := p.Decode(KindSession, nil, &got)
	assert.False(t, ok)
	assert.Empty(t, warnings)

	ok, warnings = p.Decode(KindSession, []any{1.0}, &got)
	assert.False(t, ok)
	assert.Len(t, warnings, 1)
}

func TestDecodeProgressEnum(t *testing.T) {
	p := newPolicy(t)

	var got apimodels.ProgressReport
	ok, warnings := p.Decode(KindProgress, decodeJSON(t, `{
		"indicators": [{"type": "celebration", "indicator": "x", "confidence": 0.5, "impact": "positive"}],
		"summary": "ok"
	}`), &got)

	assert.True(t, ok)
	assert.NotEmpty(t, warnings)
	assert.Nil(t, got.Indicators)
	assert.Equal(t, "ok", got.Summary)
}

func TestFillDefaults(t *testing.T) {
	a := FillActivity(nil)
	assert.Equal(t, apimodels.ActivityUnknown, a.PrimaryActivity)
	assert.Zero(t, a.Confidence)
	assert.NotNil(t, a.SecondaryActivities)
	assert.NotNil(t, a.ContextClues)

	o := FillObjects(&apimodels.ObjectSignal{DetectedObjects: []string{"a"}})
	assert.Equal(t, []string{"a"}, o.DetectedObjects)
	assert.NotNil(t, o.UIElements)
	require.NotNil(t, o.LayoutAnalysis.ComplexityScore)
	assert.Zero(t, *o.LayoutAnalysis.ComplexityScore)

	assert.NotNil(t, FillOCR(nil).TextRegions)
	assert.NotNil(t, FillProgress(nil).Indicators)
	assert.NotNil(t, FillSession(nil).Patterns)
	assert.Equal(t, "unknown", FillClick(nil).TargetElement)
}

func TestDropNulls(t *testing.T) {
	got := DropNulls(map[string]any{
		"a": nil,
		"b": []any{nil, 1.0, map[string]any{"c": nil, "d": "x"}},
	})
	assert.Equal(t, map[string]any{
		"b": []any{1.0, map[string]any{"d": "x"}},
	}, got)
}
