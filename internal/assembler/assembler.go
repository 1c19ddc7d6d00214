// Package assembler turns parsed model output or fallback output into the
// response schema of each analysis mode.
package assembler

import (
	"fmt"
	"math"
	"slices"

	"github.com/itchyny/gojq"

	"github.com/sozercan/prodsight/apimodels"
	"github.com/sozercan/prodsight/internal/helpers"
	"github.com/sozercan/prodsight/internal/schema"
	"github.com/sozercan/prodsight/internal/scoring"
)

// Result is the normalized analysis of one request.
type Result struct {
	Analysis         any
	Reasoning        string
	ProcessingTimeMS int
	Warnings         []string
}

type Assembler struct {
	policy *schema.Policy
	renest *gojq.Code

	// duration stamps processing_time_ms; replaced in tests
	duration func() int
}

func New(policy *schema.Policy) (*Assembler, error) {
	code, err := compileRenest()
	if err != nil {
		return nil, err
	}
	return &Assembler{
		policy:   policy,
		renest:   code,
		duration: helpers.SyntheticDuration,
	}, nil
}

// Assemble normalizes value for mode. Unknown modes are assembled as full.
// value may be decoded JSON or any of the apimodels result types.
func (a *Assembler) Assemble(mode apimodels.AnalysisMode, value any) (*Result, error) {
	generic, err := toGeneric(value)
	if err != nil {
		return nil, fmt.Errorf("normalizing %s result: %w", mode, err)
	}

	switch mode.Resolve() {
	case apimodels.ModeOCR:
		ocr, warnings := a.ocr(unwrap(generic, "ocr"))
		return a.single(ocr, &ocr.ProcessingTimeMS, warnings), nil
	case apimodels.ModeObjectDetection:
		objects, warnings := a.objects(unwrap(generic, "objectDetection", "object_detection"))
		return a.single(objects, &objects.ProcessingTimeMS, warnings), nil
	case apimodels.ModeActivityClassification:
		activity, warnings := a.activity(unwrap(generic, "activityClassification", "activity_classification"))
		normalizeActivity(activity)
		return a.single(activity, &activity.ProcessingTimeMS, warnings), nil
	case apimodels.ModeClickIntelligence:
		click, warnings := a.click(generic)
		return a.single(click, &click.ProcessingTimeMS, warnings), nil
	case apimodels.ModeSessionIntelligence:
		session, warnings := a.session(generic)
		return a.single(session, &session.ProcessingTimeMS, warnings), nil
	case apimodels.ModeProgressIndicators:
		progress, warnings := a.progress(generic)
		return a.single(progress, &progress.ProcessingTimeMS, warnings), nil
	}
	return a.full(generic)
}

func (a *Assembler) single(analysis any, stamp *int, warnings []string) *Result {
	*stamp = a.duration()
	return &Result{
		Analysis:         analysis,
		ProcessingTimeMS: *stamp,
		Warnings:         warnings,
	}
}

func (a *Assembler) full(generic any) (*Result, error) {
	nested, err := renest(a.renest, generic)
	if err != nil {
		return nil, err
	}

	var warnings []string
	decode := func(kind schema.Kind, target any) bool {
		present, w := a.policy.Decode(kind, nested[string(kind)], target)
		warnings = append(warnings, w...)
		return present
	}

	var (
		ocr      apimodels.OCRSignal
		objects  apimodels.ObjectSignal
		activity apimodels.ActivitySignal

		ocrSig      *apimodels.OCRSignal
		objectsSig  *apimodels.ObjectSignal
		activitySig *apimodels.ActivitySignal
	)
	if decode(schema.KindOCR, &ocr) {
		ocrSig = &ocr
	}
	if decode(schema.KindObjects, &objects) {
		objectsSig = &objects
	}
	if decode(schema.KindActivity, &activity) {
		activitySig = &activity
	}

	// Scores come from the signals as supplied, before defaults are filled.
	productivity, w := suppliedScore(nested, "productivityScore")
	warnings = append(warnings, w...)
	if productivity == nil {
		productivity = helpers.Ptr(scoring.Productivity(activitySig))
	}
	attention, w := suppliedScore(nested, "attentionScore")
	warnings = append(warnings, w...)
	if attention == nil {
		attention = helpers.Ptr(scoring.Attention(ocrSig, objectsSig))
	}

	analysis := &apimodels.FullAnalysis{
		OCR:                    schema.FillOCR(ocrSig),
		ObjectDetection:        schema.FillObjects(objectsSig),
		ActivityClassification: schema.FillActivity(activitySig),
		ProductivityScore:      *productivity,
		AttentionScore:         *attention,
	}
	normalizeActivity(analysis.ActivityClassification)

	analysis.OCR.ProcessingTimeMS = a.duration()
	analysis.ObjectDetection.ProcessingTimeMS = a.duration()
	analysis.ActivityClassification.ProcessingTimeMS = a.duration()

	reasoning, _ := nested["reasoning"].(string)
	return &Result{
		Analysis:         analysis,
		Reasoning:        reasoning,
		ProcessingTimeMS: a.duration(),
		Warnings:         warnings,
	}, nil
}

// suppliedScore returns a score the model provided, clamped to [0, 100].
func suppliedScore(nested map[string]any, key string) (*float64, []string) {
	v, ok := nested[key]
	if !ok || v == nil {
		return nil, nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		ok = false
	}
	if !ok || math.IsNaN(f) {
		return nil, []string{fmt.Sprintf("%s: expected a number, computing it instead", key)}
	}
	return helpers.Ptr(scoring.Clamp(f, scoring.MinScore, scoring.MaxScore)), nil
}

func (a *Assembler) ocr(v any) (*apimodels.OCRSignal, []string) {
	var out apimodels.OCRSignal
	present, warnings := a.policy.Decode(schema.KindOCR, v, &out)
	if !present {
		return schema.FillOCR(nil), warnings
	}
	return schema.FillOCR(&out), warnings
}

func (a *Assembler) objects(v any) (*apimodels.ObjectSignal, []string) {
	var out apimodels.ObjectSignal
	present, warnings := a.policy.Decode(schema.KindObjects, v, &out)
	if !present {
		return schema.FillObjects(nil), warnings
	}
	return schema.FillObjects(&out), warnings
}

func (a *Assembler) activity(v any) (*apimodels.ActivitySignal, []string) {
	var out apimodels.ActivitySignal
	present, warnings := a.policy.Decode(schema.KindActivity, v, &out)
	if !present {
		return schema.FillActivity(nil), warnings
	}
	return schema.FillActivity(&out), warnings
}

func (a *Assembler) click(v any) (*apimodels.ClickInsight, []string) {
	var out apimodels.ClickInsight
	present, warnings := a.policy.Decode(schema.KindClick, v, &out)
	if !present {
		return schema.FillClick(nil), warnings
	}
	return schema.FillClick(&out), warnings
}

func (a *Assembler) session(v any) (*apimodels.SessionInsight, []string) {
	var out apimodels.SessionInsight
	present, warnings := a.policy.Decode(schema.KindSession, v, &out)
	if !present {
		return schema.FillSession(nil), warnings
	}
	return schema.FillSession(&out), warnings
}

func (a *Assembler) progress(v any) (*apimodels.ProgressReport, []string) {
	// A bare list is read as the indicators.
	if list, ok := v.([]any); ok {
		v = map[string]any{"indicators": list}
	}
	if obj, ok := v.(map[string]any); ok {
		normalizeIndicators(obj["indicators"])
	}

	var out apimodels.ProgressReport
	present, warnings := a.policy.Decode(schema.KindProgress, v, &out)
	if !present {
		return schema.FillProgress(nil), warnings
	}
	return schema.FillProgress(&out), warnings
}

var (
	indicatorTypes = []string{
		apimodels.IndicatorCompletion, apimodels.IndicatorMilestone, apimodels.IndicatorBlocker,
		apimodels.IndicatorProgressBar, apimodels.IndicatorFileCreation, apimodels.IndicatorTestResults,
		apimodels.IndicatorBuildStatus, apimodels.IndicatorDeployment, apimodels.IndicatorUnknown,
	}
	impacts = []string{apimodels.ImpactPositive, apimodels.ImpactNegative, apimodels.ImpactNeutral}
)

// normalizeIndicators maps unrecognized indicator types to unknown and
// unrecognized impacts to neutral, in place.
func normalizeIndicators(v any) {
	list, ok := v.([]any)
	if !ok {
		return
	}
	for _, item := range list {
		ind, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if t, _ := ind["type"].(string); !slices.Contains(indicatorTypes, t) {
			ind["type"] = apimodels.IndicatorUnknown
		}
		if i, _ := ind["impact"].(string); !slices.Contains(impacts, i) {
			ind["impact"] = apimodels.ImpactNeutral
		}
	}
}

// normalizeActivity maps activities outside the vocabulary to unknown.
func normalizeActivity(a *apimodels.ActivitySignal) {
	if !apimodels.KnownActivity(a.PrimaryActivity) {
		a.PrimaryActivity = apimodels.ActivityUnknown
	}
	secondary := a.SecondaryActivities[:0]
	for _, s := range a.SecondaryActivities {
		if apimodels.KnownActivity(s) {
			secondary = append(secondary, s)
		}
	}
	a.SecondaryActivities = secondary
}

// unwrap returns the object under the first present key, or v itself.
func unwrap(v any, keys ...string) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for _, k := range keys {
		if inner, ok := obj[k].(map[string]any); ok {
			return inner
		}
	}
	return v
}
