package assembler

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// renestQuery accepts the nested shape the prompt asks for, common key
// variants, and flat objects where the sub-object fields sit at the top.
const renestQuery = `
def obj: select(type == "object");
def flat($keys): with_entries(select(.key | IN($keys[]))) | select(length > 0);
(if type == "object" then . else {} end)
| {
    ocr: ([.ocr, .OCR, .ocrResult, .text_extraction,
           flat(["extractedText", "textRegions", "language"])] | map(obj) | first),
    objectDetection: ([.objectDetection, .object_detection, .objects, .uiAnalysis,
           flat(["detectedObjects", "uiElements", "layoutAnalysis"])] | map(obj) | first),
    activityClassification: ([.activityClassification, .activity_classification, .activity,
           flat(["primaryActivity", "secondaryActivities", "contextClues", "confidence"])] | map(obj) | first),
    productivityScore: (.productivityScore // .productivity_score),
    attentionScore: (.attentionScore // .attention_score),
    reasoning: (.reasoning // .explanation)
  }
`

func compileRenest() (*gojq.Code, error) {
	query, err := gojq.Parse(renestQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

func renest(code *gojq.Code, input any) (map[string]any, error) {
	iter := code.Run(input)
	v, ok := iter.Next()
	if !ok {
		return map[string]any{}, nil
	}
	if err, isErr := v.(error); isErr {
		return nil, fmt.Errorf("re-nesting full analysis: %w", err)
	}
	out, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("re-nesting full analysis: unexpected %T", v)
	}
	return out, nil
}

// toGeneric converts v, including any typed values nested in maps, into the
// plain JSON representation gojq and the schema policy work on.
func toGeneric(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
