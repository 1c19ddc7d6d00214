package prompts

import "github.com/sozercan/prodsight/apimodels"

type definition struct {
	body   string
	schema string
}

const windowSection = `{{with .WindowInfo}}
Active window:
- Title: {{.Title}}
- Application: {{.AppName}}
- URL: {{.URL}}
{{end}}`

const goalSection = `{{with .GoalContext}}
Current goal: {{.Title}}
{{with .Description}}Goal description: {{.}}
{{end}}{{end}}`

const outputSection = `

Respond with only a JSON object of this shape, no prose:
{{.Schema}}
`

const ocrSchema = `{
  "extractedText": "all readable text",
  "confidence": 0-100,
  "textRegions": [{"text": "...", "boundingBox": {"x": 0, "y": 0, "width": 0, "height": 0}, "confidence": 0-100}],
  "language": "en"
}`

const objectSchema = `{
  "detectedObjects": ["button", "text_field", "image"],
  "uiElements": ["navigation bar", "sidebar"],
  "layoutAnalysis": {"layout_type": "grid|list|dashboard|editor|document", "complexity_score": 0-100}
}`

const activitySchema = `{
  "primaryActivity": "one of the listed activities",
  "secondaryActivities": ["..."],
  "confidence": 0-100,
  "contextClues": {"applications": ["..."], "indicators": ["..."]}
}`

var definitions = map[apimodels.AnalysisMode]definition{
	apimodels.ModeOCR: {
		body: `Extract all readable text from this screenshot.
Report each distinct region of text with its bounding box in pixels and
estimate your overall confidence from 0 to 100.` + windowSection,
		schema: ocrSchema,
	},
	apimodels.ModeObjectDetection: {
		body: `Identify the user interface objects visible in this screenshot.
List the element types you detect, the notable UI components, and describe the
layout with a complexity score from 0 (minimal) to 100 (very busy).` + windowSection,
		schema: objectSchema,
	},
	apimodels.ModeActivityClassification: {
		body: `Classify what the user is doing in this screenshot.
Choose the primary activity from: {{activities}}.
Give a confidence from 0 to 100 and list the clues you relied on.` + windowSection,
		schema: activitySchema,
	},
	apimodels.ModeFull: {
		body: `Analyze this screenshot for productivity signals.
1. Extract the readable text.
2. Identify the user interface objects and judge layout complexity.
3. Classify the user's activity as one of: {{activities}}.
Optionally include productivityScore and attentionScore from 0 to 100.` + windowSection,
		schema: `{
  "ocr": ` + ocrSchema + `,
  "objectDetection": ` + objectSchema + `,
  "activityClassification": ` + activitySchema + `,
  "productivityScore": 0-100,
  "attentionScore": 0-100,
  "reasoning": "short explanation"
}`,
	},
	apimodels.ModeClickIntelligence: {
		body: `Interpret a user's click.
{{with .Click}}Click coordinates: x={{.X}}, y={{.Y}}
{{end}}{{with .NearbyElements}}Nearby elements: {{texts .}}
{{end}}{{if .HasImage}}A screenshot around the click is attached.
{{end}}` + windowSection + goalSection + `
{{if .GoalOriented}}Judge how relevant the click is to the current goal, from 0 to 1.{{else}}No goal is active; report goalRelevance as 0.{{end}}
Classify the intent (navigation, input, selection, submission, distraction, other) and
estimate how productive the click is from 0 to 1.`,
		schema: `{
  "targetElement": "text of the clicked element",
  "contextText": "surrounding text",
  "intentClassification": "navigation",
  "goalRelevance": 0-1,
  "productivityScore": 0-1,
  "reasoning": "short explanation"
}`,
	},
	apimodels.ModeSessionIntelligence: {
		body: `Summarize this work session and the user's focus patterns.
Session data:
{{json .SessionData}}
` + goalSection + `{{with .PriorSummary}}
Summary of the previous session:
{{.}}
{{end}}
Count distractions, find the period of peak focus and suggest improvements.`,
		schema: `{
  "focusScore": 0-100,
  "productivityScore": 0-100,
  "distractionCount": 0,
  "peakFocusPeriod": "e.g. 10:00-11:30",
  "patterns": ["..."],
  "recommendations": ["..."],
  "summary": "two or three sentences"
}`,
	},
	apimodels.ModeProgressIndicators: {
		body: `Find signs of progress toward the user's goal.
{{with .TextContent}}Text content:
{{.}}
{{end}}{{if .HasImage}}A screenshot is attached.
{{end}}` + goalSection + `
Look for completions, milestones, blockers, progress bars, created files, test
results, build status and deployments.`,
		schema: `{
  "indicators": [{
    "type": "completion|milestone|blocker|progress_bar|file_creation|test_results|build_status|deployment|unknown",
    "indicator": "what was observed",
    "confidence": 0-1,
    "impact": "positive|negative|neutral"
  }],
  "summary": "one sentence"
}`,
	},
}
