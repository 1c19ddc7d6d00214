package fallback

import (
	"strings"

	"github.com/sozercan/prodsight/apimodels"
)

type activityRule struct {
	keywords []string
	activity string
}

// First match wins, so more specific keywords come first.
var activityRules = []activityRule{
	{[]string{"debug", "stack trace", "breakpoint"}, apimodels.ActivityDebugging},
	{[]string{"visual studio code", "vscode", "intellij", "goland", "xcode", "terminal", "iterm", "vim", "github.com"}, apimodels.ActivityCoding},
	{[]string{"jest", "pytest", "test runner", "go test"}, apimodels.ActivityTesting},
	{[]string{"figma", "sketch", "photoshop", "illustrator", "canva"}, apimodels.ActivityDesign},
	{[]string{"google docs", "microsoft word", "notion", "overleaf"}, apimodels.ActivityWriting},
	{[]string{"jira", "trello", "asana", "linear", "calendar"}, apimodels.ActivityPlanning},
	{[]string{"slack", "teams", "zoom", "outlook", "gmail", "mail"}, apimodels.ActivityCommunication},
	{[]string{"coursera", "udemy", "tutorial", "documentation", "docs."}, apimodels.ActivityLearning},
	{[]string{"stackoverflow", "stack overflow", "wikipedia", "scholar", "arxiv"}, apimodels.ActivityResearch},
	{[]string{"youtube", "netflix", "twitch", "spotify", "steam"}, apimodels.ActivityEntertainment},
	{[]string{"twitter", "://x.com", "facebook", "instagram", "reddit", "tiktok", "linkedin"}, apimodels.ActivitySocialMedia},
	{[]string{"chrome", "firefox", "safari", "microsoft edge", "http://", "https://"}, apimodels.ActivityBrowsing},
}

// Activity guesses the activity from window metadata.
func Activity(window *apimodels.WindowInfo) *apimodels.ActivitySignal {
	signal := &apimodels.ActivitySignal{
		PrimaryActivity:     apimodels.ActivityUnknown,
		SecondaryActivities: []string{},
		ContextClues:        map[string]any{"source": "window metadata"},
	}
	if window == nil {
		return signal
	}

	haystack := strings.ToLower(strings.Join([]string{window.Title, window.AppName, window.URL}, " "))
	for _, r := range activityRules {
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				signal.PrimaryActivity = r.activity
				signal.Confidence = WindowMatchConfidence
				signal.ContextClues["matched"] = kw
				return signal
			}
		}
	}
	return signal
}

// Screenshot returns what a model would have answered for a screenshot
// mode. Only the activity is inferred; OCR and object signals are left
// absent so they are default-filled downstream.
func Screenshot(mode apimodels.AnalysisMode, window *apimodels.WindowInfo) any {
	switch mode {
	case apimodels.ModeOCR, apimodels.ModeObjectDetection:
		return nil
	case apimodels.ModeActivityClassification:
		return Activity(window)
	}
	return map[string]any{
		"activityClassification": Activity(window),
		"reasoning":              Note,
	}
}
