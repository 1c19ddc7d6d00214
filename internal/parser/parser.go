// Package parser extracts a JSON value from free-form model output.
package parser

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/sozercan/prodsight/internal/helpers"
)

const (
	// RawResponseLimit caps the raw model text kept on a failed parse.
	RawResponseLimit = 200

	fence = "```"
)

// Failure is returned when the model text is not valid JSON after fence
// stripping. Callers recover from it with a fallback result.
type Failure struct {
	Err         error
	RawResponse string
}

func (f *Failure) Error() string {
	return "failed to parse model response: " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Parse decodes raw into a generic JSON value. The value is returned as
// decoded, without any schema checks. Errors are always *Failure.
func Parse(raw string) (any, error) {
	var v any
	if err := Decode(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode is Parse into a caller supplied target.
func Decode(raw string, target any) error {
	if err := json.Unmarshal([]byte(StripFences(raw)), target); err != nil {
		return &Failure{Err: err, RawResponse: helpers.Truncate(raw, RawResponseLimit)}
	}
	return nil
}

// StripFences trims raw and removes a surrounding markdown code fence, with
// or without a language tag. The JSON may start on the fence line.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, fence) {
		return text
	}

	text = strings.TrimPrefix(text, fence)
	text = strings.TrimPrefix(text, languageTag(text))
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}

// languageTag returns the tag that directly follows an opening fence, such
// as "json" in "```json{". A tag starts with a letter and runs until
// whitespace or the first bracket.
func languageTag(text string) string {
	end := strings.IndexFunc(text, func(r rune) bool {
		return !isTagRune(r)
	})
	if end < 0 {
		end = len(text)
	}
	tag := text[:end]
	if tag == "" || !unicode.IsLetter(rune(tag[0])) {
		return ""
	}
	return tag
}

func isTagRune(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_+-", r))
}
