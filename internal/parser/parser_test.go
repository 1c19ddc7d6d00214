package parser

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFencedEqualsUnwrapped(t *testing.T) {
	payload := `{"primaryActivity": "coding", "confidence": 90, "secondaryActivities": ["debugging"]}`

	want, err := Parse(payload)
	require.NoError(t, err)

	wrapped := []string{
		"```json\n" + payload + "\n```",
		"```\n" + payload + "\n```",
		"  \n```JSON\n" + payload + "\n```  \n",
		"```json\n" + payload + "```",
		"```" + payload + "```",
		"```" + payload + "\n```",
		"```json" + payload + "```",
		"```json " + payload + "```",
		"```c++\n" + payload + "\n```",
	}
	for _, raw := range wrapped {
		got, err := Parse(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}
}

func TestParseJSONOnFenceLine(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"object starts on fence line", "```{\n\"a\": 1\n}\n```"},
		{"glued tag", "```json{\"a\": 1}```"},
		{"tag then space", "```json {\"a\": 1}```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"a": 1.0}, got)
		})
	}

	got, err := Parse("```json\n[1, 2]\n```")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, got)
}

func TestParseReturnsValueUnchanged(t *testing.T) {
	got, err := Parse(`{"unexpected": [1, null], "nested": {"a": true}}`)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"unexpected": []any{1.0, nil},
		"nested":     map[string]any{"a": true},
	}, got)
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"prose", "I could not analyze this screenshot, sorry."},
		{"empty", ""},
		{"truncated json", `{"ocr": {"extractedText": "hel`},
		{"long text", strings.Repeat("not json ", 100)},
		{"long multibyte text", strings.Repeat("界", 500)},
		{"fence without json", "```json\nnope\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.raw)
			assert.Nil(t, v)

			var failure *Failure
			require.True(t, errors.As(err, &failure))
			assert.NotEmpty(t, failure.Err.Error())
			assert.LessOrEqual(t, utf8.RuneCountInString(failure.RawResponse), RawResponseLimit)
			assert.True(t, strings.HasPrefix(tt.raw, failure.RawResponse))
		})
	}
}

func TestDecodeIntoStruct(t *testing.T) {
	var out struct {
		Confidence float64 `json:"confidence"`
	}
	require.NoError(t, Decode("```json\n{\"confidence\": 42}\n```", &out))
	assert.Equal(t, 42.0, out.Confidence)
}
