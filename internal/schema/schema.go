// Package schema holds the one policy applied to every model or fallback
// result: drop nulls, clamp numbers into their declared range, validate
// against a JSON Schema reflected from the result type, and replace whatever
// still fails with defaults.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sozercan/prodsight/apimodels"
)

// Kind names a result shape. It doubles as the label in warnings.
type Kind string

const (
	KindOCR      Kind = "ocr"
	KindObjects  Kind = "objectDetection"
	KindActivity Kind = "activityClassification"
	KindClick    Kind = "clickIntelligence"
	KindProgress Kind = "progressIndicators"
	KindSession  Kind = "sessionIntelligence"
)

var shapes = map[Kind]any{
	KindOCR:      &apimodels.OCRSignal{},
	KindObjects:  &apimodels.ObjectSignal{},
	KindActivity: &apimodels.ActivitySignal{},
	KindClick:    &apimodels.ClickInsight{},
	KindProgress: &apimodels.ProgressReport{},
	KindSession:  &apimodels.SessionInsight{},
}

var printer = message.NewPrinter(language.English)

type validator struct {
	reflected *invopop.Schema
	compiled  *jsonschema.Schema
}

// Policy validates and repairs decoded JSON values. It is safe for
// concurrent use.
type Policy struct {
	validators map[Kind]*validator
}

// New reflects and compiles a schema for every Kind.
func New() (*Policy, error) {
	reflector := &invopop.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  true,
	}

	p := &Policy{validators: make(map[Kind]*validator, len(shapes))}
	for kind, shape := range shapes {
		reflected := reflector.Reflect(shape)
		compiled, err := compile(string(kind)+".json", reflected)
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", kind, err)
		}
		p.validators[kind] = &validator{reflected: reflected, compiled: compiled}
	}
	return p, nil
}

func compile(name string, s *invopop.Schema) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	return compiler.Compile(name)
}

// Decode repairs value and decodes it into target, which must point to the
// Go type registered for kind. It reports whether a usable object was
// supplied. Fields that fail validation are left at their zero value and
// described in the returned warnings.
func (p *Policy) Decode(kind Kind, value any, target any) (bool, []string) {
	v, ok := p.validators[kind]
	if !ok {
		return false, []string{fmt.Sprintf("%s: no schema registered", kind)}
	}

	obj, ok := DropNulls(value).(map[string]any)
	if !ok {
		if value == nil {
			return false, nil
		}
		return false, []string{fmt.Sprintf("%s: expected an object, using defaults", kind)}
	}

	clampObject(v.reflected, obj)

	var warnings []string
	// Each round removes at least one offending property, so this ends.
	for range len(obj) + 1 {
		err := v.compiled.Validate(toValidatorValue(obj))
		if err == nil {
			break
		}
		fields, msgs := offending(err)
		for _, m := range msgs {
			warnings = append(warnings, fmt.Sprintf("%s: %s", kind, m))
		}
		if len(fields) == 0 {
			return false, append(warnings, fmt.Sprintf("%s: invalid object, using defaults", kind))
		}
		for _, f := range fields {
			delete(obj, f)
		}
	}

	raw, err := json.Marshal(obj)
	if err == nil {
		err = json.Unmarshal(raw, target)
	}
	if err != nil {
		return false, append(warnings, fmt.Sprintf("%s: %v, using defaults", kind, err))
	}
	return true, warnings
}

// toValidatorValue round-trips v so numbers are json.Number, the
// representation the validator expects.
func toValidatorValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return v
	}
	return doc
}

// offending returns the top-level properties named by the leaf validation
// errors along with readable messages.
func offending(err error) ([]string, []string) {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, []string{err.Error()}
	}

	fieldSet := make(map[string]bool)
	msgSet := make(map[string]bool)
	collect(verr, fieldSet, msgSet)

	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	msgs := make([]string, 0, len(msgSet))
	for m := range msgSet {
		msgs = append(msgs, m)
	}
	sort.Strings(fields)
	sort.Strings(msgs)
	return fields, msgs
}

func collect(err *jsonschema.ValidationError, fields, msgs map[string]bool) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		path := "/" + strings.Join(err.InstanceLocation, "/")
		msgs[path+": "+err.ErrorKind.LocalizedString(printer)] = true
		if len(err.InstanceLocation) > 0 {
			fields[err.InstanceLocation[0]] = true
		}
	}
	for _, cause := range err.Causes {
		collect(cause, fields, msgs)
	}
}

// DropNulls removes null members from objects and null elements from arrays,
// recursively.
func DropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = DropNulls(val)
		}
		return t
	case []any:
		out := t[:0]
		for _, val := range t {
			if val != nil {
				out = append(out, DropNulls(val))
			}
		}
		return out
	}
	return v
}

// clampObject pulls numbers that violate a declared minimum or maximum back
// into range.
func clampObject(s *invopop.Schema, obj map[string]any) {
	if s == nil || s.Properties == nil {
		return
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if val, ok := obj[pair.Key]; ok {
			obj[pair.Key] = clampValue(pair.Value, val)
		}
	}
}

func clampValue(s *invopop.Schema, v any) any {
	switch t := v.(type) {
	case float64:
		if lo, err := s.Minimum.Float64(); err == nil && s.Minimum != "" && t < lo {
			return lo
		}
		if hi, err := s.Maximum.Float64(); err == nil && s.Maximum != "" && t > hi {
			return hi
		}
	case map[string]any:
		clampObject(s, t)
	case []any:
		if s.Items != nil {
			for i := range t {
				t[i] = clampValue(s.Items, t[i])
			}
		}
	}
	return v
}
