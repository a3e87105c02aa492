package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AnswerKind tags which variant an Answer holds.
type AnswerKind string

const (
	AnswerScale   AnswerKind = "scale"
	AnswerChoice  AnswerKind = "choice"
	AnswerNumeric AnswerKind = "numeric"
)

// Answer is a tagged union of the three answer shapes. The zero value is an absent answer.
// Values are only built through the constructors so a kind can never carry another kind's value.
type Answer struct {
	kind    AnswerKind
	scale   int
	choice  string
	numeric *float64
}

// ScaleAnswer builds a 1-5 scale answer. Out-of-range values are kept and clamped at scoring time.
func ScaleAnswer(v int) Answer {
	return Answer{kind: AnswerScale, scale: v}
}

// ChoiceAnswer builds a choice answer.
func ChoiceAnswer(v string) Answer {
	return Answer{kind: AnswerChoice, choice: v}
}

// NumericAnswer builds a numeric answer.
func NumericAnswer(v float64) Answer {
	return Answer{kind: AnswerNumeric, numeric: &v}
}

// EmptyNumericAnswer is a numeric answer the user left blank.
func EmptyNumericAnswer() Answer {
	return Answer{kind: AnswerNumeric}
}

// Kind returns the variant tag, or "" for an absent answer.
func (a Answer) Kind() AnswerKind { return a.kind }

// Scale returns the scale value if the answer is a scale answer.
func (a Answer) Scale() (int, bool) {
	return a.scale, a.kind == AnswerScale
}

// Choice returns the chosen value if the answer is a choice answer.
func (a Answer) Choice() (string, bool) {
	return a.choice, a.kind == AnswerChoice
}

// Numeric returns the number if the answer is a non-empty numeric answer.
func (a Answer) Numeric() (float64, bool) {
	if a.kind != AnswerNumeric || a.numeric == nil {
		return 0, false
	}
	return *a.numeric, true
}

// IsEmpty reports whether the answer counts as not given: absent, a blank choice, or a blank number.
func (a Answer) IsEmpty() bool {
	switch a.kind {
	case AnswerScale:
		return false
	case AnswerChoice:
		return strings.TrimSpace(a.choice) == ""
	case AnswerNumeric:
		return a.numeric == nil
	}
	return true
}

// Matches reports whether the answer's kind fits the question type.
func (a Answer) Matches(t QuestionType) bool {
	switch t {
	case QuestionTypeScale:
		return a.kind == AnswerScale
	case QuestionTypeChoice:
		return a.kind == AnswerChoice
	case QuestionTypeNumeric:
		return a.kind == AnswerNumeric
	}
	return false
}

// String renders the answer for logs.
func (a Answer) String() string {
	switch a.kind {
	case AnswerScale:
		return fmt.Sprintf("scale(%d)", a.scale)
	case AnswerChoice:
		return fmt.Sprintf("choice(%q)", a.choice)
	case AnswerNumeric:
		if a.numeric == nil {
			return "numeric(empty)"
		}
		return fmt.Sprintf("numeric(%g)", *a.numeric)
	}
	return "absent"
}

type answerJSON struct {
	Kind  AnswerKind      `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes the answer as {"kind": ..., "value": ...}.
func (a Answer) MarshalJSON() ([]byte, error) {
	var value any
	switch a.kind {
	case AnswerScale:
		value = a.scale
	case AnswerChoice:
		value = a.choice
	case AnswerNumeric:
		if a.numeric != nil {
			value = *a.numeric
		}
	case "":
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("unknown answer kind %q", a.kind)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(answerJSON{Kind: a.kind, Value: raw})
}

// UnmarshalJSON decodes {"kind": ..., "value": ...}, rejecting values of the wrong JSON type.
func (a *Answer) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = Answer{}
		return nil
	}
	var raw answerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid answer: %w", err)
	}
	empty := len(raw.Value) == 0 || bytes.Equal(raw.Value, []byte("null"))

	switch raw.Kind {
	case AnswerScale:
		var v int
		if empty {
			return fmt.Errorf("scale answer requires an integer value")
		}
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return fmt.Errorf("scale answer must be an integer: %w", err)
		}
		*a = ScaleAnswer(v)
	case AnswerChoice:
		var v string
		if !empty {
			if err := json.Unmarshal(raw.Value, &v); err != nil {
				return fmt.Errorf("choice answer must be a string: %w", err)
			}
		}
		*a = ChoiceAnswer(v)
	case AnswerNumeric:
		if empty {
			*a = EmptyNumericAnswer()
			return nil
		}
		var v float64
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return fmt.Errorf("numeric answer must be a number: %w", err)
		}
		*a = NumericAnswer(v)
	default:
		return fmt.Errorf("unknown answer kind %q", raw.Kind)
	}
	return nil
}

// Answers maps question ids to answers. Re-answering a question overwrites it.
type Answers map[string]Answer

// Clone returns an independent copy. A nil map clones to an empty map.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
