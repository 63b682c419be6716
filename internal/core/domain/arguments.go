package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// Arguments holds the JVM and game argument templates of a descriptor.
type Arguments struct {
	JVM  []ArgToken `json:"jvm,omitempty"`
	Game []ArgToken `json:"game,omitempty"`
}

// ArgToken is one entry of an argument template: either a literal string, or
// a conditional {rules, value} object whose value is a string or a list of
// strings and is emitted only when its rules allow the current platform.
type ArgToken struct {
	Rules  []Rule
	Values []string

	// literal marks the bare-string form; single marks an object whose value
	// was a single string. Both only affect re-serialization.
	literal bool
	single  bool
}

// Lit builds a literal argument token.
func Lit(value string) ArgToken {
	return ArgToken{Values: []string{value}, literal: true}
}

// Conditional builds a rule-gated argument token.
func Conditional(rules []Rule, values ...string) ArgToken {
	return ArgToken{Rules: rules, Values: values, single: len(values) == 1}
}

// Literal reports whether the token is an unconditional bare string.
func (t ArgToken) Literal() bool {
	return t.literal
}

// UnmarshalJSON accepts both the bare-string and the object form.
func (t *ArgToken) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ArgToken{Values: []string{s}, literal: true}
		return nil
	}

	var obj struct {
		Rules []Rule          `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return zerr.Wrap(err, "failed to decode argument token")
	}

	tok := ArgToken{Rules: obj.Rules}
	var single string
	if err := json.Unmarshal(obj.Value, &single); err == nil {
		tok.Values = []string{single}
		tok.single = true
	} else if err := json.Unmarshal(obj.Value, &tok.Values); err != nil {
		return zerr.Wrap(err, "failed to decode argument token value")
	}

	*t = tok
	return nil
}

// MarshalJSON writes the token back in the form it was read in.
func (t ArgToken) MarshalJSON() ([]byte, error) {
	if t.literal && len(t.Values) == 1 {
		return json.Marshal(t.Values[0])
	}

	obj := map[string]any{"rules": t.Rules}
	if t.single && len(t.Values) == 1 {
		obj["value"] = t.Values[0]
	} else {
		obj["value"] = t.Values
	}
	return json.Marshal(obj)
}
