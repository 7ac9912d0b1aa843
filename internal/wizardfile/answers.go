package wizardfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Answers is a JSON document of pre-supplied values.
type Answers struct {
	doc string
}

// LoadAnswers reads a JSON answers file.
func LoadAnswers(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ParseAnswers(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// ParseAnswers wraps a JSON document.
func ParseAnswers(doc string) (*Answers, error) {
	if !gjson.Valid(doc) {
		return nil, errors.New("answers are not valid JSON")
	}
	return &Answers{doc: doc}, nil
}

// String returns the scalar at path. ok is false if the path is missing,
// null or not a scalar.
func (a *Answers) String(path string) (string, bool) {
	if a == nil {
		return "", false
	}
	r := gjson.Get(a.doc, path)
	if !r.Exists() || r.Type == gjson.Null || r.IsArray() || r.IsObject() {
		return "", false
	}
	return r.String(), true
}

// Strings returns the values at path. A scalar yields a one-element slice.
func (a *Answers) Strings(path string) ([]string, bool) {
	if a == nil {
		return nil, false
	}
	r := gjson.Get(a.doc, path)
	if !r.Exists() || r.Type == gjson.Null || r.IsObject() {
		return nil, false
	}
	if !r.IsArray() {
		return []string{r.String()}, true
	}
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out, true
}
