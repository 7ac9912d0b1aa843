// Package wizardfile builds flows from declarative YAML wizard files.
//
// A wizard file lists steps in order:
//
//	name: service
//	mode: accept
//	steps:
//	  - id: name
//	    type: text
//	    name: Service name
//	    default: api
//	  - id: lang
//	    type: single
//	    items:
//	      - {name: Go, value: go}
//	      - {name: Java, value: java, disabled: true}
//	    sort: name
//
// Values can be pre-supplied inline (value, values) or from an answers
// JSON document looked up with gjson paths.
package wizardfile

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphi011/up/internal/flow"
)

// Step types.
const (
	TypeText   = "text"
	TypePath   = "path"
	TypeSingle = "single"
	TypeMulti  = "multi"
)

var (
	validTypes = []string{TypeText, TypePath, TypeSingle, TypeMulti}
	validSorts = []string{"", "none", "name", "value"}
)

// File is a parsed wizard file.
type File struct {
	Name  string `yaml:"name"`
	Mode  string `yaml:"mode"` // default result mode for every step
	Steps []Step `yaml:"steps"`
}

// Step declares one prompt.
type Step struct {
	ID       string   `yaml:"id"`
	Type     string   `yaml:"type"`
	Name     string   `yaml:"name"`
	Default  string   `yaml:"default"` // text and path only
	Value    string   `yaml:"value"`
	Values   []string `yaml:"values"` // multi only
	Items    []Item   `yaml:"items"`
	Sort     string   `yaml:"sort"`
	Max      int      `yaml:"max"`
	Mode     string   `yaml:"mode"`
	Store    *bool    `yaml:"store"` // nil means true
	Template string   `yaml:"template"`
	Answer   string   `yaml:"answer"` // gjson path; defaults to id
}

// Item is a selectable entry of a choice step.
type Item struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value"` // defaults to name
	Description string `yaml:"description"`
	Disabled    bool   `yaml:"disabled"`
}

// Load reads and validates the wizard file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a wizard file. Unknown keys are errors.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse wizard: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate reports every problem in the file at once.
func (f *File) Validate() error {
	var errs []error
	if len(f.Steps) == 0 {
		errs = append(errs, errors.New("wizard has no steps"))
	}
	if _, err := flow.ParseResultMode(f.Mode); err != nil {
		errs = append(errs, err)
	}
	for i, s := range f.Steps {
		where := fmt.Sprintf("steps[%d]", i)
		if s.ID != "" {
			where = fmt.Sprintf("step %q", s.ID)
		}
		for _, err := range s.validate() {
			errs = append(errs, fmt.Errorf("%s: %w", where, err))
		}
	}
	return errors.Join(errs...)
}

func (s Step) validate() []error {
	var errs []error
	if strings.TrimSpace(s.ID) == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if !slices.Contains(validTypes, s.Type) {
		errs = append(errs, fmt.Errorf("invalid type %q (valid: %s)", s.Type, strings.Join(validTypes, ", ")))
	}
	if _, err := flow.ParseResultMode(s.Mode); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(validSorts, s.Sort) {
		errs = append(errs, fmt.Errorf("invalid sort %q (valid: none, name, value)", s.Sort))
	}
	if s.Max < 0 {
		errs = append(errs, fmt.Errorf("max must not be negative, got %d", s.Max))
	}

	choice := s.Type == TypeSingle || s.Type == TypeMulti
	if choice && len(s.Items) == 0 {
		errs = append(errs, errors.New("choice step needs items"))
	}
	if !choice && len(s.Items) > 0 {
		errs = append(errs, fmt.Errorf("items are not allowed on %s steps", s.Type))
	}
	if choice && s.Default != "" {
		errs = append(errs, errors.New("default is only allowed on text and path steps, use value or mode: verify"))
	}
	if s.Type != TypeMulti && len(s.Values) > 0 {
		errs = append(errs, errors.New("values is only allowed on multi steps"))
	}
	if s.Type == TypeMulti && s.Value != "" {
		errs = append(errs, errors.New("use values on multi steps"))
	}
	for i, it := range s.Items {
		if strings.TrimSpace(it.Name) == "" {
			errs = append(errs, fmt.Errorf("items[%d]: name is required", i))
		}
	}
	return errs
}

// selectItems converts the declared items.
func (s Step) selectItems() []flow.SelectItem {
	items := make([]flow.SelectItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, flow.SelectItem{
			Name:        it.Name,
			Value:       cmp.Or(it.Value, it.Name),
			Description: it.Description,
			Enabled:     !it.Disabled,
		})
	}
	return items
}

func (s Step) comparator() flow.Comparator {
	switch s.Sort {
	case "name":
		return func(a, b flow.SelectItem) int { return cmp.Compare(a.Name, b.Name) }
	case "value":
		return func(a, b flow.SelectItem) int { return cmp.Compare(a.Value, b.Value) }
	}
	return nil
}

func (s Step) store() bool {
	return s.Store == nil || *s.Store
}

func (s Step) answerPath() string {
	return cmp.Or(s.Answer, s.ID)
}
