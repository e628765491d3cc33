package domain

import (
	"errors"
	"fmt"
	"strings"
)

type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeDate        FieldType = "date"
	FieldTypeFile        FieldType = "file"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidFieldOption   = errors.New("value is not one of the field options")
)

// Field is one entry of a dynamic form definition.
type Field struct {
	Name     string    `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Label    string    `json:"label" yaml:"label" mapstructure:"label"`
	Type     FieldType `json:"type" yaml:"type" mapstructure:"type" validate:"required,oneof=text textarea date file select multiselect"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
	Required *bool     `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
}

// IsRequired treats an unset flag as required, matching the intake form which
// rejects submissions with any empty field.
func (f Field) IsRequired() bool {
	return f.Required == nil || *f.Required
}

func (f Field) hasOptions() bool {
	return f.Type == FieldTypeSelect || f.Type == FieldTypeMultiselect
}

// FieldSchema is the ordered field list driving both submission and detail rendering.
type FieldSchema []Field

func (s FieldSchema) Get(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks submitted details against the schema. Keys unknown to the schema
// are ignored.
func (s FieldSchema) Validate(details map[string]interface{}) error {
	for _, f := range s {
		v, ok := details[f.Name]
		if !ok || isEmptyValue(v) {
			if f.IsRequired() {
				return fmt.Errorf("%w: %q", ErrMissingRequiredField, f.Name)
			}
			continue
		}
		if f.hasOptions() && len(f.Options) > 0 {
			for _, item := range toStrings(v) {
				if !containsFold(f.Options, item) {
					return fmt.Errorf("%w: %q=%q", ErrInvalidFieldOption, f.Name, item)
				}
			}
		}
	}
	return nil
}

// DetailEntry is a labelled value ready to display.
type DetailEntry struct {
	Name  string    `json:"name" yaml:"name"`
	Label string    `json:"label" yaml:"label"`
	Type  FieldType `json:"type" yaml:"type"`
	Value string    `json:"value" yaml:"value"`
}

// Details lays details out in schema order, skipping keys the schema does not know.
func (s FieldSchema) Details(details map[string]interface{}) []DetailEntry {
	entries := make([]DetailEntry, 0, len(s))
	for _, f := range s {
		v, ok := details[f.Name]
		if !ok {
			continue
		}
		label := f.Label
		if label == "" {
			label = f.Name
		}
		entries = append(entries, DetailEntry{
			Name:  f.Name,
			Label: label,
			Type:  f.Type,
			Value: strings.Join(toStrings(v), ", "),
		})
	}
	return entries
}

// RequestBody is the general intake form: a title, an info text and the default schema.
type RequestBody struct {
	Title  string      `json:"title" yaml:"title"`
	Info   string      `json:"info" yaml:"info"`
	Fields FieldSchema `json:"fields" yaml:"fields"`
}

// RequestForm is a named form definition managed by staff.
type RequestForm struct {
	DocumentID string      `json:"document_id" yaml:"document_id"`
	Title      string      `json:"title" yaml:"title" validate:"required"`
	Info       string      `json:"info" yaml:"info"`
	Fields     FieldSchema `json:"fields" yaml:"fields" validate:"dive"`

	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

func isEmptyValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []string:
		return len(val) == 0
	case []interface{}:
		return len(val) == 0
	}
	return false
}

func toStrings(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	}
	return []string{fmt.Sprintf("%v", v)}
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
