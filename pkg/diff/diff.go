package diff

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wI2L/jsondiff"
)

// Change is a single field difference between two JSON documents.
type Change struct {
	Op       string      `json:"op"`
	Field    string      `json:"field"`
	Actor    string      `json:"actor,omitempty"`
	NewValue interface{} `json:"new_value,omitempty"`
	OldValue interface{} `json:"old_value,omitempty"`
}

type Changelog []*Change

// Fields returns the distinct changed fields in order.
func (c Changelog) Fields() []string {
	seen := map[string]bool{}
	fields := []string{}
	for _, ch := range c {
		if !seen[ch.Field] {
			seen[ch.Field] = true
			fields = append(fields, ch.Field)
		}
	}
	sort.Strings(fields)
	return fields
}

func (c Changelog) String() string {
	return strings.Join(c.Fields(), ", ")
}

type options struct {
	actor   string
	ignored []string
}

type Option func(*options)

// WithActor stamps every change with actor.
func WithActor(actor string) Option {
	return func(o *options) { o.actor = actor }
}

// Ignore drops changes on the given fields and anything nested below them.
func Ignore(fields ...string) Option {
	return func(o *options) { o.ignored = append(o.ignored, fields...) }
}

func (o *options) skip(field string) bool {
	for _, f := range o.ignored {
		if field == f || strings.HasPrefix(field, f+".") {
			return true
		}
	}
	return false
}

// Compare marshals both values to JSON and lists what turned before into after.
// Removed and replaced values carry their previous value. Fields are dot separated,
// e.g. "request_details.site".
func Compare(before, after interface{}, opts ...Option) (Changelog, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	source, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("marshalling previous value: %w", err)
	}
	target, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("marshalling new value: %w", err)
	}

	patch, err := jsondiff.CompareJSON(source, target)
	if err != nil {
		return nil, err
	}

	var original interface{}
	if err := json.Unmarshal(source, &original); err != nil {
		return nil, err
	}

	var changelog Changelog
	for _, op := range patch {
		segments := splitPointer(string(op.Path))
		field := strings.Join(segments, ".")
		if o.skip(field) {
			continue
		}

		ch := &Change{Op: op.Type, Field: field, Actor: o.actor, NewValue: op.Value}
		if op.Type == "remove" || op.Type == "replace" {
			if ch.OldValue, err = valueAt(original, segments); err != nil {
				return nil, fmt.Errorf("resolving %q: %w", op.Path, err)
			}
		}
		changelog = append(changelog, ch)
	}

	return changelog, nil
}

func valueAt(doc interface{}, segments []string) (interface{}, error) {
	current := doc
	for _, s := range segments {
		switch node := current.(type) {
		case map[string]interface{}:
			current = node[s]
		case []interface{}:
			i, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("invalid array index %q", s)
			}
			if i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index out of range: %d", i)
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("no value at %q", s)
		}
	}
	return current, nil
}

// splitPointer decodes an RFC 6901 pointer into its unescaped segments.
func splitPointer(pointer string) []string {
	if pointer == "" {
		return nil
	}
	segments := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	for i, s := range segments {
		segments[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return segments
}
