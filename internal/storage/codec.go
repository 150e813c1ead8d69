package storage

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/assistant/internal/schema"
)

// Codec turns snapshots into bytes and back.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type YAMLCodec struct{}

func (YAMLCodec) Name() string { return BackendYAML }

func (YAMLCodec) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (YAMLCodec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// JSONCodec checks documents against the snapshot schemas before decoding.
type JSONCodec struct {
	validator *schema.Validator
}

func NewJSONCodec() JSONCodec {
	return JSONCodec{validator: schema.NewValidator()}
}

func (JSONCodec) Name() string { return BackendJSON }

func (JSONCodec) Marshal(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

func (c JSONCodec) Unmarshal(data []byte, v any) error {
	if c.validator != nil {
		var def map[string]any
		switch v.(type) {
		case *ContactsSnapshot:
			def = contactsSchema
		case *NotesSnapshot:
			def = notesSchema
		}
		if def != nil {
			if err := c.validator.Validate(def, data); err != nil {
				return fmt.Errorf("invalid snapshot: %w", err)
			}
		}
	}
	return json.Unmarshal(data, v)
}

var nullableString = map[string]any{"type": []string{"string", "null"}}

// Unknown properties are allowed so newer minor additions still load.
var contactsSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]any{
		"version":  map[string]any{"type": "integer", "minimum": 0},
		"saved_at": nullableString,
		"contacts": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []string{"name"},
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "minLength": 1},
					"phones":   map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
					"email":    nullableString,
					"address":  nullableString,
					"birthday": nullableString,
				},
			},
		},
	},
}

var notesSchema = map[string]any{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type":    "object",
	"properties": map[string]any{
		"version":  map[string]any{"type": "integer", "minimum": 0},
		"saved_at": nullableString,
		"notes": map[string]any{
			"type": []string{"array", "null"},
			"items": map[string]any{
				"type":     "object",
				"required": []string{"contact", "text"},
				"properties": map[string]any{
					"contact": map[string]any{"type": "string", "minLength": 1},
					"id":      map[string]any{"type": "string"},
					"text":    map[string]any{"type": "string"},
					"tags":    map[string]any{"type": []string{"array", "null"}, "items": map[string]any{"type": "string"}},
				},
			},
		},
	},
}
