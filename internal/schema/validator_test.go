package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personSchema = map[string]any{
	"type":     "object",
	"required": []string{"name"},
	"properties": map[string]any{
		"name":   map[string]any{"type": "string"},
		"phones": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(personSchema, []byte(`{"name":"Ann","phones":["0501234567"]}`)))
	// second call hits the cache
	assert.NoError(t, v.Validate(personSchema, []byte(`{"name":"Bob"}`)))
}

func TestValidate_Invalid(t *testing.T) {
	v := NewValidator()
	err := v.Validate(personSchema, []byte(`{"phones":[1]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
	assert.Contains(t, err.Error(), "name")
}

func TestValidate_NotJSON(t *testing.T) {
	v := NewValidator()
	assert.Error(t, v.Validate(personSchema, []byte(`not json`)))
}

func TestValidate_StringSchema(t *testing.T) {
	v := NewValidator()
	assert.Error(t, v.Validate(`{"type":"array"}`, []byte(`{}`)))
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "a\n- b", summarize([]string{"a", "b"}))
	assert.Equal(t, "a\n- b\n- c\n... and 2 more", summarize([]string{"a", "b", "c", "d", "e"}))
}
