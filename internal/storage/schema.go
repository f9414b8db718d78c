package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// taskProperties is shared by the persisted task list and the editable payload.
const taskProperties = `
    "summary":  {"type": "string", "minLength": 1},
    "details":  {"type": "string"},
    "priority": {"type": "integer", "minimum": 1, "maximum": 9},
    "category": {"type": "string"},
    "status":   {"enum": ["active", "backlog", "blocked", "sleeping", "completed"]},
    "blocked_by": {
      "type": ["array", "null"],
      "items": {"type": "string", "minLength": 1}
    },
    "wake_at": {"type": ["string", "null"], "format": "date-time"}`

const taskListSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "summary", "priority", "created_at", "status"],
    "properties": {
      "id":         {"type": "string", "pattern": "^[0-9a-f]+$"},
      "created_at": {"type": "string", "format": "date-time"},` + taskProperties + `
    }
  }
}`

const editableTaskSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["summary", "priority", "status"],
  "additionalProperties": false,
  "properties": {` + taskProperties + `
  }
}`

var (
	taskListSchema     = mustCompile("ztask://schemas/task-list.json", taskListSchemaJSON)
	editableTaskSchema = mustCompile("ztask://schemas/editable-task.json", editableTaskSchemaJSON)
)

func mustCompile(url, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("adding schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// SchemaError describes the first violation found while validating a document.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "schema violation: " + e.Message
	}
	return fmt.Sprintf("schema violation at %s: %s", e.Path, e.Message)
}

// ValidateTaskList checks raw JSON against the persisted task-list schema.
func ValidateTaskList(data []byte) error {
	return validate(taskListSchema, data)
}

// ValidateEditableTask checks raw JSON against the editable task payload schema.
func ValidateEditableTask(data []byte) error {
	return validate(editableTaskSchema, data)
}

func validate(schema *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return firstLeafError(ve)
		}
		return err
	}
	return nil
}

func firstLeafError(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &SchemaError{Path: ve.InstanceLocation, Message: ve.Message}
}
