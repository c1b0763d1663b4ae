package validate

import (
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// taskSchemaJSON constrains a single task object on create. Extra fields
// are ignored rather than rejected; the client-supplied id is stripped
// before validation so it never conflicts.
const taskSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1, "maxLength": 255},
    "description": {"type": ["string", "null"], "maxLength": 500},
    "status": {"type": "string", "minLength": 1, "maxLength": 100},
    "due_date": {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
  },
  "required": ["title", "status"]
}`

// patchSchemaJSON constrains a partial update. No field is required;
// title and status may not be null since the stored columns are NOT NULL.
const patchSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1, "maxLength": 255},
    "description": {"type": ["string", "null"], "maxLength": 500},
    "status": {"type": "string", "minLength": 1, "maxLength": 100},
    "due_date": {"type": ["string", "null"], "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"}
  }
}`

var (
	taskSchema  = mustCompile("task.json", taskSchemaJSON)
	patchSchema = mustCompile("patch.json", patchSchemaJSON)
)

// mustCompile compiles an embedded schema document. The schemas are
// constants, so a compile failure is a programming error.
func mustCompile(name, doc string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(doc)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

// pointerField converts a JSON pointer instance location ("/due_date")
// to a plain field name ("due_date").
func pointerField(ptr string) string {
	return strings.TrimPrefix(ptr, "/")
}

// collectFieldErrors walks a schema validation error tree and appends one
// FieldError per leaf cause, optionally prefixing the field with the
// element position for batch payloads.
func collectFieldErrors(err *jsonschema.ValidationError, prefix string, out *[]FieldError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		field := pointerField(err.InstanceLocation)
		if field == "" {
			field = "(root)"
		}
		*out = append(*out, FieldError{
			Field:   prefix + field,
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectFieldErrors(cause, prefix, out)
	}
}
