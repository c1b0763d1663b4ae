// Package validate converts untyped JSON request bodies into well-formed
// task records. Structural constraints are enforced by embedded JSON
// schemas; date strings are additionally checked to denote real calendar
// dates. Validation is all-or-nothing: nothing reaches the store unless
// the whole payload is valid.
package validate

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/taskforge/taskd/pkg/types"
)

// DecodeNewTasks parses a bulk-create body. The body must be a JSON array
// of task objects; anything else fails with MalformedError. Each element
// is schema-validated after silently stripping any client-supplied id.
// If any element fails, the whole batch fails with a ValidationError
// carrying per-field messages keyed by element position.
func DecodeNewTasks(body []byte) ([]types.NewTask, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &MalformedError{Message: "request body is not valid JSON"}
	}
	elements, ok := raw.([]any)
	if !ok {
		return nil, &MalformedError{Message: "expected a list of tasks"}
	}

	var fieldErrs []FieldError
	records := make([]types.NewTask, 0, len(elements))

	for i, element := range elements {
		obj, ok := element.(map[string]any)
		if !ok {
			return nil, &MalformedError{Message: fmt.Sprintf("task %d must be an object", i)}
		}
		// Client-supplied ids are discarded, not rejected.
		delete(obj, "id")

		prefix := fmt.Sprintf("[%d].", i)
		if err := taskSchema.Validate(obj); err != nil {
			appendSchemaErrors(err, prefix, &fieldErrs)
			continue
		}

		record, errs := buildNewTask(obj, prefix)
		if len(errs) > 0 {
			fieldErrs = append(fieldErrs, errs...)
			continue
		}
		records = append(records, record)
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	return records, nil
}

// buildNewTask converts a schema-valid object into a NewTask, parsing the
// due date. The schema guarantees field types; only calendar realness can
// still fail here.
func buildNewTask(obj map[string]any, prefix string) (types.NewTask, []FieldError) {
	record := types.NewTask{
		Title:  obj["title"].(string),
		Status: obj["status"].(string),
	}
	if v, ok := obj["description"]; ok && v != nil {
		s := v.(string)
		record.Description = &s
	}
	if v, ok := obj["due_date"]; ok && v != nil {
		d, err := types.ParseDate(v.(string))
		if err != nil {
			return types.NewTask{}, []FieldError{{
				Field:   prefix + "due_date",
				Message: "not a valid calendar date",
			}}
		}
		record.DueDate = &d
	}
	return record, nil
}

// DecodePatch parses a partial-update body. The body must be a JSON
// object; only title, description, status and due_date are honored, and
// only fields present in the body are marked for update. An explicit
// null clears description or due_date.
func DecodePatch(body []byte) (types.TaskPatch, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return types.TaskPatch{}, &MalformedError{Message: "request body is not valid JSON"}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return types.TaskPatch{}, &MalformedError{Message: "expected a task object"}
	}

	if err := patchSchema.Validate(obj); err != nil {
		var fieldErrs []FieldError
		appendSchemaErrors(err, "", &fieldErrs)
		return types.TaskPatch{}, &ValidationError{Fields: fieldErrs}
	}

	var patch types.TaskPatch
	if v, ok := obj["title"]; ok {
		s := v.(string)
		patch.Title = &s
	}
	if v, ok := obj["status"]; ok {
		s := v.(string)
		patch.Status = &s
	}
	if v, ok := obj["description"]; ok {
		patch.HasDescription = true
		if v != nil {
			s := v.(string)
			patch.Description = &s
		}
	}
	if v, ok := obj["due_date"]; ok {
		patch.HasDueDate = true
		if v != nil {
			d, err := types.ParseDate(v.(string))
			if err != nil {
				return types.TaskPatch{}, &ValidationError{Fields: []FieldError{{
					Field:   "due_date",
					Message: "not a valid calendar date",
				}}}
			}
			patch.DueDate = &d
		}
	}
	return patch, nil
}

// appendSchemaErrors flattens a jsonschema validation error into field
// errors. Non-schema errors become a single opaque entry; the validator
// only ever produces *jsonschema.ValidationError here.
func appendSchemaErrors(err error, prefix string, out *[]FieldError) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*out = append(*out, FieldError{Field: prefix + "(root)", Message: err.Error()})
		return
	}
	collectFieldErrors(ve, prefix, out)
}
