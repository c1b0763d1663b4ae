// Package types defines the Task entity, creation and patch records,
// calendar date handling, configuration, and standard error types for
// the taskd service.
package types
