package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// bundledSchema is the embedded state schema JSON. Validation is shallow
// by design: type and required-field checks only, no cross-reference
// checks (a todo's categoryId is not verified to exist here).
const bundledSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "kept application state",
  "type": "object",
  "additionalProperties": false,
  "required": ["todos", "categories", "filter", "ui", "meta"],
  "properties": {
    "todos": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "title", "completed", "categoryId", "createdAt", "updatedAt"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "title": { "type": "string" },
          "completed": { "type": "boolean" },
          "categoryId": { "type": "string" },
          "createdAt": { "type": "integer" },
          "updatedAt": { "type": "integer" }
        }
      }
    },
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["id", "name", "createdAt", "updatedAt"],
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "name": { "type": "string" },
          "createdAt": { "type": "integer" },
          "updatedAt": { "type": "integer" }
        }
      }
    },
    "filter": {
      "type": "object",
      "additionalProperties": false,
      "required": ["status", "categoryId", "search"],
      "properties": {
        "status": { "type": "string" },
        "categoryId": { "type": "string" },
        "search": { "type": "string" }
      }
    },
    "ui": {
      "type": "object",
      "additionalProperties": false,
      "required": ["editingTodoId"],
      "properties": {
        "editingTodoId": { "type": "string" }
      }
    },
    "meta": {
      "type": "object",
      "additionalProperties": false,
      "required": ["schemaVersion"],
      "properties": {
        "schemaVersion": { "type": "integer" }
      }
    }
  }
}`

// BundledSchema returns the embedded state schema JSON content.
func BundledSchema() []byte {
	return []byte(bundledSchema)
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// validateDocument validates a parsed JSON document against the state
// schema. A schema file at schemaPath takes precedence over the bundled
// schema; when neither compiles, minimal structural checks run instead.
func validateDocument(doc interface{}, schemaPath string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema := compileSchema(schemaPath, result)
	if schema != nil {
		result.UsedSchema = true
		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, err)
		}
		return result
	}

	result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	validateMinimal(doc, result)
	return result
}

// compileSchema compiles the schema file at schemaPath, falling back to
// the bundled schema. Returns nil when no schema could be compiled.
func compileSchema(schemaPath string, result *ValidationResult) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		} else if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
			}
		} else if schema, err := compiler.Compile(absPath); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		} else {
			return schema
		}
	}

	if err := compiler.AddResource("state.schema.json", strings.NewReader(bundledSchema)); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("bundled schema unavailable: %v", err))
		return nil
	}
	schema, err := compiler.Compile("state.schema.json")
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("bundled schema unavailable: %v", err))
		return nil
	}
	return schema
}

// validateMinimal performs minimal structural validation without JSON
// Schema: required top-level sections, element types, timestamp types.
func validateMinimal(doc interface{}, result *ValidationResult) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("state must be an object"),
		})
		return
	}

	todos, ok := root["todos"].([]interface{})
	if !ok {
		fail(result, "todos", "missing or not an array")
	} else {
		for i, item := range todos {
			todo, ok := item.(map[string]interface{})
			if !ok {
				fail(result, fmt.Sprintf("todos[%d]", i), "not an object")
				continue
			}
			checkFields(result, fmt.Sprintf("todos[%d]", i), todo, map[string]kind{
				"id":         kindString,
				"title":      kindString,
				"completed":  kindBool,
				"categoryId": kindString,
				"createdAt":  kindNumber,
				"updatedAt":  kindNumber,
			})
		}
	}

	categories, ok := root["categories"].([]interface{})
	if !ok {
		fail(result, "categories", "missing or not an array")
	} else {
		for i, item := range categories {
			category, ok := item.(map[string]interface{})
			if !ok {
				fail(result, fmt.Sprintf("categories[%d]", i), "not an object")
				continue
			}
			checkFields(result, fmt.Sprintf("categories[%d]", i), category, map[string]kind{
				"id":        kindString,
				"name":      kindString,
				"createdAt": kindNumber,
				"updatedAt": kindNumber,
			})
		}
	}

	if filter, ok := root["filter"].(map[string]interface{}); !ok {
		fail(result, "filter", "missing or not an object")
	} else {
		checkFields(result, "filter", filter, map[string]kind{
			"status":     kindString,
			"categoryId": kindString,
			"search":     kindString,
		})
	}

	if ui, ok := root["ui"].(map[string]interface{}); !ok {
		fail(result, "ui", "missing or not an object")
	} else {
		checkFields(result, "ui", ui, map[string]kind{
			"editingTodoId": kindString,
		})
	}

	if meta, ok := root["meta"].(map[string]interface{}); !ok {
		fail(result, "meta", "missing or not an object")
	} else {
		checkFields(result, "meta", meta, map[string]kind{
			"schemaVersion": kindNumber,
		})
	}
}

type kind int

const (
	kindString kind = iota
	kindBool
	kindNumber
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindBool:
		return "boolean"
	default:
		return "number"
	}
}

// checkFields verifies that every named field is present with the right
// JSON type. Field names are sorted so error order is deterministic.
func checkFields(result *ValidationResult, path string, obj map[string]interface{}, fields map[string]kind) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, present := obj[name]
		if !present {
			fail(result, path+"."+name, "missing required field")
			continue
		}
		var ok bool
		switch fields[name] {
		case kindString:
			_, ok = value.(string)
		case kindBool:
			_, ok = value.(bool)
		case kindNumber:
			_, ok = value.(float64)
		}
		if !ok {
			fail(result, path+"."+name, "expected "+fields[name].String())
		}
	}
}

func fail(result *ValidationResult, path, msg string) {
	result.Valid = false
	result.Errors = append(result.Errors, &ValidationError{
		Path: path,
		Err:  fmt.Errorf("%s", msg),
	})
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation
// path, e.g. "#/todos/0/id" becomes "todos[0].id".
func jsonPointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	if strings.HasPrefix(ptr, "#") {
		ptr = strings.TrimPrefix(ptr, "#")
	}
	if strings.HasPrefix(ptr, "/") {
		ptr = ptr[1:]
	}
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}

// joinErrors formats a list of errors as a single semicolon-separated
// string for wrapping under a sentinel error.
func joinErrors(errs []error) string {
	if len(errs) == 0 {
		return "invalid"
	}
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}
