package errors

import (
	"fmt"
	"os"
)

// -----------------------------------------------------------------------------
// Smart Constructors with Auto-Attached Suggestions
// -----------------------------------------------------------------------------

// Config creates a configuration error with auto-attached suggestions.
func Config(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryConfig, message))
}

// ConfigWrap wraps an error as a configuration error with auto-attached suggestions.
func ConfigWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryConfig, message))
}

// Data creates a data error with auto-attached suggestions.
func Data(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryData, message))
}

// DataWrap wraps an error as a data error with auto-attached suggestions.
func DataWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryData, message))
}

// Validation creates a validation error.
func Validation(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryValidation, message))
}

// Validationf creates a validation error with a formatted message.
func Validationf(code, format string, args ...interface{}) *ReportError {
	return Validation(code, fmt.Sprintf(format, args...))
}

// Feedback creates a feedback service error.
func Feedback(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryFeedback, message))
}

// FeedbackWrap wraps an error as a feedback service error.
func FeedbackWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryFeedback, message))
}

// Render creates a render error.
func Render(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryRender, message))
}

// RenderWrap wraps an error as a render error.
func RenderWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryRender, message))
}

// Command creates a shell command error.
func Command(code, message string) *ReportError {
	return AttachSuggestions(New(code, CategoryCommand, message))
}

// IOWrap wraps an error as an IO error with auto-attached suggestions.
func IOWrap(cause error, code, message string) *ReportError {
	return AttachSuggestions(Wrap(cause, code, CategoryIO, message))
}

// -----------------------------------------------------------------------------
// Quick Constructors for Common Error Codes
// -----------------------------------------------------------------------------

// ConfigNotFound creates a CONFIG_NOT_FOUND error.
func ConfigNotFound(path string) *ReportError {
	return AttachSuggestions(New(ErrConfigNotFound, CategoryConfig, "configuration file not found").
		WithContext("path", path))
}

// ConfigParseError creates a CONFIG_PARSE_FAILED error.
func ConfigParseError(path string, cause error) *ReportError {
	return ConfigWrap(cause, ErrConfigParseFailed, "failed to parse configuration file").
		WithContext("path", path)
}

// NoStudentResults creates the DATA_NOT_FOUND error shown when a student
// ID has no exam records.
func NoStudentResults(id string) *ReportError {
	err := New(ErrDataNotFound, CategoryData, "No exam results found for Student ID: "+id).
		WithContext(ContextQuery, "student").
		WithContext("student_id", id)
	return AttachSuggestions(err)
}

// NoClassResults creates the DATA_NOT_FOUND error shown when a class has
// no exam records.
func NoClassResults(class string) *ReportError {
	err := New(ErrDataNotFound, CategoryData, "No exam results found for Class: "+class).
		WithContext(ContextQuery, "class").
		WithContext("class", class)
	return AttachSuggestions(err)
}

// EmptyQuery creates a DATA_EMPTY_QUERY error.
func EmptyQuery() *ReportError {
	return Data(ErrDataEmptyQuery, "Please enter a Student ID or Class")
}

// UnsupportedFormat creates a DATA_UNSUPPORTED_FORMAT error.
func UnsupportedFormat(path, ext string) *ReportError {
	return Data(ErrDataUnsupportedFormat, fmt.Sprintf("unsupported dataset format %q", ext)).
		WithContext("path", path)
}

// DataLoadFailed creates a DATA_LOAD_FAILED error for the given file.
func DataLoadFailed(path, format string, cause error) *ReportError {
	err := Wrap(cause, ErrDataLoadFailed, CategoryData, "failed to load results dataset").
		WithContext("path", path).
		WithContext(ContextFormat, format)
	return AttachSuggestions(err)
}

// RendererNotFound creates a RENDER_UNKNOWN_RENDERER error.
func RendererNotFound(name string) *ReportError {
	return Render(ErrRenderUnknownRenderer, fmt.Sprintf("unknown renderer %q", name)).
		WithContext("renderer", name)
}

// CommandNotFound creates a COMMAND_NOT_FOUND error.
func CommandNotFound(cmd string) *ReportError {
	return Command(ErrCommandNotFound, fmt.Sprintf("unknown command: %s", cmd)).
		WithContext("command", cmd)
}

// CommandMissingArgs creates a COMMAND_MISSING_ARGS error.
func CommandMissingArgs(cmd, usage string) *ReportError {
	return Command(ErrCommandMissingArgs, fmt.Sprintf("%s requires arguments", cmd)).
		WithContext("command", cmd).
		WithContext("usage", usage)
}

// WriteFailed classifies a failed output write. Permission problems get
// their own code.
func WriteFailed(path string, cause error) *ReportError {
	code := ErrIOWriteFailed
	if os.IsPermission(cause) {
		code = ErrIOPermissionDenied
	}
	return IOWrap(cause, code, "failed to write report").WithContext("path", path)
}

// InternalPanic creates an INTERNAL_PANIC error from a recovered value.
func InternalPanic(recovered interface{}) *ReportError {
	return New(ErrInternalPanic, CategoryInternal, "unexpected internal error").
		WithContext("panic", fmt.Sprintf("%v", recovered))
}
