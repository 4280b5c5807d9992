package errors

// -----------------------------------------------------------------------------
// Configuration Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = "CONFIG_NOT_FOUND"

	// ErrConfigParseFailed indicates the configuration file could not be parsed.
	ErrConfigParseFailed = "CONFIG_PARSE_FAILED"

	// ErrConfigInvalid indicates configuration values failed validation.
	ErrConfigInvalid = "CONFIG_INVALID"

	// ErrConfigInitFailed indicates the config file or directory could not be created.
	ErrConfigInitFailed = "CONFIG_INIT_FAILED"

	// ErrConfigReadFailed indicates the config file exists but is not readable.
	ErrConfigReadFailed = "CONFIG_READ_FAILED"

	// ErrConfigWriteFailed indicates the config file could not be written.
	ErrConfigWriteFailed = "CONFIG_WRITE_FAILED"
)

// -----------------------------------------------------------------------------
// Data Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrDataNotFound indicates no exam results exist for the requested
	// student or class. No document is produced.
	ErrDataNotFound = "DATA_NOT_FOUND"

	// ErrDataEmptyQuery indicates the lookup query was blank.
	ErrDataEmptyQuery = "DATA_EMPTY_QUERY"

	// ErrDataInvalid indicates a dataset row failed validation.
	ErrDataInvalid = "DATA_INVALID"

	// ErrDataLoadFailed indicates the dataset file could not be read or decoded.
	ErrDataLoadFailed = "DATA_LOAD_FAILED"

	// ErrDataUnsupportedFormat indicates the dataset extension is not recognised.
	ErrDataUnsupportedFormat = "DATA_UNSUPPORTED_FORMAT"
)

// -----------------------------------------------------------------------------
// Validation Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrValidationRequired indicates a required field is missing.
	ErrValidationRequired = "VALIDATION_REQUIRED"

	// ErrValidationInvalid indicates a field value is not acceptable.
	ErrValidationInvalid = "VALIDATION_INVALID"
)

// -----------------------------------------------------------------------------
// Feedback Error Codes
// -----------------------------------------------------------------------------
// These never abort report generation; the feedback service recovers
// from all of them with template text.

const (
	// ErrFeedbackNoCredentials indicates no API key is configured.
	ErrFeedbackNoCredentials = "FEEDBACK_NO_CREDENTIALS"

	// ErrFeedbackRequestFailed indicates the completion request could not be sent.
	ErrFeedbackRequestFailed = "FEEDBACK_REQUEST_FAILED"

	// ErrFeedbackAPIError indicates the completion API returned a non-2xx status.
	ErrFeedbackAPIError = "FEEDBACK_API_ERROR"

	// ErrFeedbackTimeout indicates the completion call exceeded its deadline.
	ErrFeedbackTimeout = "FEEDBACK_TIMEOUT"

	// ErrFeedbackMalformed indicates the completion body could not be decoded.
	ErrFeedbackMalformed = "FEEDBACK_MALFORMED"

	// ErrFeedbackEmpty indicates the completion returned no content.
	ErrFeedbackEmpty = "FEEDBACK_EMPTY"
)

// -----------------------------------------------------------------------------
// Render Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrRenderFailed indicates the PDF backend failed to serialize the document.
	ErrRenderFailed = "RENDER_FAILED"

	// ErrRenderFinalized indicates a drawing call after the document was saved.
	ErrRenderFinalized = "RENDER_FINALIZED"

	// ErrRenderUnknownRenderer indicates an unrecognised renderer name.
	ErrRenderUnknownRenderer = "RENDER_UNKNOWN_RENDERER"

	// ErrRenderInvalidChart indicates an unrecognised chart kind.
	ErrRenderInvalidChart = "RENDER_INVALID_CHART"
)

// -----------------------------------------------------------------------------
// Command Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrCommandNotFound indicates the shell command is not recognised.
	ErrCommandNotFound = "COMMAND_NOT_FOUND"

	// ErrCommandMissingArgs indicates required arguments were not provided.
	ErrCommandMissingArgs = "COMMAND_MISSING_ARGS"
)

// -----------------------------------------------------------------------------
// Network Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrNetworkBindFailed indicates the API server could not listen.
	ErrNetworkBindFailed = "NETWORK_BIND_FAILED"
)

// -----------------------------------------------------------------------------
// IO Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrIOWriteFailed indicates the output file could not be written.
	ErrIOWriteFailed = "IO_WRITE_FAILED"

	// ErrIODirCreateFailed indicates the output directory could not be created.
	ErrIODirCreateFailed = "IO_DIR_CREATE_FAILED"

	// ErrIOPermissionDenied indicates insufficient permissions.
	ErrIOPermissionDenied = "IO_PERMISSION_DENIED"

	// ErrIOFileExists indicates the target file exists and overwrite was declined.
	ErrIOFileExists = "IO_FILE_EXISTS"
)

// -----------------------------------------------------------------------------
// Internal Error Codes
// -----------------------------------------------------------------------------

const (
	// ErrInternal indicates an unexpected failure.
	ErrInternal = "INTERNAL_ERROR"

	// ErrInternalPanic indicates a recovered panic.
	ErrInternalPanic = "INTERNAL_PANIC"
)

// AllCodes returns every error code defined by this package, grouped by category.
func AllCodes() map[Category][]string {
	return map[Category][]string{
		CategoryConfig: {
			ErrConfigNotFound, ErrConfigParseFailed, ErrConfigInvalid,
			ErrConfigInitFailed, ErrConfigReadFailed, ErrConfigWriteFailed,
		},
		CategoryData: {
			ErrDataNotFound, ErrDataEmptyQuery, ErrDataInvalid,
			ErrDataLoadFailed, ErrDataUnsupportedFormat,
		},
		CategoryValidation: {ErrValidationRequired, ErrValidationInvalid},
		CategoryFeedback: {
			ErrFeedbackNoCredentials, ErrFeedbackRequestFailed, ErrFeedbackAPIError,
			ErrFeedbackTimeout, ErrFeedbackMalformed, ErrFeedbackEmpty,
		},
		CategoryRender: {
			ErrRenderFailed, ErrRenderFinalized, ErrRenderUnknownRenderer, ErrRenderInvalidChart,
		},
		CategoryCommand: {ErrCommandNotFound, ErrCommandMissingArgs},
		CategoryNetwork: {ErrNetworkBindFailed},
		CategoryIO: {
			ErrIOWriteFailed, ErrIODirCreateFailed, ErrIOPermissionDenied, ErrIOFileExists,
		},
		CategoryInternal: {ErrInternal, ErrInternalPanic},
	}
}
