package errors

import (
	"runtime"
	"sort"
	"strings"
)

// Context keys used to select conditional suggestions.
const (
	// ContextOS is the operating system (e.g., "linux", "darwin", "windows")
	ContextOS = "os"

	// ContextFormat is the dataset file format (e.g., "yaml", "xlsx")
	ContextFormat = "format"

	// ContextQuery is the lookup kind ("student" or "class")
	ContextQuery = "query"
)

// OS values for platform-specific suggestions.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// Suggestion represents a remediation suggestion with optional conditions.
type Suggestion struct {
	// Text is the suggestion message displayed to the user.
	Text string

	// Conditions must all match the error context. Empty matches everything.
	Conditions map[string]string

	// Priority orders suggestions; higher is shown first.
	Priority int
}

// Matches returns true if this suggestion's conditions match the given context.
func (s *Suggestion) Matches(ctx map[string]string) bool {
	for key, value := range s.Conditions {
		if ctx[key] != value {
			return false
		}
	}
	return true
}

// Registry maps error codes to their remediation suggestions.
type Registry struct {
	suggestions map[string][]Suggestion
}

// NewRegistry creates a new suggestion registry.
func NewRegistry() *Registry {
	return &Registry{
		suggestions: make(map[string][]Suggestion),
	}
}

// Register adds a suggestion for an error code.
func (r *Registry) Register(code, text string) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text})
}

// RegisterWithCondition adds a suggestion that only applies when the
// error context matches conditions.
func (r *Registry) RegisterWithCondition(code, text string, conditions map[string]string) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text, Conditions: conditions})
}

// RegisterWithPriority adds a suggestion with explicit priority.
func (r *Registry) RegisterWithPriority(code, text string, priority int) *Registry {
	return r.RegisterSuggestion(code, Suggestion{Text: text, Priority: priority})
}

// RegisterSuggestion adds a complete Suggestion struct.
func (r *Registry) RegisterSuggestion(code string, suggestion Suggestion) *Registry {
	r.suggestions[code] = append(r.suggestions[code], suggestion)
	return r
}

// Get returns the suggestions for code that match ctx, highest priority first.
func (r *Registry) Get(code string, ctx map[string]string) []string {
	var matching []Suggestion
	for _, s := range r.suggestions[code] {
		if s.Matches(ctx) {
			matching = append(matching, s)
		}
	}
	if len(matching) == 0 {
		return nil
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Priority > matching[j].Priority
	})

	result := make([]string, len(matching))
	for i, s := range matching {
		result[i] = s.Text
	}
	return result
}

// HasSuggestions returns true if any suggestions exist for the error code.
func (r *Registry) HasSuggestions(code string) bool {
	return len(r.suggestions[code]) > 0
}

// Codes returns all error codes that have registered suggestions, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.suggestions))
	for code := range r.suggestions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// DefaultContext returns a context map with current platform information.
func DefaultContext() map[string]string {
	return map[string]string{
		ContextOS: runtime.GOOS,
	}
}

// MergeContext combines multiple context maps into one.
// Later maps override earlier ones for duplicate keys.
func MergeContext(contexts ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, ctx := range contexts {
		for k, v := range ctx {
			result[k] = v
		}
	}
	return result
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the global registry with built-in suggestions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// GetSuggestions returns suggestions for an error code using the default registry.
func GetSuggestions(code string) []string {
	return defaultRegistry.Get(code, DefaultContext())
}

func init() {
	registerConfigSuggestions()
	registerDataSuggestions()
	registerFeedbackSuggestions()
	registerRenderSuggestions()
	registerIOSuggestions()
	registerCommandSuggestions()
}

func registerConfigSuggestions() {
	defaultRegistry.
		RegisterWithPriority(ErrConfigNotFound, "Run 'insighted init' to create a default configuration", 10).
		Register(ErrConfigNotFound, "Pass an explicit path with --config").
		Register(ErrConfigParseFailed, "Check the YAML syntax (indentation must use spaces)").
		Register(ErrConfigParseFailed, "Regenerate a clean file with 'insighted init --force'").
		Register(ErrConfigInvalid, "Compare the file against 'insighted init' output for allowed values").
		RegisterWithCondition(ErrConfigWriteFailed, "Check permissions on ~/.config/insighted",
			map[string]string{ContextOS: OSLinux}).
		RegisterWithCondition(ErrConfigWriteFailed, "Check permissions on ~/Library/Application Support",
			map[string]string{ContextOS: OSDarwin})
}

func registerDataSuggestions() {
	defaultRegistry.
		RegisterWithCondition(ErrDataNotFound, "Student IDs look like STU001; check the ID for typos",
			map[string]string{ContextQuery: "student"}).
		RegisterWithCondition(ErrDataNotFound, "Run 'insighted students' to list known classes",
			map[string]string{ContextQuery: "class"}).
		Register(ErrDataEmptyQuery, "Enter a student ID (STU001) or a class name (10th)").
		Register(ErrDataInvalid, "Marks must be between 0 and the exam's total marks").
		Register(ErrDataLoadFailed, "Set data.path in the config to an existing results file").
		RegisterWithCondition(ErrDataLoadFailed, "XLSX workbooks need a sheet named 'Results'",
			map[string]string{ContextFormat: "xlsx"}).
		Register(ErrDataUnsupportedFormat, "Supported formats are .yaml, .yml, .json, .csv and .xlsx")
}

func registerFeedbackSuggestions() {
	defaultRegistry.
		Register(ErrFeedbackNoCredentials, "Export OPENAI_API_KEY or add it to a .env file").
		Register(ErrFeedbackNoCredentials, "Set feedback.enabled: false to skip AI feedback").
		Register(ErrFeedbackTimeout, "Increase feedback.timeout in the config").
		Register(ErrFeedbackAPIError, "Verify feedback.model and feedback.base_url")
}

func registerRenderSuggestions() {
	defaultRegistry.
		Register(ErrRenderUnknownRenderer, "Use report.renderer: native or fpdf").
		Register(ErrRenderInvalidChart, "Use report.chart: bar, radar or line")
}

func registerIOSuggestions() {
	defaultRegistry.
		Register(ErrIODirCreateFailed, "Set report.output_dir to a writable directory").
		Register(ErrIOWriteFailed, "Check free disk space and directory permissions").
		RegisterWithCondition(ErrIOPermissionDenied, "Check ownership with 'ls -l'",
			map[string]string{ContextOS: OSLinux}).
		Register(ErrIOFileExists, "Delete the existing report or answer 'y' to overwrite")
}

func registerCommandSuggestions() {
	defaultRegistry.
		Register(ErrCommandNotFound, "Type 'help' to list commands").
		Register(ErrCommandMissingArgs, "Type 'help' for usage")
}

// AttachSuggestions adds matching registry suggestions to err.
func AttachSuggestions(err *ReportError) *ReportError {
	if err == nil {
		return nil
	}
	ctx := MergeContext(DefaultContext(), err.Context)
	if suggestions := defaultRegistry.Get(err.Code, ctx); len(suggestions) > 0 {
		err.Suggestions = append(err.Suggestions, suggestions...)
	}
	return err
}

// FormatSuggestionList formats a list of suggestions for display.
func FormatSuggestionList(suggestions []string) string {
	var sb strings.Builder
	for i, s := range suggestions {
		sb.WriteString("→ ")
		sb.WriteString(s)
		if i < len(suggestions)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
