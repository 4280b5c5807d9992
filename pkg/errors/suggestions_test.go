package errors

import (
	"reflect"
	"testing"
)

func TestRegistry_PriorityOrder(t *testing.T) {
	r := NewRegistry().
		Register("CODE", "low").
		RegisterWithPriority("CODE", "high", 5).
		Register("CODE", "low2")

	got := r.Get("CODE", nil)
	want := []string{"high", "low", "low2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %v, want %v", got, want)
	}
}

func TestRegistry_Conditions(t *testing.T) {
	r := NewRegistry().
		RegisterWithCondition("CODE", "linux only", map[string]string{ContextOS: OSLinux}).
		Register("CODE", "always")

	tests := []struct {
		name string
		ctx  map[string]string
		want []string
	}{
		{"linux", map[string]string{ContextOS: OSLinux}, []string{"linux only", "always"}},
		{"darwin", map[string]string{ContextOS: OSDarwin}, []string{"always"}},
		{"no context", nil, []string{"always"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Get("CODE", tt.ctx); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry_UnknownCode(t *testing.T) {
	if got := NewRegistry().Get("NOPE", nil); got != nil {
		t.Errorf("expected nil for unknown code, got %v", got)
	}
}

func TestDefaultRegistry_CoversUserFacingCodes(t *testing.T) {
	codes := []string{
		ErrConfigNotFound,
		ErrDataEmptyQuery,
		ErrDataUnsupportedFormat,
		ErrFeedbackNoCredentials,
		ErrRenderUnknownRenderer,
		ErrCommandNotFound,
	}
	for _, code := range codes {
		if !DefaultRegistry().HasSuggestions(code) {
			t.Errorf("expected built-in suggestions for %s", code)
		}
	}
}

func TestMergeContext_LaterWins(t *testing.T) {
	got := MergeContext(map[string]string{"a": "1", "b": "1"}, map[string]string{"b": "2"})
	if got["a"] != "1" || got["b"] != "2" {
		t.Errorf("MergeContext() = %v", got)
	}
}

func TestFormatSuggestionList(t *testing.T) {
	if got := FormatSuggestionList(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := FormatSuggestionList([]string{"a", "b"}); got != "→ a\n→ b" {
		t.Errorf("FormatSuggestionList() = %q", got)
	}
}
