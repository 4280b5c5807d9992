package feedback

import (
	"encoding/json"
	"strings"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
)

// Keys of the single-section forms.
const (
	KeyNarrative = "narrative"
	KeyOpaque    = "feedback"
)

// Parse turns a completion into sections.
//
// Structured variants expect a JSON object. Known keys become sections in a
// fixed order and a missing or blank key gets that section's fallback text.
// A reply that is not a JSON object is kept whole as one "Feedback" section.
// Empty content is an error.
func Parse(v Variant, content string) (*Feedback, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, rerrors.Feedback(rerrors.ErrFeedbackEmpty, "feedback service returned no content")
	}

	fb := &Feedback{Variant: v}
	specs, structured := variantSections[v]
	if !structured {
		fb.Sections = []Section{{Key: KeyNarrative, Title: "Teacher's Feedback", Body: content}}
		return fb, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		fb.Sections = []Section{{Key: KeyOpaque, Title: "Feedback", Body: content}}
		return fb, nil
	}

	for _, spec := range specs {
		body := textValue(obj[spec.key])
		if body == "" {
			body = spec.fallback
		}
		fb.Sections = append(fb.Sections, Section{Key: spec.key, Title: spec.title, Body: body})
	}
	return fb, nil
}

// textValue accepts a JSON string or a list of strings. Anything else is
// treated as missing.
func textValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		var kept []string
		for _, item := range list {
			if item = strings.TrimSpace(item); item != "" {
				kept = append(kept, item)
			}
		}
		return strings.Join(kept, "\n")
	}
	return ""
}
