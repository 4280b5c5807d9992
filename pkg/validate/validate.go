// Package validate wires go-playground/validator with English translations
// and the custom tags used by result records and configuration.
package validate

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	studentIDTag   = "studentid"
	studentIDText  = "{0} must look like STU001"
	studentIDRegex = regexp.MustCompile(`(?i)^STU\d+$`)

	hexColorTag  = "hexcolor6"
	hexColorText = "{0} must be a #RRGGBB color"
	hexColorRe   = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)
)

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Report field names the way they appear in data and config files.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"yaml", "json"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = Validate.RegisterValidation(studentIDTag, func(fl validator.FieldLevel) bool {
		return studentIDRegex.MatchString(fl.Field().String())
	})
	RegisterCustomTranslation(studentIDTag, studentIDText)

	_ = Validate.RegisterValidation(hexColorTag, func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})
	RegisterCustomTranslation(hexColorTag, hexColorText)
}

// RegisterCustomTranslation registers the English message for a custom tag.
func RegisterCustomTranslation(tag, text string) {
	_ = Validate.RegisterTranslation(
		tag, Translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates v and returns translated messages sorted by field,
// or nil when v is valid.
func Struct(v interface{}) []string {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	translated := verrs.Translate(Translator)
	keys := make([]string, 0, len(translated))
	for k := range translated {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, translated[k])
	}
	return msgs
}

// IsStudentID reports whether s has the STU<digits> shape, ignoring case.
func IsStudentID(s string) bool {
	return studentIDRegex.MatchString(strings.TrimSpace(s))
}
