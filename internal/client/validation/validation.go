// Package validation runs the local precondition checks that must pass
// before a request is sent. Rules are declared with `validate` struct tags;
// failures carry English messages keyed by JSON field names.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	mu       sync.RWMutex
	messages = map[string]string{}

	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "{0} is required"
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	registerTranslation(notBlankTag, notBlankText)
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// RegisterMessage overrides the message of one rule on one field.
// namespace is "<Type>.<json field>", e.g. "RegisterInput.password".
// Call it from init.
func RegisterMessage(namespace, tag, text string) {
	mu.Lock()
	defer mu.Unlock()
	messages[namespace+"."+tag] = text
}

func message(namespace, tag string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, ok := messages[namespace+"."+tag]
	return m, ok
}

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Error is returned when local checks fail. Its text is the first
// failure's message, which is what the user sees.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	return e.Fields[0].Message
}

// Has reports whether field failed any rule.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// New returns an Error for a single field with a fixed message.
func New(field, msg string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: msg}}}
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return convert("", validate.Struct(v))
}

// Var validates a single value. field names the value in messages.
func Var(field string, v any, tag string) error {
	return convert(field, validate.Var(v, tag))
}

func convert(field string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		name := fe.Field()
		msg := fe.Translate(translator)
		if name == "" {
			name = field
			msg = strings.TrimSpace(field + " " + strings.TrimSpace(msg))
		}
		if m, ok := message(fe.Namespace(), fe.Tag()); ok {
			msg = m
		}
		out.Fields = append(out.Fields, FieldError{Field: name, Tag: fe.Tag(), Message: msg})
	}
	return out
}
