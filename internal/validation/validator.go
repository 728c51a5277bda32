package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"training-quiz/internal/domain"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const identifierTag = "identifier"

// identifiers are employee and course IDs: alphanumeric plus . _ @ -, at most 64 chars.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9._@-]{1,64}$`)

// Validator checks request structs against their `validate` tags and reports problems
// as domain.ValidationErrors keyed by wire field name.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator creates a new validator instance. It panics if the validator cannot be
// configured, which only happens on a programming error.
func NewValidator() *Validator {
	v := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	trans, found := uni.GetTranslator("en")
	if !found {
		panic("validation: english translator not registered")
	}
	mustRegister("default translations", en_translations.RegisterDefaultTranslations(v, trans))

	// Use the json (or query) tag names in errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "params"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	mustRegister(identifierTag, v.RegisterValidation(identifierTag, func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	}))

	registerFn := func(ut.Translator) error { return nil }
	mustRegister(identifierTag+" translation", v.RegisterTranslation(identifierTag, trans, registerFn,
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " must be 1-64 characters of letters, digits, '.', '_', '@' or '-'"
		}))

	return &Validator{validate: v, translator: trans}
}

func mustRegister(what string, err error) {
	if err != nil {
		panic(fmt.Sprintf("validation: failed to register %s: %v", what, err))
	}
}

// Struct validates s. It returns nil when s is valid.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewInvalidInputError(err.Error())
	}

	result := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		result = append(result, v.toValidationError(fe))
	}
	return result
}

func (v *Validator) toValidationError(fe validator.FieldError) domain.ValidationError {
	code := domain.CodeInvalidFormat
	value := fe.Value()
	switch fe.Tag() {
	case "required":
		code = domain.CodeMissingField
		value = nil
	case "min", "max", "gte", "lte":
		code = domain.CodeOutOfRange
	}
	if reflect.ValueOf(value).Kind() == reflect.Ptr {
		value = nil
	}
	return domain.ValidationError{
		Code:    code,
		Field:   fe.Field(),
		Message: fe.Translate(v.translator),
		Value:   value,
	}
}
