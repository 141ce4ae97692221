// Package validation checks submitted contact forms before they reach the
// store.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/contactbook/backend/internal/i18n"
)

// idMobilePhone matches mobile numbers of the Indonesian numbering plan:
// country prefix +62, 62 or a trunk 0, an operator prefix 8x, then the
// subscriber number.
var idMobilePhone = regexp.MustCompile(`^(\+?62|0)8(1[1-9]|2[1238]|3[1238]|5[12356789]|7[78]|9[56789]|8[1-9])[\s\d]{5,11}$`)

// ContactForm is a contact as submitted by the add and edit forms.
type ContactForm struct {
	Nama  string `form:"nama" validate:"required"`
	Email string `form:"email" validate:"email,tld"`
	NoHP  string `form:"nohp" validate:"idphone"`
}

// FieldError is a single rule violation, ready for display.
type FieldError struct {
	Field   string
	Message string
}

var fieldMessages = map[string]string{
	"nama":  i18n.MsgNamaRequired,
	"email": i18n.MsgEmailInvalid,
	"nohp":  i18n.MsgNoHPInvalid,
}

type Validator struct {
	validate *validator.Validate
	tr       *i18n.Translator
}

// New returns a Validator producing messages through tr.
func New(tr *i18n.Translator) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := v.RegisterValidation("idphone", func(fl validator.FieldLevel) bool {
		return IsIndonesianMobile(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("tld", func(fl validator.FieldLevel) bool {
		return HasTopLevelDomain(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: v, tr: tr}
}

// IsIndonesianMobile reports whether s is a valid Indonesian mobile number.
func IsIndonesianMobile(s string) bool {
	return idMobilePhone.MatchString(s)
}

// HasTopLevelDomain reports whether the domain of email ends in a top-level
// domain of at least two letters, or a punycode ("xn--") label.
func HasTopLevelDomain(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	if dot < 0 {
		return false
	}
	tld := strings.ToLower(domain[dot+1:])
	if len(tld) < 2 {
		return false
	}
	if strings.HasPrefix(tld, "xn--") {
		return len(tld) > 4
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Contact validates f and returns the violations in field order.
// A nil result means the form is valid.
func (v *Validator) Contact(f ContactForm) []FieldError {
	err := v.validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: v.tr.T(fieldMessages[fe.Field()]),
		})
	}
	return out
}
