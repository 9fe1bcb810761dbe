package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/reoring/godos"
	"github.com/reoring/godos/i18n"
)

const ssnTag = "ssn_strict"

// validate is shared; *validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(ssnTag, func(fl validator.FieldLevel) bool {
		return validSSN(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Email requires an RFC 5322 address.
func Email() godos.Validator {
	return tagRule("Email", "email", i18n.Email)
}

// URL requires an absolute URL.
func URL() godos.Validator {
	return tagRule("URL", "url", i18n.URL)
}

// SocialSecurityNumber requires a plausible US social security number, with
// or without dashes.
func SocialSecurityNumber() godos.Validator {
	return tagRule("SocialSecurityNumber", ssnTag, i18n.SocialSecurity)
}

// UUID requires a canonical or URN-form UUID.
func UUID() godos.Validator {
	return rule{name: "UUID", kinds: stringKinds, check: func(v any) error {
		s := asString(v)
		if _, err := uuid.Parse(s); err != nil {
			return fail(i18n.UUID, map[string]string{"value": s})
		}
		return nil
	}}
}

func tagRule(name, tag, code string) godos.Validator {
	return rule{name: name, kinds: stringKinds, check: func(v any) error {
		s := asString(v)
		if err := validate.Var(s, "required,"+tag); err != nil {
			return fail(code, map[string]string{"value": s})
		}
		return nil
	}}
}

// publicised numbers that were never valid for an individual.
var invalidSSNs = map[string]struct{}{
	"078051120": {},
	"219099999": {},
	"457555462": {},
}

func validSSN(s string) bool {
	digits := strings.ReplaceAll(s, "-", "")
	if len(digits) != 9 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	if _, bad := invalidSSNs[digits]; bad {
		return false
	}
	area, group, serial := digits[:3], digits[3:5], digits[5:]
	switch {
	case area == "000", area == "666", area[0] == '9':
		return false
	case group == "00", serial == "0000":
		return false
	}
	return true
}
