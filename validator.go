package godos

import (
	"strings"

	"github.com/reoring/godos/i18n"
)

// Validator is a stateless check bound to the kinds it understands.
//
// Validate receives the raw field value after the type check has passed; it
// returns nil when the value is acceptable and an error carrying the
// user-facing message otherwise.
type Validator interface {
	Name() string
	Supports(k Kind) bool
	Validate(v any) error
}

// UnsupportedMessage is the message produced when v is bound to a kind it
// does not support.
func UnsupportedMessage(v Validator, k Kind) string {
	return i18n.T(i18n.UnsupportedValidator, map[string]string{
		"validator": v.Name(),
		"kind":      k.String(),
	})
}

// runValidators applies every validator of p to value and joins the failures.
func runValidators(p *Prop, value any) string {
	if len(p.validators) == 0 {
		return ""
	}
	var msgs []string
	for _, v := range p.validators {
		if !v.Supports(p.kind) {
			msgs = append(msgs, UnsupportedMessage(v, p.kind))
			continue
		}
		if err := v.Validate(value); err != nil {
			msgs = append(msgs, err.Error())
		}
	}
	return strings.Join(msgs, ", ")
}
