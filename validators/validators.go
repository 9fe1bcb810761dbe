// Package validators provides the reusable checks that can be attached to a
// godos.Prop with godos.Validators.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reoring/godos"
	"github.com/reoring/godos/i18n"
)

// rule is the shared implementation behind every validator in this package.
type rule struct {
	name  string
	kinds []godos.Kind
	check func(v any) error
}

func (r rule) Name() string { return r.name }

func (r rule) Supports(k godos.Kind) bool {
	for _, s := range r.kinds {
		if s == k {
			return true
		}
	}
	return false
}

func (r rule) Validate(v any) error { return r.check(v) }

var (
	stringKinds  = []godos.Kind{godos.KindString}
	numericKinds = []godos.Kind{godos.KindNumber, godos.KindNumeric, godos.KindInteger}
)

func fail(code string, data map[string]string) error {
	return errors.New(i18n.T(code, data))
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ExactLength requires a string of exactly n characters.
func ExactLength(n int) godos.Validator {
	return rule{name: "ExactLength", kinds: stringKinds, check: func(v any) error {
		s := asString(v)
		if l := utf8.RuneCountInString(s); l != n {
			return fail(i18n.ExactLength, map[string]string{
				"value":    s,
				"length":   strconv.Itoa(l),
				"expected": strconv.Itoa(n),
			})
		}
		return nil
	}}
}

// MinLength requires a string of at least n characters.
func MinLength(n int) godos.Validator {
	return rule{name: "MinLength", kinds: stringKinds, check: func(v any) error {
		s := asString(v)
		if l := utf8.RuneCountInString(s); l < n {
			return fail(i18n.TooShort, map[string]string{
				"value":  s,
				"length": strconv.Itoa(l),
				"min":    strconv.Itoa(n),
			})
		}
		return nil
	}}
}

// MaxLength requires a string of at most n characters.
func MaxLength(n int) godos.Validator {
	return rule{name: "MaxLength", kinds: stringKinds, check: func(v any) error {
		s := asString(v)
		if l := utf8.RuneCountInString(s); l > n {
			return fail(i18n.TooLong, map[string]string{
				"value":  s,
				"length": strconv.Itoa(l),
				"max":    strconv.Itoa(n),
			})
		}
		return nil
	}}
}

// Pattern requires a string matching expr. It panics if expr does not compile.
func Pattern(expr string) godos.Validator {
	re := regexp.MustCompile(expr)
	return rule{name: "Pattern", kinds: stringKinds, check: func(v any) error {
		s := asString(v)
		if !re.MatchString(s) {
			return fail(i18n.Pattern, map[string]string{"value": s, "pattern": expr})
		}
		return nil
	}}
}

// Range requires a number between lo and hi inclusive. Numbers carried in
// strings are read after removing "," thousands separators.
func Range(lo, hi float64) godos.Validator {
	return rule{name: "Range", kinds: numericKinds, check: func(v any) error {
		f, ok := toFloat(v)
		if !ok || f < lo || f > hi {
			return fail(i18n.OutOfRange, map[string]string{
				"value": godos.Repr(v),
				"min":   strconv.FormatFloat(lo, 'f', -1, 64),
				"max":   strconv.FormatFloat(hi, 'f', -1, 64),
			})
		}
		return nil
	}}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(x, ",", ""), 64)
		return f, err == nil
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case interface{ Float64() (float64, error) }:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}
