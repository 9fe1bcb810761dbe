package godos

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/godos/i18n"
)

// structuralSeparator joins the unexpected-field and missing-field messages.
const structuralSeparator = " /// "

// Report is the rejection body produced by ValidateInput. Exactly one of
// Message and FieldErrorMessages is set on failure; both are empty on success.
type Report struct {
	Message            string            `json:"message,omitempty"`
	FieldErrorMessages map[string]string `json:"field_error_messages,omitempty"`
}

// Empty reports whether the payload was accepted.
func (r Report) Empty() bool { return r.Message == "" && len(r.FieldErrorMessages) == 0 }

// InputOption configures ValidateInput.
type InputOption func(*inputConfig)

type inputConfig struct {
	// keyOrders maps a JSON pointer ("/" for the payload itself) to the
	// document order of that object's keys.
	keyOrders map[string][]string
}

func (c *inputConfig) setOrder(pointer string, keys []string) {
	if c.keyOrders == nil {
		c.keyOrders = make(map[string][]string)
	}
	c.keyOrders[pointer] = keys
}

// WithKeyOrder supplies the document order of the payload keys so that
// unexpected fields are reported in the order the client sent them.
func WithKeyOrder(keys []string) InputOption {
	return func(c *inputConfig) { c.setOrder("/", keys) }
}

// WithKeyOrders supplies key orders for the payload and nested objects,
// keyed by JSON pointer ("/", "/address", "/items/0").
func WithKeyOrders(orders map[string][]string) InputOption {
	return func(c *inputConfig) {
		for ptr, keys := range orders {
			c.setOrder(ptr, keys)
		}
	}
}

// ValidateInput checks payload against schema. It never fails: the result is
// http.StatusOK with an empty Report, or http.StatusBadRequest with the
// reasons the payload was rejected.
//
// Structural problems (unexpected or missing fields) are reported first as a
// single message and suppress per-field checks.
func ValidateInput(payload map[string]any, schema Schema, opts ...InputOption) (int, Report) {
	var cfg inputConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if msg := structuralMessage(payload, schema, cfg.keyOrders["/"]); msg != "" {
		return http.StatusBadRequest, Report{Message: msg}
	}
	if errs := cfg.fieldErrors(nil, payload, schema); len(errs) > 0 {
		return http.StatusBadRequest, Report{FieldErrorMessages: errs}
	}
	return http.StatusOK, Report{}
}

func structuralMessage(payload map[string]any, schema Schema, order []string) string {
	var parts []string

	unexpected := unexpectedKeys(payload, schema, order)
	switch len(unexpected) {
	case 0:
	case 1:
		parts = append(parts, i18n.T(i18n.UnexpectedField, map[string]string{"name": unexpected[0]}))
	default:
		parts = append(parts, i18n.T(i18n.UnexpectedFields, map[string]string{"names": reprNames(unexpected)}))
	}

	var missing []string
	for _, e := range schema.entries {
		if _, ok := payload[e.Name]; !ok && slotRequired(e.Slot) {
			missing = append(missing, e.Name)
		}
	}
	switch len(missing) {
	case 0:
	case 1:
		parts = append(parts, i18n.T(i18n.MissingField, map[string]string{"name": missing[0]}))
	default:
		parts = append(parts, i18n.T(i18n.MissingFields, map[string]string{"names": reprNames(missing)}))
	}

	return strings.Join(parts, structuralSeparator)
}

// unexpectedKeys lists payload keys the schema does not declare. Keys named in
// order come first in that order; the rest follow lexically.
func unexpectedKeys(payload map[string]any, schema Schema, order []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(order))
	for _, k := range order {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := payload[k]; ok && !schema.Has(k) {
			out = append(out, k)
		}
	}
	var rest []string
	for k := range payload {
		if _, ok := seen[k]; ok || schema.Has(k) {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// fieldErrors type-checks and validates every present field, in schema order.
func (c *inputConfig) fieldErrors(at schemaPath, payload map[string]any, schema Schema) map[string]string {
	var errs map[string]string
	for _, e := range schema.entries {
		v, ok := payload[e.Name]
		if !ok {
			continue
		}
		if reason := c.checkSlot(at.child(e.Name), e.Name, e.Slot, v); reason != "" {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[e.Name] = reason
		}
	}
	return errs
}

// checkSlot returns the rejection reason for v, or "" when it is acceptable.
// at locates v in the payload.
func (c *inputConfig) checkSlot(at schemaPath, name string, s Slot, v any) string {
	switch x := s.(type) {
	case *Choice:
		return c.checkChoice(at, name, x, v)
	case *Prop:
		return c.checkProp(at, name, x, v)
	}
	return ""
}

func (c *inputConfig) checkChoice(at schemaPath, name string, ch *Choice, v any) string {
	reasons := make([]string, 0, len(ch.alts))
	for _, alt := range ch.alts {
		r := c.checkProp(at, name, alt, v)
		if r == "" {
			return ""
		}
		reasons = append(reasons, r)
	}
	return noMatchMessage(name, v, reasons)
}

func (c *inputConfig) checkProp(at schemaPath, name string, p *Prop, v any) string {
	if v == nil {
		if p.nullable {
			return ""
		}
		return nonNullableMessage(name)
	}
	if !typeMatches(p.kind, v, inbound) {
		return wrongTypeMessage(name, v, p.kind)
	}
	if msg := runValidators(p, v); msg != "" {
		return msg
	}
	switch p.kind {
	case KindObject:
		obj := v.(map[string]any)
		inner := structuralMessage(obj, p.structure, c.keyOrders[at.String()])
		if inner == "" {
			errs := c.fieldErrors(at, obj, p.structure)
			reasons := make([]string, 0, len(errs))
			for _, n := range p.structure.Names() {
				if r, ok := errs[n]; ok {
					reasons = append(reasons, r)
				}
			}
			inner = strings.Join(reasons, ", ")
		}
		if inner != "" {
			return i18n.T(i18n.InvalidObject, map[string]string{"field": name, "reason": inner})
		}
	case KindArray:
		items, _ := asSlice(v)
		for i, it := range items {
			if r := c.checkProp(at.child(strconv.Itoa(i)), name, p.items, it); r != "" {
				return i18n.T(i18n.InvalidItem, map[string]string{
					"index":  strconv.Itoa(i),
					"field":  name,
					"reason": r,
				})
			}
		}
	}
	return ""
}

func wrongTypeMessage(name string, v any, k Kind) string {
	return i18n.T(i18n.WrongType, map[string]string{
		"value":    Repr(v),
		"field":    name,
		"expected": k.String(),
	})
}

func nonNullableMessage(name string) string {
	return i18n.T(i18n.NonNullable, map[string]string{"field": name})
}

func noMatchMessage(name string, v any, reasons []string) string {
	return i18n.T(i18n.NoMatchingAlt, map[string]string{
		"value":   Repr(v),
		"field":   name,
		"reasons": strings.Join(reasons, ", "),
	})
}
