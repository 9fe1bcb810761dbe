package godos

import (
	"strconv"
	"time"

	"github.com/reoring/godos/codec"
	"github.com/reoring/godos/i18n"
)

// CreateOutput masks raw down to the fields declared for status in out.
//
// The schema is an allow-list: undeclared keys are dropped at every depth.
// Declared fields are type-checked and validated; a failure means the handler
// broke its own contract and is reported as a *ValidationError.
func CreateOutput(status int, raw map[string]any, out OutputSchema) (int, map[string]any, error) {
	schema, ok := out[status]
	if !ok {
		return status, nil, &ValidationError{
			Code:    CodeUndefinedStatus,
			Message: i18n.T(i18n.UndefinedStatus, map[string]string{"status": strconv.Itoa(status)}),
		}
	}
	masked, err := maskObject(raw, schema)
	if err != nil {
		return status, nil, err
	}
	return status, masked, nil
}

func maskObject(raw map[string]any, schema Schema) (map[string]any, error) {
	out := make(map[string]any, len(schema.entries))
	for _, e := range schema.entries {
		v, present := raw[e.Name]
		if !present {
			if slotRequired(e.Slot) {
				return nil, &ValidationError{
					Code:    CodeRequired,
					Field:   e.Name,
					Message: i18n.T(i18n.RequiredNotFound, map[string]string{"field": e.Name}),
				}
			}
			continue
		}
		mv, err := maskSlot(e.Name, e.Slot, v)
		if err != nil {
			return nil, err
		}
		out[e.Name] = mv
	}
	return out, nil
}

func maskSlot(name string, s Slot, v any) (any, error) {
	switch x := s.(type) {
	case *Choice:
		return maskChoice(name, x, v)
	case *Prop:
		return maskProp(name, x, v)
	}
	return nil, nil
}

func maskChoice(name string, c *Choice, v any) (any, error) {
	reasons := make([]string, 0, len(c.alts))
	for _, alt := range c.alts {
		mv, err := maskProp(name, alt, v)
		if err == nil {
			return mv, nil
		}
		reasons = append(reasons, err.Error())
	}
	return nil, &ValidationError{
		Code:    CodeNoMatchingAlt,
		Field:   name,
		Message: noMatchMessage(name, v, reasons),
	}
}

func maskProp(name string, p *Prop, v any) (any, error) {
	if v == nil {
		if p.nullable {
			return nil, nil
		}
		return nil, &ValidationError{Code: CodeNonNullable, Field: name, Message: nonNullableMessage(name)}
	}
	if !typeMatches(p.kind, v, outbound) {
		return nil, &ValidationError{Code: CodeInvalidType, Field: name, Message: wrongTypeMessage(name, v, p.kind)}
	}
	if msg := runValidators(p, v); msg != "" {
		return nil, &ValidationError{Code: CodeInvalidValue, Field: name, Message: msg}
	}
	switch p.kind {
	case KindObject:
		return maskObject(v.(map[string]any), p.structure)
	case KindArray:
		items, _ := asSlice(v)
		out := make([]any, len(items))
		for i, it := range items {
			mv, err := maskProp(name, p.items, it)
			if err != nil {
				return nil, err
			}
			out[i] = mv
		}
		return out, nil
	case KindDateTime:
		if t, ok := v.(time.Time); ok {
			return codec.FormatDateTime(t), nil
		}
	}
	return v, nil
}
