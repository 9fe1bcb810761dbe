package godos

import (
	"strconv"
	"strings"
)

// Lint walks schema and reports every validator bound to a kind it does not
// support. Such a field can never pass validation, so the finding is a schema
// authoring error rather than a payload error.
func Lint(schema Schema) Issues {
	return lintSchema(nil, schema, nil)
}

// LintOutput lints every status of out. Paths start with the status code.
func LintOutput(out OutputSchema) Issues {
	var iss Issues
	for _, code := range out.Statuses() {
		iss = lintSchema(schemaPath{strconv.Itoa(code)}, out[code], iss)
	}
	return iss
}

// schemaPath is a JSON Pointer into a schema tree, one escaped token per element.
type schemaPath []string

func (p schemaPath) child(token string) schemaPath {
	token = strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
	return append(p[:len(p):len(p)], token)
}

func (p schemaPath) String() string {
	if len(p) == 0 {
		return "/"
	}
	return "/" + strings.Join(p, "/")
}

func lintSchema(at schemaPath, schema Schema, iss Issues) Issues {
	for _, e := range schema.entries {
		iss = lintSlot(at.child(e.Name), e.Slot, iss)
	}
	return iss
}

func lintSlot(at schemaPath, s Slot, iss Issues) Issues {
	switch x := s.(type) {
	case *Choice:
		for i, alt := range x.alts {
			iss = lintProp(at.child(strconv.Itoa(i)), alt, iss)
		}
	case *Prop:
		iss = lintProp(at, x, iss)
	}
	return iss
}

func lintProp(at schemaPath, p *Prop, iss Issues) Issues {
	for _, v := range p.validators {
		if v.Supports(p.kind) {
			continue
		}
		iss = AppendIssues(iss, Issue{
			Path:    at.String(),
			Code:    CodeUnsupportedValidator,
			Message: UnsupportedMessage(v, p.kind),
			Params:  map[string]any{"validator": v.Name(), "kind": p.kind.String()},
		})
	}
	switch p.kind {
	case KindObject:
		iss = lintSchema(at, p.structure, iss)
	case KindArray:
		iss = lintProp(at.child("items"), p.items, iss)
	}
	return iss
}
