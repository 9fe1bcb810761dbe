package openapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reoring/godos"
	"github.com/reoring/godos/internal/ordered"
)

// Contract is an endpoint's input and output schemas.
type Contract interface {
	InputSchema() godos.Schema
	OutputSchema() godos.OutputSchema
}

// ContractOf adapts a pair of schemas to Contract.
func ContractOf(in godos.Schema, out godos.OutputSchema) Contract {
	return staticContract{in: in, out: out}
}

type staticContract struct {
	in  godos.Schema
	out godos.OutputSchema
}

func (c staticContract) InputSchema() godos.Schema        { return c.in }
func (c staticContract) OutputSchema() godos.OutputSchema { return c.out }

var (
	ErrUnsupportedMethod = errors.New("openapi: unsupported http method")
	ErrNilContract       = errors.New("openapi: nil contract")
)

var methods = map[string]struct{}{
	"get": {}, "put": {}, "post": {}, "delete": {},
	"options": {}, "head": {}, "patch": {}, "trace": {},
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	methodInNames bool
	plainItems    bool
}

// WithoutMethodInNames drops the "_<method>" segment from component names,
// so "/fake_plan/get" yields "fake_plan_get_input" for every method.
func WithoutMethodInNames() BuildOption {
	return func(c *buildConfig) { c.methodInNames = false }
}

// WithPlainItemTypes documents scalar array elements with their own type
// ({"type": "string"}) instead of the pluralised form ({"type": "strings"}).
// Documents meant for strict OpenAPI tooling need it.
func WithPlainItemTypes() BuildOption {
	return func(c *buildConfig) { c.plainItems = true }
}

// Fragment is the documentation increment of one endpoint. It is built
// without touching a Document and merged later with (*Document).Merge.
type Fragment struct {
	path          string
	method        string
	schemas       *ordered.Map[*Component]
	requestBodies *ordered.Map[*RequestBody]
	operation     *Operation
}

func (f *Fragment) Path() string   { return f.path }
func (f *Fragment) Method() string { return f.method }

// SchemaNames lists the generated component names in registration order:
// children before parents, input before outputs, outputs by ascending status.
func (f *Fragment) SchemaNames() []string { return f.schemas.Keys() }

// Schema returns a generated component.
func (f *Fragment) Schema(name string) (*Component, bool) { return f.schemas.Get(name) }

// RequestBodyNames lists the generated request bodies.
func (f *Fragment) RequestBodyNames() []string { return f.requestBodies.Keys() }

// Operation returns the generated path operation.
func (f *Fragment) Operation() *Operation { return f.operation }

// Build derives the components, request body and operation documenting the
// endpoint at path and method.
func Build(c Contract, path, method string, opts ...BuildOption) (*Fragment, error) {
	if c == nil {
		return nil, ErrNilContract
	}
	cfg := buildConfig{methodInNames: true}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	method = strings.ToLower(method)
	if _, ok := methods[method]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	base := componentBase(path)
	if cfg.methodInNames {
		base += "_" + method
	}

	b := &builder{cfg: cfg, schemas: ordered.New[*Component]()}

	inputName := base + "_input"
	b.component(inputName, c.InputSchema())
	bodies := ordered.New[*RequestBody]()
	bodies.Set(inputName, &RequestBody{Content: jsonContent(schemaRef(inputName)), Required: true})

	responses := ordered.New[*Response]()
	out := c.OutputSchema()
	for _, code := range out.Statuses() {
		name := base + "_" + strconv.Itoa(code) + "_output"
		b.component(name, out[code])
		responses.Set(strconv.Itoa(code), &Response{
			Description: statusDescription(code),
			Content:     jsonContent(schemaRef(name)),
		})
	}

	if b.err != nil {
		return nil, b.err
	}

	return &Fragment{
		path:          path,
		method:        method,
		schemas:       b.schemas,
		requestBodies: bodies,
		operation: &Operation{
			Responses:   responses,
			OperationID: path,
			Tags:        []string{TagName(firstSegment(path))},
			RequestBody: &Ref{Ref: requestBodyRef(inputName)},
		},
	}, nil
}

type builder struct {
	cfg     buildConfig
	schemas *ordered.Map[*Component]
	err     error
}

// component registers name after every component nested below it.
func (b *builder) component(name string, s godos.Schema) {
	comp := &Component{Properties: ordered.New[*Property](), Type: "object"}
	for _, e := range s.Entries() {
		comp.Properties.Set(e.Name, b.slot(name+"_"+e.Name, e.Slot))
		if p, ok := e.Slot.(*godos.Prop); ok && p.IsRequired() {
			comp.Required = append(comp.Required, e.Name)
		}
	}
	if b.schemas.Has(name) {
		if b.err == nil {
			b.err = fmt.Errorf("%w: schema %s", ErrDuplicateComponent, name)
		}
		return
	}
	b.schemas.Set(name, comp)
}

func (b *builder) slot(name string, s godos.Slot) *Property {
	switch x := s.(type) {
	case *godos.Choice:
		return b.choice(name, x)
	case *godos.Prop:
		return b.prop(name, x)
	}
	return &Property{}
}

// choice numbers object and array alternatives separately.
func (b *builder) choice(name string, c *godos.Choice) *Property {
	var objects, arrays int
	alts := c.Alternatives()
	out := &Property{OneOf: make([]*Property, 0, len(alts))}
	for _, alt := range alts {
		switch alt.Kind() {
		case godos.KindObject:
			altName := name + "_object_" + strconv.Itoa(objects)
			objects++
			b.component(altName, alt.Structure())
			out.OneOf = append(out.OneOf, &Property{Ref: schemaRef(altName)})
		case godos.KindArray:
			altName := name + "_array_" + strconv.Itoa(arrays)
			arrays++
			out.OneOf = append(out.OneOf, b.prop(altName, alt))
		default:
			out.OneOf = append(out.OneOf, b.prop(name, alt))
		}
	}
	return out
}

func (b *builder) prop(name string, p *godos.Prop) *Property {
	nullable := p.IsNullable()
	out := &Property{
		Type:        TypeName(p.Kind()),
		Nullable:    &nullable,
		Description: p.Description(),
	}
	switch p.Kind() {
	case godos.KindObject:
		b.component(name, p.Structure())
		out.AllOf = []*Property{{Ref: schemaRef(name)}}
	case godos.KindArray:
		elem := p.Items()
		for elem.Kind() == godos.KindArray {
			elem = elem.Items()
		}
		switch {
		case elem.Kind() == godos.KindObject:
			b.component(name, elem.Structure())
			out.Items = &Property{Ref: schemaRef(name)}
		case b.cfg.plainItems:
			out.Items = &Property{Type: TypeName(elem.Kind())}
		default:
			out.Items = &Property{Type: TypeName(elem.Kind()) + "s"}
		}
	}
	return out
}

// TypeName maps a kind to its OpenAPI type.
func TypeName(k godos.Kind) string {
	switch k {
	case godos.KindNumber, godos.KindNumeric:
		return "number"
	case godos.KindInteger:
		return "integer"
	case godos.KindBoolean:
		return "boolean"
	case godos.KindObject:
		return "object"
	case godos.KindArray:
		return "array"
	}
	return "string"
}

// TagName turns a declared tag or path segment into its display form:
// underscores become spaces and every word is title-cased.
func TagName(s string) string {
	// cases.Caser keeps state; one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

func componentBase(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	return strings.ReplaceAll(trimmed, "/", "_")
}

func firstSegment(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

func statusDescription(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Status " + strconv.Itoa(code)
}
