// Package openapi derives an OpenAPI 3.0 document from godos endpoint
// contracts.
package openapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/godos/internal/ordered"
)

var (
	ErrDuplicateOperation = errors.New("openapi: operation already documented")
	ErrDuplicateComponent = errors.New("openapi: component name already in use")
)

var validate = validator.New()

// Document accumulates endpoint documentation. It is safe for concurrent use.
type Document struct {
	mu         sync.Mutex
	disclaimer []string
	info       Info
	tags       []Tag
	components Components
	paths      *ordered.Map[*ordered.Map[*Operation]]
}

// New returns an empty document with the fixed ParseError and MaskError responses.
func New(title, version string) *Document {
	responses := ordered.New[*Response]()
	responses.Set("ParseError", &Response{Description: "When a mask can't be parsed"})
	responses.Set("MaskError", &Response{Description: "When any error occurs on mask"})
	return &Document{
		info: Info{Version: version, Title: title},
		tags: []Tag{},
		components: Components{
			Responses:     responses,
			RequestBodies: ordered.New[*RequestBody](),
			Schemas:       ordered.New[*Component](),
		},
		paths: ordered.New[*ordered.Map[*Operation]](),
	}
}

// AddTag registers a tag. The name is shown in its display form (see TagName).
func (d *Document) AddTag(name, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tags = append(d.tags, Tag{Name: TagName(name), Description: description})
}

// AddContact sets info.contact. All three values are required; url and email
// must be well formed.
func (d *Document) AddContact(name, url, email string) error {
	c := &Contact{Name: name, URL: url, Email: email}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("openapi: invalid contact: %w", err)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.info.Contact = c
	return nil
}

// AddLogo sets the x-logo extension of info.
func (d *Document) AddLogo(url, backgroundColor, altText, href string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.info.Logo = &Logo{URL: url, BackgroundColor: backgroundColor, AltText: altText, Href: href}
}

// AddDisclaimer appends a line to the x-disclaimer extension.
func (d *Document) AddDisclaimer(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disclaimer = append(d.disclaimer, text)
}

// Document builds and merges the documentation of one endpoint.
func (d *Document) Document(c Contract, path, method string, opts ...BuildOption) error {
	f, err := Build(c, path, method, opts...)
	if err != nil {
		return err
	}
	return d.Merge(f)
}

// Merge adds a fragment. It fails without modifying the document when the
// operation or any of its component names is already present.
func (d *Document) Merge(f *Fragment) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if item, ok := d.paths.Get(f.path); ok && item.Has(f.method) {
		return fmt.Errorf("%w: %s %s", ErrDuplicateOperation, f.method, f.path)
	}
	for _, name := range f.schemas.Keys() {
		if d.components.Schemas.Has(name) {
			return fmt.Errorf("%w: schema %s", ErrDuplicateComponent, name)
		}
	}
	for _, name := range f.requestBodies.Keys() {
		if d.components.RequestBodies.Has(name) {
			return fmt.Errorf("%w: request body %s", ErrDuplicateComponent, name)
		}
	}

	for _, name := range f.requestBodies.Keys() {
		rb, _ := f.requestBodies.Get(name)
		d.components.RequestBodies.Set(name, rb)
	}
	for _, name := range f.schemas.Keys() {
		s, _ := f.schemas.Get(name)
		d.components.Schemas.Set(name, s)
	}
	item, ok := d.paths.Get(f.path)
	if !ok {
		item = ordered.New[*Operation]()
		d.paths.Set(f.path, item)
	}
	item.Set(f.method, f.operation)
	return nil
}

type wireDocument struct {
	Disclaimer []string                               `json:"x-disclaimer,omitempty"`
	OpenAPI    string                                 `json:"openapi"`
	Info       Info                                   `json:"info"`
	Tags       []Tag                                  `json:"tags"`
	Components *Components                            `json:"components"`
	Paths      *ordered.Map[*ordered.Map[*Operation]] `json:"paths"`
}

// MarshalJSON encodes the document with keys in construction order.
func (d *Document) MarshalJSON() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return json.Marshal(wireDocument{
		Disclaimer: d.disclaimer,
		OpenAPI:    Version,
		Info:       d.info,
		Tags:       d.tags,
		Components: &d.components,
		Paths:      d.paths,
	})
}

// YAML encodes the document as YAML, keeping the JSON key order.
func (d *Document) YAML() ([]byte, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return JSONToYAML(data)
}

// JSONToYAML re-encodes a JSON document as block-style YAML without
// reordering keys.
func JSONToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("openapi: read json: %w", err)
	}
	resetStyle(&node)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("openapi: write yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resetStyle drops the flow and quoting styles inherited from JSON; the
// encoder re-quotes scalars that would otherwise change type.
func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

// Validate checks the document with kin-openapi.
func (d *Document) Validate(ctx context.Context) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = Load(ctx, data)
	return err
}

// Load parses and validates an OpenAPI document (JSON or YAML).
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}
