// Package source decodes request bodies for the validation engine.
//
// Bodies are read with goccy/go-json in UseNumber mode so numbers keep their
// literal text, duplicate keys are rejected at any depth, and the document
// order of the top-level keys is kept for error reporting.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
)

// DefaultMaxDepth bounds object/array nesting.
const DefaultMaxDepth = 64

var (
	ErrEmptyBody    = errors.New("source: request body is empty")
	ErrNotObject    = errors.New("source: request body must be a JSON object")
	ErrDuplicateKey = errors.New("source: duplicate key")
	ErrTooDeep      = errors.New("source: nesting too deep")
	ErrTrailingData = errors.New("source: unexpected data after the JSON object")
)

// Object is a decoded JSON object plus the document order of its keys.
type Object struct {
	keys   []string
	values map[string]any
	orders map[string][]string
}

// Map returns the decoded values. Nested objects are map[string]any, arrays
// are []any and numbers are json.Number.
func (o *Object) Map() map[string]any { return o.values }

// Keys returns the top-level keys in document order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// KeyOrders returns the document order of every object in the body, keyed
// by JSON pointer: "/" for the body itself, "/address" or "/items/0" below it.
func (o *Object) KeyOrders() map[string][]string {
	out := make(map[string][]string, len(o.orders))
	for ptr, keys := range o.orders {
		out[ptr] = append([]string(nil), keys...)
	}
	return out
}

// Option configures Decode.
type Option func(*decoder)

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(d *decoder) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// AllowEmpty makes Decode return an empty Object for an empty body instead
// of ErrEmptyBody.
func AllowEmpty() Option {
	return func(d *decoder) { d.allowEmpty = true }
}

// Decode reads a single JSON object from r.
func Decode(r io.Reader, opts ...Option) (*Object, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	d := &decoder{dec: dec, maxDepth: DefaultMaxDepth, orders: map[string][]string{}}
	for _, o := range opts {
		if o != nil {
			o(d)
		}
	}

	tok, err := dec.Token()
	if err == io.EOF {
		if d.allowEmpty {
			return &Object{values: map[string]any{}, orders: map[string][]string{"/": nil}}, nil
		}
		return nil, ErrEmptyBody
	}
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if delim, ok := tok.(j.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}
	values, keys, err := d.object("", 1)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}
	return &Object{keys: keys, values: values, orders: d.orders}, nil
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte, opts ...Option) (*Object, error) {
	return Decode(bytes.NewReader(b), opts...)
}

type decoder struct {
	dec        *j.Decoder
	maxDepth   int
	allowEmpty bool
	orders     map[string][]string
}

func (d *decoder) next() (j.Token, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("source: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return tok, nil
}

// object reads members up to and including the closing brace.
func (d *decoder) object(path string, depth int) (map[string]any, []string, error) {
	values := map[string]any{}
	var keys []string
	for d.dec.More() {
		tok, err := d.next()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("source: expected object key at %s", pointer(path))
		}
		if _, dup := values[key]; dup {
			return nil, nil, fmt.Errorf("%w %q at %s", ErrDuplicateKey, key, pointer(path))
		}
		vt, err := d.next()
		if err != nil {
			return nil, nil, err
		}
		v, err := d.value(vt, path+"/"+escape(key), depth)
		if err != nil {
			return nil, nil, err
		}
		values[key] = v
		keys = append(keys, key)
	}
	if _, err := d.next(); err != nil {
		return nil, nil, err
	}
	d.orders[pointer(path)] = keys
	return values, keys, nil
}

// array reads elements up to and including the closing bracket.
func (d *decoder) array(path string, depth int) ([]any, error) {
	items := []any{}
	for i := 0; d.dec.More(); i++ {
		tok, err := d.next()
		if err != nil {
			return nil, err
		}
		v, err := d.value(tok, path+"/"+strconv.Itoa(i), depth)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := d.next(); err != nil {
		return nil, err
	}
	return items, nil
}

func (d *decoder) value(tok j.Token, path string, depth int) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		if depth >= d.maxDepth {
			return nil, fmt.Errorf("%w at %s", ErrTooDeep, pointer(path))
		}
		switch v {
		case '{':
			m, _, err := d.object(path, depth+1)
			return m, err
		case '[':
			return d.array(path, depth+1)
		}
		return nil, fmt.Errorf("source: unexpected %q at %s", rune(v), pointer(path))
	case float64:
		// go-json may ignore UseNumber for tokens
		return j.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	}
	return tok, nil
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// escape per RFC 6901.
func escape(key string) string {
	return strings.ReplaceAll(strings.ReplaceAll(key, "~", "~0"), "/", "~1")
}
