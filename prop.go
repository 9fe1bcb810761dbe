package godos

// Slot is anything that can occupy a named field of a Schema: a *Prop or a *Choice.
type Slot interface {
	isSlot()
}

// Prop describes one field: its kind, presence rules, validators and, for
// Object and Array, the nested structure.
//
// A Prop is immutable once built. All state is unexported and read through
// accessors, so a tree of Props can be shared across goroutines.
type Prop struct {
	kind        Kind
	description string
	required    bool
	nullable    bool
	validators  []Validator
	structure   Schema
	items       *Prop
}

// Option configures a Prop at construction time.
type Option func(*Prop)

// Description sets the human readable description used in documentation.
func Description(text string) Option {
	return func(p *Prop) { p.description = text }
}

// Required marks the field as mandatory.
func Required() Option {
	return func(p *Prop) { p.required = true }
}

// Nullable allows an explicit null value.
func Nullable() Option {
	return func(p *Prop) { p.nullable = true }
}

// Validators attaches validators. They run in the given order after the type check.
func Validators(vs ...Validator) Option {
	return func(p *Prop) { p.validators = append(p.validators, vs...) }
}

func newProp(k Kind, opts []Option) *Prop {
	p := &Prop{kind: k}
	for _, o := range opts {
		if o != nil {
			o(p)
		}
	}
	return p
}

func String(opts ...Option) *Prop   { return newProp(KindString, opts) }
func Number(opts ...Option) *Prop   { return newProp(KindNumber, opts) }
func Numeric(opts ...Option) *Prop  { return newProp(KindNumeric, opts) }
func Integer(opts ...Option) *Prop  { return newProp(KindInteger, opts) }
func Boolean(opts ...Option) *Prop  { return newProp(KindBoolean, opts) }
func Enum(opts ...Option) *Prop     { return newProp(KindEnum, opts) }
func DateTime(opts ...Option) *Prop { return newProp(KindDateTime, opts) }

// Object describes a JSON object with the given structure.
func Object(structure Schema, opts ...Option) *Prop {
	p := newProp(KindObject, opts)
	p.structure = structure
	return p
}

// Array describes a JSON array whose elements all match items.
// It panics when items is nil.
func Array(items *Prop, opts ...Option) *Prop {
	if items == nil {
		panic("godos: Array requires an element descriptor")
	}
	p := newProp(KindArray, opts)
	p.items = items
	return p
}

func (p *Prop) Kind() Kind          { return p.kind }
func (p *Prop) Description() string { return p.description }
func (p *Prop) IsRequired() bool    { return p.required }
func (p *Prop) IsNullable() bool    { return p.nullable }
func (p *Prop) Structure() Schema   { return p.structure }
func (p *Prop) Items() *Prop        { return p.items }
func (p *Prop) Validators() []Validator {
	out := make([]Validator, len(p.validators))
	copy(out, p.validators)
	return out
}

func (*Prop) isSlot() {}

// Choice is an ordered set of alternative Props for one field. A value
// matches when any alternative accepts it; the first match wins.
//
// A Choice is never required on its own. Null is accepted when some
// alternative is nullable.
type Choice struct {
	alts []*Prop
}

// OneOf builds a Choice from alternatives in declaration order. Nil
// alternatives are skipped.
func OneOf(alts ...*Prop) *Choice {
	c := &Choice{alts: make([]*Prop, 0, len(alts))}
	for _, a := range alts {
		if a != nil {
			c.alts = append(c.alts, a)
		}
	}
	return c
}

// Alternatives returns the alternatives in declaration order.
func (c *Choice) Alternatives() []*Prop {
	out := make([]*Prop, len(c.alts))
	copy(out, c.alts)
	return out
}

func (*Choice) isSlot() {}

// slotRequired reports whether a missing field must be rejected.
func slotRequired(s Slot) bool {
	p, ok := s.(*Prop)
	return ok && p.required
}
