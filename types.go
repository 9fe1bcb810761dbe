package godos

// Kind identifies the type a Prop describes.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindNumeric
	KindInteger
	KindBoolean
	KindEnum
	KindDateTime
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindString:   "String",
	KindNumber:   "Number",
	KindNumeric:  "Numeric",
	KindInteger:  "Integer",
	KindBoolean:  "Boolean",
	KindEnum:     "Enum",
	KindDateTime: "DateTime",
	KindObject:   "Object",
	KindArray:    "Array",
}

// String returns the kind name used in user-facing messages.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Scalar reports whether the kind has no nested structure.
func (k Kind) Scalar() bool { return k != KindObject && k != KindArray }

// direction selects the acceptance rules of the type check.
type direction int

const (
	inbound direction = iota
	outbound
)
