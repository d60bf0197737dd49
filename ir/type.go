package ir

// Type enumerates the kinds of values a Node can hold.
type Type int

const (
	NullType Type = iota
	BoolType
	NumberType
	StringType
	ListType
	MapType
	VariantType
)

func (t Type) String() string {
	switch t {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	case ListType:
		return "list"
	case MapType:
		return "map"
	case VariantType:
		return "variant"
	}
	return "unknown"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Types lists all node types.
func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		NumberType,
		StringType,
		ListType,
		MapType,
		VariantType,
	}
}
