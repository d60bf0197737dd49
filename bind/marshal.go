package bind

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/eon-format/go-eon/encode"
	"github.com/eon-format/go-eon/ir"
)

// Variant is the Go face of a named variant value like "Rgb"(1, 2, 3).
type Variant struct {
	Name string
	Args []any
}

// Marshal converts a Go value to document text. Structs and maps
// become maps, slices become lists, and a Variant becomes a variant
// call. Struct fields use the `eon:"name,omitempty"` tag, falling
// back to the `json` tag and then the field name.
//
// It returns an error if the value cannot be represented, for
// example a channel or a func.
func Marshal(v any) ([]byte, error) {
	node, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := encode.Encode(node, &sb); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// ToNode converts a Go value to a node.
func ToNode(v any) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	if vr, ok := v.(Variant); ok {
		return variantNode(vr)
	}
	if n, ok := v.(*ir.Node); ok {
		return n, nil
	}
	if m, ok := v.(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return ir.FromString(string(text)), nil
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return ToNode(val.Elem().Interface())
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ir.FromBigInt(new(big.Int).SetUint64(u)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.String:
		return ir.FromString(val.String()), nil
	case reflect.Slice, reflect.Array:
		if val.Type().Elem().Kind() == reflect.Uint8 && val.Kind() == reflect.Slice {
			return ir.FromString(base64.StdEncoding.EncodeToString(val.Bytes())), nil
		}
		vals := make([]*ir.Node, val.Len())
		for i := range vals {
			n, err := ToNode(val.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case reflect.Map:
		return mapNode(val)
	case reflect.Struct:
		return structNode(val)
	default:
		return nil, fmt.Errorf("unsupported type: %s", val.Type())
	}
}

func variantNode(v Variant) (*ir.Node, error) {
	args := make([]*ir.Node, len(v.Args))
	for i, a := range v.Args {
		n, err := ToNode(a)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	return ir.NewVariant(v.Name, args...), nil
}

// mapNode sorts entries by key so output is deterministic.
func mapNode(val reflect.Value) (*ir.Node, error) {
	kvs := make([]ir.KeyVal, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, err := ToNode(iter.Key().Interface())
		if err != nil {
			return nil, fmt.Errorf("map key: %w", err)
		}
		v, err := ToNode(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: v})
	}
	sortKeyVals(kvs)
	return ir.FromKeyVals(kvs), nil
}

func sortKeyVals(kvs []ir.KeyVal) {
	for i := 1; i < len(kvs); i++ {
		for j := i; j > 0 && ir.Compare(kvs[j].Key, kvs[j-1].Key) < 0; j-- {
			kvs[j], kvs[j-1] = kvs[j-1], kvs[j]
		}
	}
}

func structNode(val reflect.Value) (*ir.Node, error) {
	t := val.Type()
	var kvs []ir.KeyVal
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts := fieldName(field)
		if name == "-" {
			continue
		}
		fv := val.Field(i)
		if strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}
		n, err := ToNode(fv.Interface())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(name), Val: n})
	}
	return ir.FromKeyVals(kvs), nil
}

func fieldName(field reflect.StructField) (string, string) {
	tag, ok := field.Tag.Lookup("eon")
	if !ok {
		tag, _ = field.Tag.Lookup("json")
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, opts
}
