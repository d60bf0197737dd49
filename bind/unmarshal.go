package bind

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/eon-format/go-eon/encode"
	"github.com/eon-format/go-eon/ir"
	"github.com/eon-format/go-eon/parse"
)

// Unmarshal parses data and fills v, which must be a non-nil
// pointer. Unmarshal acts like json.Unmarshal: struct fields match on
// the `eon` tag, the `json` tag, the field name, or its snake_case
// form. Unknown keys are an error.
//
// Into an interface, maps come out as map[string]any, lists as
// []any, numbers as int64 or float64, and variants as Variant.
func Unmarshal(data []byte, v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	node, err := parse.Parse(data, parse.WithComments(false))
	if err != nil {
		return err
	}
	return FromNode(node, value.Elem())
}

// FromNode fills v from a node.
func FromNode(n *ir.Node, v reflect.Value) error {
	if !v.CanSet() {
		return fmt.Errorf("cannot set value of type %v", v.Type())
	}

	if v.Kind() != reflect.Pointer && v.CanAddr() {
		if tu, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if n.Type != ir.StringType {
				return fmt.Errorf("cannot unmarshal %s into %v", n.Type, v.Type())
			}
			return tu.UnmarshalText([]byte(n.String))
		}
	}

	// null zeroes whatever it lands on
	if n.Type == ir.NullType && v.Kind() != reflect.Interface {
		v.SetZero()
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return FromNode(n, v.Elem())
	case reflect.Interface:
		got, err := anyValue(n)
		if err != nil {
			return err
		}
		if got == nil {
			v.SetZero()
			return nil
		}
		v.Set(reflect.ValueOf(got))
		return nil
	case reflect.Bool:
		if n.Type != ir.BoolType {
			return typeErr(n, v)
		}
		v.SetBool(n.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := n.AsInt64()
		if !ok || v.OverflowInt(i) {
			return typeErr(n, v)
		}
		v.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, ok := n.AsUint64()
		if !ok || v.OverflowUint(u) {
			return typeErr(n, v)
		}
		v.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := n.AsFloat64()
		if !ok {
			return typeErr(n, v)
		}
		v.SetFloat(f)
		return nil
	case reflect.String:
		if n.Type != ir.StringType {
			return typeErr(n, v)
		}
		v.SetString(n.String)
		return nil
	case reflect.Slice:
		return fromList(n, v)
	case reflect.Array:
		return fromArray(n, v)
	case reflect.Map:
		return fromMap(n, v)
	case reflect.Struct:
		return fromStruct(n, v)
	default:
		return fmt.Errorf("unsupported type: %v", v.Type())
	}
}

func typeErr(n *ir.Node, v reflect.Value) error {
	return fmt.Errorf("cannot unmarshal %s into %v", n.Type, v.Type())
}

// anyValue maps a node to the generic Go shape for interface
// targets. Non-string map keys are rendered to their canonical text
// so the result stays a map[string]any.
func anyValue(n *ir.Node) (any, error) {
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.BoolType:
		return n.Bool, nil
	case ir.NumberType:
		if i, ok := n.AsInt64(); ok && !n.IsFloat() {
			return i, nil
		}
		if b, ok := n.AsBigInt(); ok {
			return b, nil
		}
		f, _ := n.AsFloat64()
		return f, nil
	case ir.StringType:
		return n.String, nil
	case ir.ListType:
		res := make([]any, len(n.Values))
		for i, vn := range n.Values {
			v, err := anyValue(vn)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.MapType:
		res := make(map[string]any, len(n.Fields))
		for i, kn := range n.Fields {
			key := kn.String
			if kn.Type != ir.StringType {
				key = encode.MustString(kn)
			}
			v, err := anyValue(n.Values[i])
			if err != nil {
				return nil, err
			}
			res[key] = v
		}
		return res, nil
	case ir.VariantType:
		args := make([]any, len(n.Values))
		for i, vn := range n.Values {
			v, err := anyValue(vn)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return Variant{Name: n.Tag, Args: args}, nil
	}
	return nil, fmt.Errorf("unsupported node type %s", n.Type)
}

func fromList(n *ir.Node, v reflect.Value) error {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		if n.Type != ir.StringType {
			return typeErr(n, v)
		}
		out, err := base64.StdEncoding.DecodeString(n.String)
		if err != nil {
			return err
		}
		v.SetBytes(out)
		return nil
	}
	if n.Type != ir.ListType {
		return typeErr(n, v)
	}
	res := reflect.MakeSlice(v.Type(), len(n.Values), len(n.Values))
	for i, vn := range n.Values {
		if err := FromNode(vn, res.Index(i)); err != nil {
			return err
		}
	}
	v.Set(res)
	return nil
}

func fromArray(n *ir.Node, v reflect.Value) error {
	if n.Type != ir.ListType {
		return typeErr(n, v)
	}
	if len(n.Values) > v.Len() {
		return fmt.Errorf("too many elements, limit %d", v.Len())
	}
	for i, vn := range n.Values {
		if err := FromNode(vn, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func fromMap(n *ir.Node, v reflect.Value) error {
	if n.Type != ir.MapType {
		return typeErr(n, v)
	}
	if v.IsNil() {
		v.Set(reflect.MakeMapWithSize(v.Type(), len(n.Fields)))
	}
	keyType := v.Type().Key()
	valType := v.Type().Elem()
	for i, kn := range n.Fields {
		key := reflect.New(keyType).Elem()
		if err := FromNode(kn, key); err != nil {
			return fmt.Errorf("invalid key: %w", err)
		}
		val := reflect.New(valType).Elem()
		if err := FromNode(n.Values[i], val); err != nil {
			return err
		}
		v.SetMapIndex(key, val)
	}
	return nil
}

func fromStruct(n *ir.Node, v reflect.Value) error {
	if n.Type != ir.MapType {
		return typeErr(n, v)
	}
	t := v.Type()
	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _ := fieldName(field)
		if name == "-" {
			continue
		}
		if name != field.Name {
			fieldMap[name] = v.Field(i)
			continue
		}
		fieldMap[field.Name] = v.Field(i)
		fieldMap[toSnakeCase(field.Name)] = v.Field(i)
	}
	for i, kn := range n.Fields {
		if kn.Type != ir.StringType {
			return fmt.Errorf("cannot unmarshal %s key into %v", kn.Type, t)
		}
		field, ok := fieldMap[kn.String]
		if !ok {
			return fmt.Errorf("unknown field %q in %v", kn.String, t)
		}
		if err := FromNode(n.Values[i], field); err != nil {
			return err
		}
	}
	return nil
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
