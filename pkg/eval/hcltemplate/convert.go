package hcltemplate

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

type unwrapper interface {
	Unwrap() any
}

// ToValue converts a Go value into a cty.Value. Maps with string keys become
// objects, slices and arrays become tuples, numbers keep full precision.
// Values that expose Unwrap() any are converted through the unwrapped value.
// Other types are converted through their JSON encoding. Reference cycles
// convert to null at the point where they repeat.
func ToValue(value any) (cty.Value, error) {
	return toValue(value, make(map[uintptr]struct{}))
}

func toValue(value any, path map[uintptr]struct{}) (cty.Value, error) {
	if value == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	if w, ok := value.(unwrapper); ok {
		return toValue(w.Unwrap(), path)
	}
	if v, ok := value.(cty.Value); ok {
		return v, nil
	}

	switch v := value.(type) {
	case string:
		return cty.StringVal(v), nil
	case []byte:
		return cty.StringVal(string(v)), nil
	case bool:
		return cty.BoolVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int8:
		return cty.NumberIntVal(int64(v)), nil
	case int16:
		return cty.NumberIntVal(int64(v)), nil
	case int32:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case uint:
		return cty.NumberUIntVal(uint64(v)), nil
	case uint8:
		return cty.NumberUIntVal(uint64(v)), nil
	case uint16:
		return cty.NumberUIntVal(uint64(v)), nil
	case uint32:
		return cty.NumberUIntVal(uint64(v)), nil
	case uint64:
		return cty.NumberUIntVal(v), nil
	case float32:
		return floatValue(float64(v)), nil
	case float64:
		return floatValue(v), nil
	case *big.Float:
		return cty.NumberVal(v), nil
	case json.Number:
		return cty.ParseNumberVal(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		ptr := rv.Pointer()
		if _, seen := path[ptr]; seen {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
		path[ptr] = struct{}{}
		defer delete(path, ptr)

		attrs := make(map[string]cty.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			converted, err := toValue(iter.Value().Interface(), path)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[iter.Key().String()] = converted
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(attrs), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice {
			if rv.IsNil() {
				return cty.EmptyTupleVal, nil
			}
			if rv.Len() > 0 {
				ptr := rv.Pointer()
				if _, seen := path[ptr]; seen {
					return cty.NullVal(cty.DynamicPseudoType), nil
				}
				path[ptr] = struct{}{}
				defer delete(path, ptr)
			}
		}
		elems := make([]cty.Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			converted, err := toValue(rv.Index(i).Interface(), path)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, converted)
		}
		if len(elems) == 0 {
			return cty.EmptyTupleVal, nil
		}
		return cty.TupleVal(elems), nil
	case reflect.Pointer:
		if rv.IsNil() {
			return cty.NullVal(cty.DynamicPseudoType), nil
		}
	}

	return viaJSON(value)
}

func floatValue(f float64) cty.Value {
	if math.IsNaN(f) {
		return cty.StringVal("NaN")
	}
	return cty.NumberFloatVal(f)
}

func viaJSON(value any) (cty.Value, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return cty.StringVal(fmt.Sprint(value)), nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return cty.NilVal, err
	}
	return toValue(decoded, make(map[uintptr]struct{}))
}

// Stringify renders an evaluation result as text. Strings are returned as is,
// numbers in their shortest decimal form, null as the empty string and
// collections as JSON.
func Stringify(value cty.Value) (string, error) {
	if value.IsNull() {
		return "", nil
	}
	if !value.IsKnown() {
		return "", fmt.Errorf("hcltemplate: result is unknown")
	}
	ty := value.Type()
	switch {
	case ty == cty.String:
		return value.AsString(), nil
	case ty == cty.Number:
		return value.AsBigFloat().Text('f', -1), nil
	case ty == cty.Bool:
		if value.True() {
			return "true", nil
		}
		return "false", nil
	}
	raw, err := ctyjson.Marshal(value, ty)
	if err != nil {
		return "", fmt.Errorf("hcltemplate: encode result: %w", err)
	}
	return string(raw), nil
}
