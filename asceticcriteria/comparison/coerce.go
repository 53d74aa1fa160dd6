package comparison

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

var (
	stringType = reflect.TypeOf("")
	timeType   = reflect.TypeOf(time.Time{})
	numberType = reflect.TypeOf(number{})
)

// normalize maps every flavour of null to a plain nil and dereferences
// pointers.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}
	if !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

// convert returns v as a value of type t when that is possible without
// losing information.
func convert(v any, t reflect.Type) (any, bool) {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	if rt == t {
		return v, true
	}
	switch {
	case isNumeric(rt.Kind()) && isNumeric(t.Kind()):
		return convertNumber(rv, t)
	case rt.Kind() == reflect.String && t.Kind() == reflect.String:
		return rv.Convert(t).Interface(), true
	case rt.AssignableTo(t) && rt.ConvertibleTo(t):
		return rv.Convert(t).Interface(), true
	}
	return nil, false
}

func convertNumber(rv reflect.Value, t reflect.Type) (any, bool) {
	if isUnsigned(t.Kind()) && isNegative(rv) {
		return nil, false
	}
	converted := rv.Convert(t)
	back := converted.Convert(rv.Type())
	if !back.Equal(rv) {
		return nil, false
	}
	if isUnsigned(rv.Kind()) && isNegative(converted) {
		return nil, false
	}
	return converted.Interface(), true
}

// parseTime reads a string operand as a timestamp when t is time.Time.
func parseTime(v any, t reflect.Type) (any, bool) {
	rv := reflect.ValueOf(v)
	if t != timeType || rv.Kind() != reflect.String {
		return nil, false
	}
	parsed, err := cast.ToTimeE(rv.String())
	if err != nil {
		return nil, false
	}
	return parsed, true
}

// number holds a numeric operand exactly, so that operands of types that do
// not convert into each other can still be ordered.
type number struct {
	v *big.Float
}

func (n number) Compare(other number) int {
	return n.v.Cmp(other.v)
}

func promoteNumbers(l, r any) (any, any, bool) {
	x, ok := toNumber(reflect.ValueOf(l))
	if !ok {
		return nil, nil, false
	}
	y, ok := toNumber(reflect.ValueOf(r))
	if !ok {
		return nil, nil, false
	}
	return x, y, true
}

func toNumber(rv reflect.Value) (number, bool) {
	switch {
	case isSigned(rv.Kind()):
		return number{new(big.Float).SetInt64(rv.Int())}, true
	case isUnsigned(rv.Kind()):
		return number{new(big.Float).SetUint64(rv.Uint())}, true
	case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return number{}, false
		}
		return number{new(big.Float).SetFloat64(f)}, true
	}
	return number{}, false
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || k == reflect.Float32 || k == reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNegative(rv reflect.Value) bool {
	switch {
	case isSigned(rv.Kind()):
		return rv.Int() < 0
	case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
		return rv.Float() < 0
	}
	return false
}

// listItems flattens a slice or array operand. A null operand is an empty list.
func listItems(v any) ([]any, bool) {
	v = normalize(v)
	if v == nil {
		return nil, true
	}
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func isList(v any) bool {
	v = normalize(v)
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, r)
}
