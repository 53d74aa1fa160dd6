package operators

import (
	"cmp"
	"reflect"
)

var (
	equalOperandType       = typeOf[EqualOperand]()
	greaterThanOperandType = typeOf[GreaterThanOperand]()
	lessThanOperandType    = typeOf[LessThanOperand]()
	boolType               = typeOf[bool]()
	intType                = typeOf[int]()
)

// Discover derives the capabilities of an unregistered type from its method
// set and kind. Sources are tried in order: operand interfaces, Compare(T) int
// and Equal(T) bool methods, the underlying kind, and finally language
// comparability for equality alone.
func Discover(t reflect.Type) Capabilities {
	if t == nil {
		return Capabilities{}
	}
	caps := operandCapabilities(t)
	caps = caps.Merge(methodCapabilities(t))
	caps = caps.Merge(kindCapabilities(t))
	if caps.Equal == nil && caps.Compare == nil && t.Comparable() {
		caps.Equal = func(a, b any) bool { return a == b }
	}
	return caps
}

func operandCapabilities(t reflect.Type) Capabilities {
	var caps Capabilities
	eqWrap, eq := operandWrapper(t, equalOperandType)
	gtWrap, gt := operandWrapper(t, greaterThanOperandType)
	ltWrap, lt := operandWrapper(t, lessThanOperandType)
	if eq {
		caps.Equal = func(a, b any) bool {
			r, ok := eqWrap(b).(EqualOperand)
			return ok && eqWrap(a).(EqualOperand).Equal(r)
		}
	}
	greater := func(a, b any) bool {
		return gtWrap(a).(GreaterThanOperand).GreaterThan(gtWrap(b).(GreaterThanOperand))
	}
	less := func(a, b any) bool {
		return ltWrap(a).(LessThanOperand).LessThan(ltWrap(b).(LessThanOperand))
	}
	switch {
	case gt && lt:
		caps.Compare = func(a, b any) int {
			switch {
			case less(a, b):
				return -1
			case greater(a, b):
				return 1
			}
			return 0
		}
	case gt:
		caps.Compare = func(a, b any) int {
			switch {
			case greater(a, b):
				return 1
			case greater(b, a):
				return -1
			}
			return 0
		}
	case lt:
		caps.Compare = func(a, b any) int {
			switch {
			case less(a, b):
				return -1
			case less(b, a):
				return 1
			}
			return 0
		}
	}
	return caps
}

// operandWrapper reports whether T or *T implements iface. For *T the
// returned function moves a T value into a fresh pointer.
func operandWrapper(t, iface reflect.Type) (func(any) any, bool) {
	if t.Implements(iface) {
		return func(v any) any { return v }, true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(iface) {
		return func(v any) any { return addressOf(t, v).Interface() }, true
	}
	return nil, false
}

func addressOf(t reflect.Type, v any) reflect.Value {
	p := reflect.New(t)
	p.Elem().Set(reflect.ValueOf(v))
	return p
}

func methodCapabilities(t reflect.Type) Capabilities {
	var caps Capabilities
	if call, ok := binaryMethod(t, "Compare", intType); ok {
		caps.Compare = func(a, b any) int {
			return int(call(a, b).Int())
		}
	}
	if call, ok := binaryMethod(t, "Equal", boolType); ok {
		caps.Equal = func(a, b any) bool {
			return call(a, b).Bool()
		}
	}
	return caps
}

// binaryMethod finds a method of shape func(T) out on T or *T.
func binaryMethod(t reflect.Type, name string, out reflect.Type) (func(a, b any) reflect.Value, bool) {
	if m, ok := t.MethodByName(name); ok && isBinaryMethod(m.Type, t, out) {
		return func(a, b any) reflect.Value {
			return m.Func.Call([]reflect.Value{reflect.ValueOf(a), reflect.ValueOf(b)})[0]
		}, true
	}
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return nil, false
	}
	pt := reflect.PointerTo(t)
	if m, ok := pt.MethodByName(name); ok && isBinaryMethod(m.Type, pt, out) && m.Type.In(1) == t {
		return func(a, b any) reflect.Value {
			return m.Func.Call([]reflect.Value{addressOf(t, a), reflect.ValueOf(b)})[0]
		}, true
	}
	return nil, false
}

func isBinaryMethod(mt, recv, out reflect.Type) bool {
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.IsVariadic() {
		return false
	}
	if mt.In(0) != recv || mt.Out(0) != out {
		return false
	}
	arg := mt.In(1)
	return arg == recv || (recv.Kind() == reflect.Pointer && arg == recv.Elem())
}

func kindCapabilities(t reflect.Type) Capabilities {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Capabilities{
			Equal:   func(a, b any) bool { return reflect.ValueOf(a).Int() == reflect.ValueOf(b).Int() },
			Compare: func(a, b any) int { return cmp.Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int()) },
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Capabilities{
			Equal:   func(a, b any) bool { return reflect.ValueOf(a).Uint() == reflect.ValueOf(b).Uint() },
			Compare: func(a, b any) int { return cmp.Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint()) },
		}
	case reflect.Float32, reflect.Float64:
		return Capabilities{
			Equal:   func(a, b any) bool { return reflect.ValueOf(a).Float() == reflect.ValueOf(b).Float() },
			Compare: func(a, b any) int { return cmp.Compare(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float()) },
		}
	case reflect.String:
		return Capabilities{
			Equal:   func(a, b any) bool { return reflect.ValueOf(a).String() == reflect.ValueOf(b).String() },
			Compare: func(a, b any) int { return cmp.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String()) },
		}
	case reflect.Bool:
		return Capabilities{
			Equal: func(a, b any) bool { return reflect.ValueOf(a).Bool() == reflect.ValueOf(b).Bool() },
		}
	}
	return Capabilities{}
}
