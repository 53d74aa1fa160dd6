package operators

import (
	"cmp"
	"time"
)

// Comparer is implemented by value types with a three-way Compare method,
// such as time.Time or ulid.ULID.
type Comparer[T any] interface {
	Compare(other T) int
}

// Equatable is implemented by value types with an Equal method.
type Equatable[T any] interface {
	Equal(other T) bool
}

func RegisterOrdered[T cmp.Ordered](reg *OperatorRegistry) {
	RegisterCapabilities[T](reg, Capabilities{
		Equal:   func(a, b any) bool { return a.(T) == b.(T) },
		Compare: func(a, b any) int { return cmp.Compare(a.(T), b.(T)) },
	})
}

func RegisterComparer[T Comparer[T]](reg *OperatorRegistry) {
	RegisterCompare[T](reg, func(a, b T) int { return a.Compare(b) })
}

func RegisterEquatable[T Equatable[T]](reg *OperatorRegistry) {
	RegisterEqual[T](reg, func(a, b T) bool { return a.Equal(b) })
}

func RegisterComparable[T comparable](reg *OperatorRegistry) {
	RegisterEqual[T](reg, func(a, b T) bool { return a == b })
}

// NewDefaultRegistry creates a registry populated with the builtin scalar
// types and the time package.
func NewDefaultRegistry() *OperatorRegistry {
	reg := NewOperatorRegistry()

	RegisterComparable[bool](reg)
	RegisterCompare[bool](reg, func(a, b bool) int {
		switch {
		case a == b:
			return 0
		case !a:
			return -1
		}
		return 1
	})

	RegisterOrdered[int](reg)
	RegisterOrdered[int8](reg)
	RegisterOrdered[int16](reg)
	RegisterOrdered[int32](reg)
	RegisterOrdered[int64](reg)
	RegisterOrdered[uint](reg)
	RegisterOrdered[uint8](reg)
	RegisterOrdered[uint16](reg)
	RegisterOrdered[uint32](reg)
	RegisterOrdered[uint64](reg)
	RegisterOrdered[uintptr](reg)
	RegisterOrdered[float32](reg)
	RegisterOrdered[float64](reg)
	RegisterOrdered[string](reg)

	// time.Duration (interval)
	RegisterOrdered[time.Duration](reg)

	// time.Time (timestamp): instants, not wall-clock representations.
	RegisterEquatable[time.Time](reg)
	RegisterComparer[time.Time](reg)

	return reg
}
