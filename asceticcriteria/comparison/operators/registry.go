package operators

import (
	"reflect"
	"sync"
)

// EqualFunc and CompareFunc receive operands that are both of the registered
// type, never nil.
type EqualFunc func(left, right any) bool
type CompareFunc func(left, right any) int

// Capabilities is the set of comparison functions a value type supports.
// A nil member means the capability is absent.
type Capabilities struct {
	Equal   EqualFunc
	Compare CompareFunc
}

func (c Capabilities) IsOrdered() bool {
	return c.Compare != nil
}

func (c Capabilities) IsEquatable() bool {
	return c.Equal != nil || c.Compare != nil
}

// Merge fills the absent members of c from other.
func (c Capabilities) Merge(other Capabilities) Capabilities {
	if c.Equal == nil {
		c.Equal = other.Equal
	}
	if c.Compare == nil {
		c.Compare = other.Compare
	}
	return c
}

type OperatorRegistry struct {
	mu   sync.RWMutex
	caps map[reflect.Type]Capabilities
}

func NewOperatorRegistry() *OperatorRegistry {
	return &OperatorRegistry{
		caps: make(map[reflect.Type]Capabilities),
	}
}

// Register merges caps into whatever is already registered for t.
func (r *OperatorRegistry) Register(t reflect.Type, caps Capabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caps[t] = caps.Merge(r.caps[t])
}

// Lookup returns the registered capabilities of t, falling back to Discover
// for types nobody registered.
func (r *OperatorRegistry) Lookup(t reflect.Type) Capabilities {
	r.mu.RLock()
	caps, ok := r.caps[t]
	r.mu.RUnlock()
	if ok {
		return caps.Merge(Discover(t))
	}
	return Discover(t)
}

func (r *OperatorRegistry) IsRegistered(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.caps[t]
	return ok
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func RegisterCapabilities[T any](reg *OperatorRegistry, caps Capabilities) {
	reg.Register(typeOf[T](), caps)
}

func RegisterEqual[T any](reg *OperatorRegistry, fn func(a, b T) bool) {
	reg.Register(typeOf[T](), Capabilities{
		Equal: func(left, right any) bool { return fn(left.(T), right.(T)) },
	})
}

func RegisterCompare[T any](reg *OperatorRegistry, fn func(a, b T) int) {
	reg.Register(typeOf[T](), Capabilities{
		Compare: func(left, right any) int { return fn(left.(T), right.(T)) },
	})
}
