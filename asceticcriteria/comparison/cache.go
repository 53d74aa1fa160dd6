package comparison

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/comparison/operators"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
)

// Resolution is the state of one (type, criteria) slot of the operator cache.
type Resolution int

const (
	Unresolved Resolution = iota
	Unsupported
	Supported
)

func (r Resolution) String() string {
	switch r {
	case Unsupported:
		return "Unsupported"
	case Supported:
		return "Supported"
	}
	return "Unresolved"
}

type slotKey struct {
	typ reflect.Type
	id  int
}

// slot is resolved exactly once and never changes afterwards.
type slot struct {
	once   sync.Once
	status atomic.Int32
	op     operator
	err    error
}

// operatorCache maps (runtime type, base criteria id) to its operator.
// It is append-only and lives as long as the engine.
type operatorCache struct {
	registry *operators.OperatorRegistry
	slots    sync.Map // slotKey -> *slot
}

func newOperatorCache(registry *operators.OperatorRegistry) *operatorCache {
	return &operatorCache{registry: registry}
}

func (c *operatorCache) resolve(t reflect.Type, base criteria.Criteria) *slot {
	id, _ := base.ID()
	key := slotKey{typ: t, id: id}
	v, ok := c.slots.Load(key)
	if !ok {
		v, _ = c.slots.LoadOrStore(key, &slot{})
	}
	s := v.(*slot)
	s.once.Do(func() {
		op, err := c.build(t, base)
		if err != nil {
			s.err = err
			s.status.Store(int32(Unsupported))
			return
		}
		s.op = op
		s.status.Store(int32(Supported))
	})
	return s
}

func (c *operatorCache) status(t reflect.Type, base criteria.Criteria) Resolution {
	id, ok := base.ID()
	if !ok {
		return Unsupported
	}
	v, ok := c.slots.Load(slotKey{typ: t, id: id})
	if !ok {
		return Unresolved
	}
	return Resolution(v.(*slot).status.Load())
}

func (c *operatorCache) build(t reflect.Type, base criteria.Criteria) (op operator, err error) {
	defer func() {
		if r := recover(); r != nil {
			op, err = nil, panicError(r)
		}
	}()
	var caps operators.Capabilities
	if t != nil {
		caps = c.registry.Lookup(t)
	}
	return buildOperator(t, base, caps)
}
