package operators

import (
	"reflect"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Money struct {
	amount   int
	currency string
}

func (m Money) Equal(other EqualOperand) bool {
	o, ok := other.(Money)
	if !ok {
		return false
	}
	return m.amount == o.amount && m.currency == o.currency
}

func (m Money) GreaterThan(other GreaterThanOperand) bool {
	o, ok := other.(Money)
	if !ok {
		return false
	}
	return m.amount > o.amount
}

func (m Money) LessThan(other LessThanOperand) bool {
	o, ok := other.(Money)
	if !ok {
		return false
	}
	return m.amount < o.amount
}

// Weight only knows how to tell whether it is heavier, via a pointer receiver.
type Weight struct {
	grams int
}

func (w *Weight) GreaterThan(other GreaterThanOperand) bool {
	o, ok := other.(*Weight)
	return ok && w.grams > o.grams
}

type Priority int

type Semver struct {
	major int
}

func (s *Semver) Compare(other Semver) int {
	return s.major - other.major
}

type Opaque struct {
	items []int
}

func TestOperandInterfaces(t *testing.T) {
	caps := Discover(reflect.TypeOf(Money{}))
	require.NotNil(t, caps.Equal)
	require.NotNil(t, caps.Compare)

	tests := []struct {
		name        string
		left, right Money
		equal       bool
		order       int
	}{
		{"same", Money{100, "USD"}, Money{100, "USD"}, true, 0},
		{"greater", Money{100, "USD"}, Money{50, "USD"}, false, 1},
		{"less", Money{50, "USD"}, Money{100, "USD"}, false, -1},
		{"other currency", Money{100, "USD"}, Money{100, "EUR"}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, caps.Equal(tt.left, tt.right))
			assert.Equal(t, tt.order, caps.Compare(tt.left, tt.right))
		})
	}
}

func TestPointerReceiverOperand(t *testing.T) {
	caps := Discover(reflect.TypeOf(Weight{}))
	require.NotNil(t, caps.Compare)
	assert.Equal(t, 1, caps.Compare(Weight{20}, Weight{10}))
	assert.Equal(t, -1, caps.Compare(Weight{10}, Weight{20}))
	assert.Equal(t, 0, caps.Compare(Weight{10}, Weight{10}))

	// Weight is comparable, but the operand defines ordering so equality
	// comes from it.
	assert.Nil(t, caps.Equal)
	assert.True(t, caps.IsEquatable())
}

func TestDiscoverMethods(t *testing.T) {
	t.Run("pointer receiver Compare", func(t *testing.T) {
		caps := Discover(reflect.TypeOf(Semver{}))
		require.True(t, caps.IsOrdered())
		assert.Positive(t, caps.Compare(Semver{3}, Semver{1}))
	})
	t.Run("ulid", func(t *testing.T) {
		caps := Discover(reflect.TypeOf(ulid.ULID{}))
		require.True(t, caps.IsOrdered())
		a := ulid.MustParse("01ARZ3NDEKTSV4RRFFQ69G5FAV")
		b := ulid.MustParse("01BX5ZZKBKACTAV9WEVGEMMVRZ")
		assert.Equal(t, -1, caps.Compare(a, b))
	})
	t.Run("time", func(t *testing.T) {
		caps := Discover(reflect.TypeOf(time.Time{}))
		require.True(t, caps.IsOrdered())
		require.NotNil(t, caps.Equal)
		now := time.Now()
		assert.True(t, caps.Equal(now, now.In(time.UTC)))
	})
}

func TestDiscoverKinds(t *testing.T) {
	caps := Discover(reflect.TypeOf(Priority(0)))
	require.True(t, caps.IsOrdered())
	assert.Equal(t, 1, caps.Compare(Priority(3), Priority(1)))
	assert.True(t, caps.Equal(Priority(2), Priority(2)))

	caps = Discover(reflect.TypeOf(true))
	assert.False(t, caps.IsOrdered())
	assert.True(t, caps.IsEquatable())

	caps = Discover(reflect.TypeOf([2]int{}))
	assert.False(t, caps.IsOrdered())
	require.NotNil(t, caps.Equal)
	assert.True(t, caps.Equal([2]int{1, 2}, [2]int{1, 2}))

	caps = Discover(reflect.TypeOf(Opaque{}))
	assert.False(t, caps.IsEquatable())

	assert.False(t, Discover(nil).IsEquatable())
}

func TestDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, v := range []any{0, int8(0), uint64(0), 0.0, float32(0), "", true, time.Duration(0), time.Time{}} {
		typ := reflect.TypeOf(v)
		assert.True(t, reg.IsRegistered(typ), typ.String())
		assert.True(t, reg.Lookup(typ).IsOrdered(), typ.String())
	}
	assert.False(t, reg.IsRegistered(reflect.TypeOf(Priority(0))))

	caps := reg.Lookup(reflect.TypeOf(false))
	assert.Equal(t, -1, caps.Compare(false, true))
	assert.Equal(t, 0, caps.Compare(true, true))

	caps = reg.Lookup(reflect.TypeOf(time.Time{}))
	early, late := time.Unix(1, 0), time.Unix(2, 0)
	assert.Equal(t, -1, caps.Compare(early, late))
	assert.True(t, caps.Equal(early, early.UTC()))
}

func TestRegisterMerges(t *testing.T) {
	reg := NewOperatorRegistry()
	RegisterComparable[Opaque2](reg)
	RegisterCompare[Opaque2](reg, func(a, b Opaque2) int { return a.n - b.n })

	caps := reg.Lookup(reflect.TypeOf(Opaque2{}))
	assert.True(t, caps.Equal(Opaque2{1}, Opaque2{1}))
	assert.Equal(t, -1, caps.Compare(Opaque2{1}, Opaque2{2}))
}

type Opaque2 struct {
	n int
}
