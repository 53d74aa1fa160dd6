package comparison

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/comparison/operators"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
)

type version struct {
	major, minor int
}

func (v version) Compare(other version) int {
	if v.major != other.major {
		return v.major - other.major
	}
	return v.minor - other.minor
}

type fragile struct {
	id int
}

func (f fragile) Equal(other fragile) bool {
	panic("fragile equality")
}

type caseless string

func TestOperatorCacheResolution(t *testing.T) {
	e := New()
	typ := reflect.TypeOf(opaque{})

	assert.Equal(t, Unresolved, e.Resolution(typ, criteria.GreaterThan))
	assert.False(t, e.Compare(opaque{}, criteria.GreaterThan, opaque{}))
	assert.Equal(t, Unsupported, e.Resolution(typ, criteria.GreaterThan))
	assert.Equal(t, Unsupported, e.Resolution(typ, criteria.NotGreaterThan))

	assert.True(t, e.Compare(opaque{}, criteria.Equal, opaque{}))
	assert.Equal(t, Supported, e.Resolution(typ, criteria.Equal))
	assert.Equal(t, Supported, e.Resolution(typ, criteria.NotEqual))

	assert.Equal(t, Unsupported, e.Resolution(typ, criteria.Between))
	assert.Equal(t, "Supported", Supported.String())
}

func TestOperatorCacheSlotIsStable(t *testing.T) {
	e := New()
	typ := reflect.TypeOf(0)
	first := e.cache.resolve(typ, criteria.LessThan)
	second := e.cache.resolve(typ, criteria.LessThan)
	assert.Same(t, first, second)
}

func TestConcurrentResolution(t *testing.T) {
	e := New()
	var wg sync.WaitGroup
	results := make([]bool, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Compare(version{1, i}, criteria.GreaterThan, version{1, 31})
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, i > 31, got, i)
	}
	assert.Equal(t, Supported, e.Resolution(reflect.TypeOf(version{}), criteria.GreaterThan))
}

func TestDiscoveredCompareMethod(t *testing.T) {
	assert.True(t, Compare(version{2, 0}, criteria.GreaterThan, version{1, 9}))
	assert.True(t, Compare(version{1, 2}, criteria.Equal, version{1, 2}))
	assert.True(t, CompareRange(version{1, 5}, criteria.MultBetween, []version{{1, 0}, {2, 0}}))
}

func TestPanickingComparisonIsContained(t *testing.T) {
	e := New()
	assert.NotPanics(t, func() {
		assert.False(t, e.Compare(fragile{1}, criteria.Equal, fragile{1}))
		assert.False(t, e.Compare(fragile{1}, criteria.NotEqual, fragile{2}))
	})
	_, err := e.TryCompare(fragile{1}, criteria.Equal, fragile{1})
	assert.ErrorIs(t, err, ErrPanic)

	var ce *ComparisonError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, criteria.Equal, ce.Criteria)
	assert.Contains(t, ce.LeftType, "fragile")
}

func TestCustomRegistry(t *testing.T) {
	reg := operators.NewDefaultRegistry()
	operators.RegisterEqual[caseless](reg, func(a, b caseless) bool {
		return strings.EqualFold(string(a), string(b))
	})
	e := New(WithRegistry(reg))

	assert.True(t, e.Compare(caseless("Hello"), criteria.Equal, caseless("hELLO")))
	assert.False(t, Compare(caseless("Hello"), criteria.Equal, caseless("hELLO")))
	// Ordering still comes from the string kind.
	assert.True(t, e.Compare(caseless("a"), criteria.LessThan, caseless("b")))
}

func TestFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := New(WithLogger(zap.New(core)))

	assert.False(t, e.Compare(opaque{}, criteria.LessThan, opaque{}))
	assert.True(t, e.Compare(1, criteria.LessThan, 2))
	assert.False(t, e.CompareRange(1, criteria.MultIn, []any{"one"}))

	entries := logs.FilterMessage("comparison not evaluated").All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "LessThan", fields["criteria"])
	assert.Equal(t, "comparison.opaque", fields["left_type"])
	assert.Contains(t, fields["error"], ErrUnsupportedType.Error())

	fields = entries[1].ContextMap()
	assert.Equal(t, "In", fields["criteria"])
}

func TestFailuresAreNotLoggedAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := New(WithLogger(zap.New(core)))

	assert.False(t, e.Compare(opaque{}, criteria.LessThan, opaque{}))
	assert.Zero(t, logs.Len())
}

func TestComparisonErrorMessage(t *testing.T) {
	_, err := Default().TryCompare(5, criteria.GreaterThan, "x")
	require.Error(t, err)
	assert.Equal(t, "GreaterThan(int, string): "+ErrTypeMismatch.Error(), err.Error())
}
