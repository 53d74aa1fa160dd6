package comparison

import (
	"reflect"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/comparison/operators"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
)

type Option func(*Engine)

// WithRegistry replaces the default capability registry.
func WithRegistry(registry *operators.OperatorRegistry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithLogger makes suppressed comparison failures visible at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictRanges rejects Between and NotBetween operand lists of odd
// length instead of ignoring the unpaired last value.
func WithStrictRanges(strict bool) Option {
	return func(e *Engine) {
		e.strictRanges = strict
	}
}

// Engine evaluates criteria against operands. Its operator cache fills
// lazily and is safe for concurrent use.
type Engine struct {
	registry     *operators.OperatorRegistry
	logger       *zap.Logger
	strictRanges bool
	cache        *operatorCache
}

func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = operators.NewDefaultRegistry()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	e.cache = newOperatorCache(e.registry)
	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide engine used by the package functions.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Compare reports whether left matches right under c. Any failure yields false.
func (e *Engine) Compare(left any, c criteria.Criteria, right any) bool {
	ok, err := e.TryCompare(left, c, right)
	if err != nil {
		e.logFailure(c, left, right, err)
		return false
	}
	return ok
}

// CompareRange reports whether left matches the list of values under mc.
// Any failure, including a failure for a single element, yields false.
func (e *Engine) CompareRange(left any, mc criteria.MultCriteria, values any) bool {
	ok, err := e.TryCompareRange(left, mc, values)
	if err != nil {
		e.logFailure(mc.Criteria(), left, values, err)
		return false
	}
	return ok
}

func (e *Engine) Equal(left, right any) bool {
	return e.Compare(left, criteria.Equal, right)
}

// TryCompare is Compare with the reason for a non-evaluation reported.
func (e *Engine) TryCompare(left any, c criteria.Criteria, right any) (bool, error) {
	if mc, ok := c.Multi(); ok {
		if !isList(right) {
			return false, newComparisonError(c, left, right, errors.Wrapf(ErrNotList, "%s", c))
		}
		return e.TryCompareRange(left, mc, right)
	}
	if _, ok := c.ID(); !ok {
		return false, newComparisonError(c, left, right, errors.Wrapf(ErrUnsupportedCriteria, "code %d", int(c)))
	}

	l, r := normalize(left), normalize(right)
	t := operandType(l, r)
	if l != nil && r != nil && reflect.TypeOf(r) != t {
		converted, ok := convert(r, t)
		if !ok && !c.IsStringish() {
			converted, ok = parseTime(r, t)
		}
		switch {
		case ok:
			r = converted
		case c.IsStringish():
			l, r, t = stringify(l), stringify(r), stringType
		default:
			x, y, promoted := promoteNumbers(l, r)
			if !promoted {
				return false, newComparisonError(c, left, right, ErrTypeMismatch)
			}
			l, r, t = x, y, numberType
		}
	}
	if l == nil && r != nil && c.IsStringish() {
		t = stringType
		r = stringify(r)
	}

	s := e.cache.resolve(t, c.Base())
	if s.err != nil {
		return false, newComparisonError(c, left, right, s.err)
	}
	result, err := invoke(s.op, l, r)
	if err != nil {
		return false, newComparisonError(c, left, right, err)
	}
	if c.IsNegated() {
		return !result, nil
	}
	return result, nil
}

// TryCompareRange is CompareRange with the reason for a non-evaluation
// reported. Errors of individual elements are accumulated.
func (e *Engine) TryCompareRange(left any, mc criteria.MultCriteria, values any) (bool, error) {
	if !mc.IsValid() {
		return false, newComparisonError(mc.Criteria(), left, values, errors.Wrapf(ErrUnsupportedCriteria, "code %d", int(mc)))
	}
	items, ok := listItems(values)
	if !ok {
		return false, newComparisonError(mc.Criteria(), left, values, ErrNotList)
	}
	if len(items) == 0 {
		return false, nil
	}
	r := rangeEvaluator{engine: e, left: left}
	var result bool
	switch mc {
	case criteria.MultBetween, criteria.MultNotBetween:
		if e.strictRanges && len(items) > 1 && len(items)%2 != 0 {
			return false, newComparisonError(mc.Criteria(), left, values, errors.Wrapf(ErrOddRange, "got %d values", len(items)))
		}
		result = r.between(items, mc == criteria.MultNotBetween)
	case criteria.MultIn:
		result = r.anyEqual(items)
	case criteria.MultNotIn:
		result = !r.anyEqual(items)
	}
	if r.errs != nil {
		return false, r.errs.ErrorOrNil()
	}
	return result, nil
}

// Resolution reports the cache state of the (t, c) slot.
func (e *Engine) Resolution(t reflect.Type, c criteria.Criteria) Resolution {
	return e.cache.status(t, c.Base())
}

func (e *Engine) logFailure(c criteria.Criteria, left, right any, err error) {
	if ce := e.logger.Check(zap.DebugLevel, "comparison not evaluated"); ce != nil {
		ce.Write(
			zap.Stringer("criteria", c),
			zap.String("left_type", typeName(left)),
			zap.String("right_type", typeName(right)),
			zap.Error(err),
		)
	}
}

// operandType picks the type whose operator table serves the comparison.
// It is nil when both operands are null.
func operandType(l, r any) reflect.Type {
	if l != nil {
		return reflect.TypeOf(l)
	}
	if r != nil {
		return reflect.TypeOf(r)
	}
	return nil
}

func invoke(op operator, l, r any) (result bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result, err = false, panicError(rec)
		}
	}()
	return op(l, r), nil
}

type rangeEvaluator struct {
	engine *Engine
	left   any
	errs   *multierror.Error
}

func (r *rangeEvaluator) compare(c criteria.Criteria, value any) bool {
	ok, err := r.engine.TryCompare(r.left, c, value)
	if err != nil {
		r.errs = multierror.Append(r.errs, err)
		return false
	}
	return ok
}

func (r *rangeEvaluator) atLeast(value any) bool {
	return r.compare(criteria.GreaterThan, value) || r.compare(criteria.Equal, value)
}

func (r *rangeEvaluator) atMost(value any) bool {
	return r.compare(criteria.LessThan, value) || r.compare(criteria.Equal, value)
}

// between walks the values as [lower, upper] pairs. A single value is a
// lower bound. An unpaired last value is ignored.
func (r *rangeEvaluator) between(items []any, negated bool) bool {
	if len(items) == 1 {
		if negated {
			return r.compare(criteria.LessThan, items[0])
		}
		return r.atLeast(items[0])
	}
	matched := false
	for i := 1; i < len(items); i += 2 {
		lower, upper := items[i-1], items[i]
		var inPair bool
		if negated {
			below := r.compare(criteria.LessThan, lower)
			above := r.compare(criteria.GreaterThan, upper)
			inPair = below || above
		} else {
			atLeast := r.atLeast(lower)
			atMost := r.atMost(upper)
			inPair = atLeast && atMost
		}
		matched = matched || inPair
	}
	return matched
}

func (r *rangeEvaluator) anyEqual(items []any) bool {
	matched := false
	for _, item := range items {
		if r.compare(criteria.Equal, item) {
			matched = true
		}
	}
	return matched
}
