package comparison

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/comparison/operators"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/natural"
)

// operator evaluates a base (non-negated) criteria. Operands are either nil
// or of the type the operator was built for.
type operator func(left, right any) bool

func buildOperator(t reflect.Type, base criteria.Criteria, caps operators.Capabilities) (operator, error) {
	switch base {
	case criteria.Equal:
		return equalOperator(t, caps), nil
	case criteria.GreaterThan:
		return orderOperator(t, caps, func(r int) bool { return r > 0 })
	case criteria.LessThan:
		return orderOperator(t, caps, func(r int) bool { return r < 0 })
	case criteria.Occurs:
		return textOperator(strings.Contains, false), nil
	case criteria.BeginsWith:
		return textOperator(strings.HasPrefix, false), nil
	case criteria.EndsWith:
		return textOperator(strings.HasSuffix, false), nil
	case criteria.OccursNoCase:
		return textOperator(strings.Contains, true), nil
	case criteria.BeginsWithNoCase:
		return textOperator(strings.HasPrefix, true), nil
	case criteria.EndsWithNoCase:
		return textOperator(strings.HasSuffix, true), nil
	case criteria.StringEqual:
		return textEqualOperator(func(a, b string) bool { return a == b }), nil
	case criteria.StringEqualNoCase:
		return textEqualOperator(strings.EqualFold), nil
	case criteria.StringGreaterThan:
		return textOrderOperator(strings.Compare, func(r int) bool { return r > 0 }), nil
	case criteria.StringLessThan:
		return textOrderOperator(strings.Compare, func(r int) bool { return r < 0 }), nil
	case criteria.StringNumGreaterThan:
		return textOrderOperator(natural.Compare, func(r int) bool { return r > 0 }), nil
	case criteria.StringNumLessThan:
		return textOrderOperator(natural.Compare, func(r int) bool { return r < 0 }), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedCriteria, "%s", base)
}

// Equality falls back from Equal to Compare to == and finally to deep equality.
func equalOperator(t reflect.Type, caps operators.Capabilities) operator {
	var eq func(a, b any) bool
	switch {
	case caps.Equal != nil:
		eq = caps.Equal
	case caps.Compare != nil:
		cmp := caps.Compare
		eq = func(a, b any) bool { return cmp(a, b) == 0 }
	case t != nil && t.Comparable():
		eq = func(a, b any) bool { return a == b }
	default:
		eq = reflect.DeepEqual
	}
	return func(left, right any) bool {
		if left == nil || right == nil {
			return left == nil && right == nil
		}
		return eq(left, right)
	}
}

func orderOperator(t reflect.Type, caps operators.Capabilities, accept func(int) bool) (operator, error) {
	if t != nil && caps.Compare == nil {
		return nil, errors.Wrapf(ErrUnsupportedType, "%s is not ordered", t)
	}
	cmp := caps.Compare
	return func(left, right any) bool {
		if left == nil || right == nil {
			return false
		}
		return accept(cmp(left, right))
	}, nil
}

func textOperator(match func(s, sub string) bool, noCase bool) operator {
	return func(left, right any) bool {
		if left == nil || right == nil {
			return false
		}
		l, r := stringify(left), stringify(right)
		if noCase {
			l, r = strings.ToLower(l), strings.ToLower(r)
		}
		return match(l, r)
	}
}

func textEqualOperator(eq func(a, b string) bool) operator {
	return func(left, right any) bool {
		if left == nil || right == nil {
			return left == nil && right == nil
		}
		return eq(stringify(left), stringify(right))
	}
}

// Textual orderings sort nil before every string.
func textOrderOperator(compare func(a, b string) int, accept func(int) bool) operator {
	return func(left, right any) bool {
		switch {
		case left == nil && right == nil:
			return accept(0)
		case left == nil:
			return accept(-1)
		case right == nil:
			return accept(1)
		}
		return accept(compare(stringify(left), stringify(right)))
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
