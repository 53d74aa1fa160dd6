// Package comparison evaluates criteria against a left property value and a
// right search operand.
//
// Evaluation is fail-closed: an unsupported type or criteria, an operand that
// cannot be coerced, or a panicking comparison all produce false. Use
// Engine.TryCompare to learn why a comparison was not evaluated.
//
// Operators are resolved once per (runtime type, criteria) pair and cached.
package comparison

import (
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
)

func Compare(left any, c criteria.Criteria, right any) bool {
	return Default().Compare(left, c, right)
}

// CompareRange accepts any slice or array of values.
func CompareRange(left any, mc criteria.MultCriteria, values any) bool {
	return Default().CompareRange(left, mc, values)
}

func Equal(left, right any) bool {
	return Default().Equal(left, right)
}

func CompareOf[T any](left T, c criteria.Criteria, right T) bool {
	return Default().Compare(left, c, right)
}

func CompareRangeOf[T any](left T, mc criteria.MultCriteria, values []T) bool {
	return Default().CompareRange(left, mc, values)
}
