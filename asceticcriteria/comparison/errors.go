package comparison

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
)

// Reasons a comparison was not performed. Compare and CompareRange report all
// of them as a plain false; TryCompare and TryCompareRange return them.
var (
	ErrUnsupportedCriteria = errors.New("unsupported criteria")
	ErrUnsupportedType     = errors.New("type does not support the comparison")
	ErrTypeMismatch        = errors.New("operand is not convertible to the left type")
	ErrPanic               = errors.New("comparison panicked")
	ErrOddRange            = errors.New("range bounds must come in pairs")
	ErrNotList             = errors.New("operand is not a list")
)

// ComparisonError describes a comparison that could not be evaluated.
type ComparisonError struct {
	Criteria  criteria.Criteria
	LeftType  string
	RightType string
	Err       error
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("%s(%s, %s): %v", e.Criteria, e.LeftType, e.RightType, e.Err)
}

func (e *ComparisonError) Unwrap() error {
	return e.Err
}

// Cause lets github.com/pkg/errors.Cause reach the sentinel.
func (e *ComparisonError) Cause() error {
	return errors.Cause(e.Err)
}

func newComparisonError(c criteria.Criteria, left, right any, err error) *ComparisonError {
	return &ComparisonError{
		Criteria:  c,
		LeftType:  typeName(left),
		RightType: typeName(right),
		Err:       err,
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
