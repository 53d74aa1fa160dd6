// Package search applies criteria conditions to records whose properties are
// looked up by name.
package search

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/comparison"
	"github.com/krew-solutions/ascetic-criteria-go/asceticcriteria/criteria"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Condition matches one record property. Value is a list for the range and
// set criteria.
type Condition struct {
	Property string            `json:"property"`
	Criteria criteria.Criteria `json:"criteria"`
	Value    any               `json:"value"`
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.Property, c.Criteria, c.Value)
}

func (c Condition) Validate() error {
	if c.Property == "" {
		return errors.New("condition without property")
	}
	if !c.Criteria.IsValid() {
		return errors.Errorf("condition on %q has unknown criteria %d", c.Property, int(c.Criteria))
	}
	return nil
}

// ParseConditions decodes a JSON array of conditions.
func ParseConditions(data []byte) ([]Condition, error) {
	var conditions []Condition
	if err := json.Unmarshal(data, &conditions); err != nil {
		return nil, errors.Wrap(err, "unable to decode conditions")
	}
	for _, c := range conditions {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return conditions, nil
}

type FilterOption func(*Filter)

func WithEngine(engine *comparison.Engine) FilterOption {
	return func(f *Filter) {
		f.engine = engine
	}
}

func WithLogger(logger *zap.Logger) FilterOption {
	return func(f *Filter) {
		f.logger = logger
	}
}

// Filter matches records that satisfy all of its conditions.
type Filter struct {
	conditions []Condition
	engine     *comparison.Engine
	logger     *zap.Logger
}

func NewFilter(conditions []Condition, opts ...FilterOption) *Filter {
	f := &Filter{conditions: conditions}
	for _, opt := range opts {
		opt(f)
	}
	if f.engine == nil {
		f.engine = comparison.Default()
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

func (f *Filter) Conditions() []Condition {
	return f.conditions
}

// Match reports whether the record satisfies every condition. A record
// lacking a property does not match.
func (f *Filter) Match(record Context) bool {
	for _, c := range f.conditions {
		value, err := record.Get(c.Property)
		if err != nil {
			f.logger.Debug("record excluded", zap.Stringer("condition", c), zap.Error(err))
			return false
		}
		if !f.matchValue(c, value) {
			return false
		}
	}
	return true
}

func (f *Filter) matchValue(c Condition, value any) bool {
	if mc, ok := c.Criteria.Multi(); ok {
		return f.engine.CompareRange(value, mc, c.Value)
	}
	return f.engine.Compare(value, c.Criteria, c.Value)
}

// Apply keeps the items whose context matches f, preserving order.
func Apply[T any](f *Filter, items []T, context func(T) Context) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(context(item)) {
			result = append(result, item)
		}
	}
	return result
}

// ApplyStructs is Apply for struct records read through StructContext.
func ApplyStructs[T any](f *Filter, items []T) []T {
	return Apply(f, items, func(item T) Context {
		return NewStructContext(item)
	})
}
