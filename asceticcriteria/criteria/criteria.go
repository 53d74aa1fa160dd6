package criteria

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Criteria selects a single-operand comparison. A negative code is the logical
// negation of the positive one.
type Criteria int

const (
	Equal Criteria = iota + 1
	GreaterThan
	LessThan
	Occurs
	BeginsWith
	EndsWith
	StringEqual
	StringGreaterThan
	StringLessThan
	StringNumGreaterThan
	StringNumLessThan
	OccursNoCase
	BeginsWithNoCase
	EndsWithNoCase
	StringEqualNoCase

	// Range and set selectors, shared with MultCriteria.

	Between
	In
)

const (
	NotEqual                = -Equal
	NotGreaterThan          = -GreaterThan
	NotLessThan             = -LessThan
	NotOccurs               = -Occurs
	NotBeginsWith           = -BeginsWith
	NotEndsWith             = -EndsWith
	StringNotEqual          = -StringEqual
	StringNotGreaterThan    = -StringGreaterThan
	StringNotLessThan       = -StringLessThan
	StringNumNotGreaterThan = -StringNumGreaterThan
	StringNumNotLessThan    = -StringNumLessThan
	NotOccursNoCase         = -OccursNoCase
	NotBeginsWithNoCase     = -BeginsWithNoCase
	NotEndsWithNoCase       = -EndsWithNoCase
	StringNotEqualNoCase    = -StringEqualNoCase
	NotBetween              = -Between
	NotIn                   = -In
)

// TableSize is the number of single-operand slots an operator table holds.
const TableSize = int(StringEqualNoCase)

var names = map[Criteria]string{
	Equal:                   "Equal",
	GreaterThan:             "GreaterThan",
	LessThan:                "LessThan",
	Occurs:                  "Occurs",
	BeginsWith:              "BeginsWith",
	EndsWith:                "EndsWith",
	StringEqual:             "StringEqual",
	StringGreaterThan:       "StringGreaterThan",
	StringLessThan:          "StringLessThan",
	StringNumGreaterThan:    "StringNumGreaterThan",
	StringNumLessThan:       "StringNumLessThan",
	OccursNoCase:            "OccursNoCase",
	BeginsWithNoCase:        "BeginsWithNoCase",
	EndsWithNoCase:          "EndsWithNoCase",
	StringEqualNoCase:       "StringEqualNoCase",
	Between:                 "Between",
	In:                      "In",
	NotEqual:                "NotEqual",
	NotGreaterThan:          "NotGreaterThan",
	NotLessThan:             "NotLessThan",
	NotOccurs:               "NotOccurs",
	NotBeginsWith:           "NotBeginsWith",
	NotEndsWith:             "NotEndsWith",
	StringNotEqual:          "StringNotEqual",
	StringNotGreaterThan:    "StringNotGreaterThan",
	StringNotLessThan:       "StringNotLessThan",
	StringNumNotGreaterThan: "StringNumNotGreaterThan",
	StringNumNotLessThan:    "StringNumNotLessThan",
	NotOccursNoCase:         "NotOccursNoCase",
	NotBeginsWithNoCase:     "NotBeginsWithNoCase",
	NotEndsWithNoCase:       "NotEndsWithNoCase",
	StringNotEqualNoCase:    "StringNotEqualNoCase",
	NotBetween:              "NotBetween",
	NotIn:                   "NotIn",
}

// Short spellings accepted from query strings.
var aliases = map[string]Criteria{
	"eq":         Equal,
	"=":          Equal,
	"==":         Equal,
	"ne":         NotEqual,
	"!=":         NotEqual,
	"<>":         NotEqual,
	"gt":         GreaterThan,
	">":          GreaterThan,
	"lt":         LessThan,
	"<":          LessThan,
	"gte":        NotLessThan,
	">=":         NotLessThan,
	"lte":        NotGreaterThan,
	"<=":         NotGreaterThan,
	"like":       Occurs,
	"ilike":      OccursNoCase,
	"contains":   Occurs,
	"startswith": BeginsWith,
	"endswith":   EndsWith,
	"nin":        NotIn,
}

var byName = func() map[string]Criteria {
	m := make(map[string]Criteria, len(names)+len(aliases))
	for c, name := range names {
		m[strings.ToLower(name)] = c
	}
	for alias, c := range aliases {
		m[alias] = c
	}
	return m
}()

func (c Criteria) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return "Criteria(" + strconv.Itoa(int(c)) + ")"
}

// IsValid reports whether c is a known member of the enumeration.
func (c Criteria) IsValid() bool {
	_, ok := names[c]
	return ok
}

func (c Criteria) Negate() Criteria {
	return -c
}

func (c Criteria) IsNegated() bool {
	return c < 0
}

// Base returns the non-negated form of c.
func (c Criteria) Base() Criteria {
	if c < 0 {
		return -c
	}
	return c
}

// ID returns the operator table slot of c. The second result is false when c
// falls outside the single-operand table.
func (c Criteria) ID() (int, bool) {
	id := int(c.Base()) - 1
	if id < 0 || id >= TableSize {
		return id, false
	}
	return id, true
}

// IsStringish reports whether c compares the textual form of its operands.
func (c Criteria) IsStringish() bool {
	switch c.Base() {
	case Occurs, BeginsWith, EndsWith,
		StringEqual, StringGreaterThan, StringLessThan,
		StringNumGreaterThan, StringNumLessThan,
		OccursNoCase, BeginsWithNoCase, EndsWithNoCase, StringEqualNoCase:
		return true
	}
	return false
}

func (c Criteria) IsMulti() bool {
	_, ok := c.Multi()
	return ok
}

// Multi converts c to its MultCriteria form.
func (c Criteria) Multi() (MultCriteria, bool) {
	switch c {
	case Between, NotBetween, In, NotIn:
		return MultCriteria(c), true
	}
	return 0, false
}

// Parse resolves a criteria name, a short alias or a numeric code.
// Names are matched case-insensitively.
func Parse(s string) (Criteria, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := byName[key]; ok {
		return c, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Criteria(n).IsValid() {
		return Criteria(n), nil
	}
	return 0, errors.Errorf("unknown criteria %q", s)
}

func (c Criteria) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, errors.Errorf("unknown criteria %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Criteria) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
