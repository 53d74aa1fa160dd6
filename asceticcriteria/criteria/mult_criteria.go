package criteria

import "github.com/pkg/errors"

// MultCriteria selects a comparison against an ordered list of operands.
type MultCriteria int

const (
	MultBetween    = MultCriteria(Between)
	MultNotBetween = MultCriteria(NotBetween)
	MultIn         = MultCriteria(In)
	MultNotIn      = MultCriteria(NotIn)
)

func (m MultCriteria) Criteria() Criteria {
	return Criteria(m)
}

func (m MultCriteria) IsValid() bool {
	return Criteria(m).IsMulti()
}

func (m MultCriteria) IsNegated() bool {
	return m < 0
}

func (m MultCriteria) String() string {
	return Criteria(m).String()
}

func ParseMult(s string) (MultCriteria, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, err
	}
	m, ok := c.Multi()
	if !ok {
		return 0, errors.Errorf("criteria %s does not take a list of operands", c)
	}
	return m, nil
}

func (m MultCriteria) MarshalText() ([]byte, error) {
	return Criteria(m).MarshalText()
}

func (m *MultCriteria) UnmarshalText(text []byte) error {
	parsed, err := ParseMult(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
