package operators

// Value objects that cannot expose Compare(T) or Equal(T) can opt into
// comparison through these interfaces instead.

type EqualOperand interface {
	Equal(other EqualOperand) bool
}

type GreaterThanOperand interface {
	GreaterThan(other GreaterThanOperand) bool
}

type LessThanOperand interface {
	LessThan(other LessThanOperand) bool
}
