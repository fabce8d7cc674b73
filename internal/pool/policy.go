package pool

// Policy decides whether a caller may deposit rewards. The caller identity
// is an explicit parameter so the check is testable without any execution
// environment behind it.
type Policy interface {
	Authorized(caller string) bool
}

// OperatorPolicy authorizes exactly one configured operator address.
type OperatorPolicy struct {
	Operator string
}

func (p OperatorPolicy) Authorized(caller string) bool {
	return caller != "" && caller == p.Operator
}
