package decoder

import (
	"fmt"
	"strings"
)

// Policy selects what Decode does with a *DecodeError.
type Policy int

const (
	// PolicyStop returns the first decode error.
	PolicyStop Policy = iota
	// PolicySkip logs a warning and resumes after the bytes consumed.
	PolicySkip
	// PolicyPlaceholder emits one db record per consumed byte and resumes.
	PolicyPlaceholder
)

var policyNames = []string{
	PolicyStop:        "stop",
	PolicySkip:        "skip",
	PolicyPlaceholder: "placeholder",
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy parses a policy name, ignoring case.
func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(s, name) {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("invalid policy %q, want one of %s", s, strings.Join(policyNames, ", "))
}

// Set and Type let a *Policy be bound to a command-line flag.
func (p *Policy) Set(s string) error {
	v, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *Policy) Type() string { return "policy" }
