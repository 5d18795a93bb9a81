package cdg

import (
	"bytes"
	"fmt"
)

// Branch names one side of a decision. It doubles as a decision's preferred
// outcome.
type Branch bool

const (
	// True is the branch taken when the predicate holds.
	True Branch = true
	// False is the branch taken when the predicate does not hold.
	False Branch = false
)

// String returns "true" or "false".
func (b Branch) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int returns 1 for True and 0 for False.
func (b Branch) Int() int {
	if b {
		return 1
	}
	return 0
}

// MarshalText implements encoding.TextMarshaler.
func (b Branch) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the forms
// produced by instrumentation tools: true/false, t/f and 1/0.
func (b *Branch) UnmarshalText(text []byte) error {
	v, err := ParseBranch(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// UnmarshalJSON accepts JSON booleans and the numbers 0 and 1 in addition to
// the string forms understood by UnmarshalText.
func (b *Branch) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return b.UnmarshalText(bytes.Trim(data, `"`))
	}
	return b.UnmarshalText(data)
}

// ParseBranch parses a branch name.
func ParseBranch(s string) (Branch, error) {
	switch s {
	case "true", "True", "TRUE", "t", "T", "1":
		return True, nil
	case "false", "False", "FALSE", "f", "F", "0":
		return False, nil
	}
	return False, fmt.Errorf("invalid branch %q", s)
}
