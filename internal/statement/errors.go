package statement

import (
	"fmt"

	"github.com/MikeTheGreat/PersonalTool/internal/model"
)

// MalformedDateError reports a token that was expected to be a date but
// could not be resolved to one.
type MalformedDateError struct {
	Token  string
	Reason string
}

func (e *MalformedDateError) Error() string {
	if e.Token == "" {
		return "malformed date: " + e.Reason
	}
	return fmt.Sprintf("malformed date %q: %s", e.Token, e.Reason)
}

// MalformedAmountError reports an amount token with no parsable number in it.
type MalformedAmountError struct {
	Token string
	Err   error
}

func (e *MalformedAmountError) Error() string {
	return fmt.Sprintf("malformed amount %q: %v", e.Token, e.Err)
}

func (e *MalformedAmountError) Unwrap() error { return e.Err }

// UnexpectedCategoryError means a completed transaction could not be placed
// in any bucket. It indicates a bug in a vendor definition, not bad input.
type UnexpectedCategoryError struct {
	Category model.Category
	State    State
}

func (e *UnexpectedCategoryError) Error() string {
	return fmt.Sprintf("transaction completed in state %s with category %s", e.State, e.Category)
}
