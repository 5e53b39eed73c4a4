package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during resolution. All of them
// are pure functions of the input: re-running resolution on the same
// ballots yields the same error or result.
var (
	// ErrEmptyInput indicates that zero candidates were supplied.
	ErrEmptyInput = errors.New("no candidates supplied")

	// ErrInvalidBallot indicates that a ballot does not rank exactly the
	// candidate set once each.
	ErrInvalidBallot = errors.New("invalid ballot")

	// ErrInvalidWinnerCount indicates a requested winner count outside
	// the range [1, number of candidates].
	ErrInvalidWinnerCount = errors.New("winner count out of range")

	// ErrIntractableInput indicates that multi-winner resolution would
	// have to enumerate more committees than the configured ceiling.
	ErrIntractableInput = errors.New("committee enumeration exceeds ceiling")

	// ErrUnresolvedTie indicates a genuine tie between winner sets under
	// the error tie-break policy.
	ErrUnresolvedTie = errors.New("tie between equally dominant winner sets")
)

// InvalidBallotError reports which ballot failed validation and why.
// It unwraps to ErrInvalidBallot.
type InvalidBallotError struct {
	// Position is the zero-based index of the ballot in the input list.
	Position int

	// Reason describes the violation in human-readable form.
	Reason string
}

// Error implements the error interface for InvalidBallotError.
func (e *InvalidBallotError) Error() string {
	return fmt.Sprintf("invalid ballot at position %d: %s", e.Position, e.Reason)
}

// Unwrap returns ErrInvalidBallot, supporting errors.Is matching.
func (e *InvalidBallotError) Unwrap() error { return ErrInvalidBallot }

// NewInvalidBallotError creates an InvalidBallotError for the ballot at
// the given position.
func NewInvalidBallotError(position int, format string, args ...any) *InvalidBallotError {
	return &InvalidBallotError{Position: position, Reason: fmt.Sprintf(format, args...)}
}

// IntractableInputError reports a committee enumeration that exceeds the
// configured ceiling. It unwraps to ErrIntractableInput.
type IntractableInputError struct {
	// Candidates is the size of the candidate set.
	Candidates int

	// Winners is the requested committee size.
	Winners int

	// Committees is C(Candidates, Winners), or the first partial value
	// found to exceed the ceiling.
	Committees int64

	// Ceiling is the configured maximum committee count.
	Ceiling int64
}

// Error implements the error interface for IntractableInputError.
func (e *IntractableInputError) Error() string {
	return fmt.Sprintf(
		"intractable input: C(%d, %d) = %d committees exceeds ceiling %d",
		e.Candidates, e.Winners, e.Committees, e.Ceiling)
}

// Unwrap returns ErrIntractableInput, supporting errors.Is matching.
func (e *IntractableInputError) Unwrap() error { return ErrIntractableInput }
