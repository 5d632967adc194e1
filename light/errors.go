package light

import (
	"errors"
	"fmt"
)

// ErrInvalidCommit means the commit is malformed, references validators
// outside the set or carries a bad signature.
type ErrInvalidCommit struct {
	Reason error
}

func (e ErrInvalidCommit) Error() string {
	return fmt.Sprintf("invalid commit: %v", e.Reason)
}

// Unwrap returns underlying reason.
func (e ErrInvalidCommit) Unwrap() error {
	return e.Reason
}

// ErrNotEnoughTrust means the commit is well formed but the voting power
// behind it does not exceed the required fraction of the validator set.
type ErrNotEnoughTrust struct {
	Reason error
}

func (e ErrNotEnoughTrust) Error() string {
	return fmt.Sprintf("not enough trust: %v", e.Reason)
}

// Unwrap returns underlying reason.
func (e ErrNotEnoughTrust) Unwrap() error {
	return e.Reason
}

var (
	errNoSignatures  = errors.New("no signatures for commit")
	errNilValidators = errors.New("nil validator set")
	errNilHeader     = errors.New("nil signed header")
)

// ErrNonMemberSignature means a commit carries a vote from an address that
// is not part of the validator set.
type ErrNonMemberSignature struct {
	Index   int
	Address []byte
}

func (e ErrNonMemberSignature) Error() string {
	return fmt.Sprintf("signature #%d from %X, which is not in the validator set", e.Index, e.Address)
}

// ErrDuplicateVote means the same validator voted twice in one commit.
type ErrDuplicateVote struct {
	Index   int
	Address []byte
}

func (e ErrDuplicateVote) Error() string {
	return fmt.Sprintf("duplicate vote from %X at signature #%d", e.Address, e.Index)
}

// ErrInvalidSignature means a vote signature failed verification.
type ErrInvalidSignature struct {
	Index     int
	Signature []byte
}

func (e ErrInvalidSignature) Error() string {
	return fmt.Sprintf("wrong signature (#%d): %X", e.Index, e.Signature)
}
