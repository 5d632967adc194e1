package tendermint

import (
	"fmt"

	"github.com/tendermint/ics07/ibc/client"
	"github.com/tendermint/ics07/light"
)

// ErrIncompleteHeader means a header lacks its signed header, block header,
// commit, validator set or trusted validators, so there is nothing to
// validate.
type ErrIncompleteHeader struct {
	Header int
}

func (e ErrIncompleteHeader) Error() string {
	return fmt.Sprintf("header %d is missing its signed header, commit, validator set or trusted validators", e.Header)
}

// ErrMalformedHeader means a header has a negative height, or carries trusted
// validators or a next validator set that is not well formed.
type ErrMalformedHeader struct {
	Header int
	Reason error
}

func (e ErrMalformedHeader) Error() string {
	return fmt.Sprintf("malformed header %d: %v", e.Header, e.Reason)
}

// Unwrap returns the underlying reason.
func (e ErrMalformedHeader) Unwrap() error {
	return e.Reason
}

// ErrChainIDMismatch means the two headers come from different chains.
type ErrChainIDMismatch struct {
	ChainID1 string
	ChainID2 string
}

func (e ErrChainIDMismatch) Error() string {
	return fmt.Sprintf("headers must have identical chain ids: %q != %q", e.ChainID1, e.ChainID2)
}

// ErrHeightOrdering means header 1 is lower than header 2.
type ErrHeightOrdering struct {
	Height1 client.Height
	Height2 client.Height
}

func (e ErrHeightOrdering) Error() string {
	return fmt.Sprintf("header 1 height is less than header 2 height (%v < %v)", e.Height1, e.Height2)
}

// ErrValidatorSetHashMismatch means a supplied validator set does not hash to
// the value the header commits to. Next is set for the next validator set.
type ErrValidatorSetHashMismatch struct {
	Header         int
	Next           bool
	HeaderHash     []byte
	ValidatorsHash []byte
}

func (e ErrValidatorSetHashMismatch) Error() string {
	kind := "validator set"
	if e.Next {
		kind = "next validator set"
	}
	return fmt.Sprintf("invalid %s in header %d: header commits to %X, validators hash to %X",
		kind, e.Header, e.HeaderHash, e.ValidatorsHash)
}

// ErrHeaderCommitMismatch means the commit is for a different block than
// the header.
type ErrHeaderCommitMismatch struct {
	Header     int
	HeaderHash []byte
	CommitHash []byte
}

func (e ErrHeaderCommitMismatch) Error() string {
	return fmt.Sprintf("invalid header commit in header %d: header hash %X, commit hash %X",
		e.Header, e.HeaderHash, e.CommitHash)
}

// ErrInvalidCommit carries the verdict of a failed commit check.
type ErrInvalidCommit struct {
	Header  int
	Verdict light.Verdict
}

func (e ErrInvalidCommit) Error() string {
	return fmt.Sprintf("invalid commit for header %d: %v", e.Header, e.Verdict)
}

// Unwrap returns light.ErrInvalidCommit or light.ErrNotEnoughTrust.
func (e ErrInvalidCommit) Unwrap() error {
	return e.Verdict.Err()
}

// ErrDecode means the payload is not a well formed encoding.
type ErrDecode struct {
	Reason error
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("decoding misbehaviour: %v", e.Reason)
}

// Unwrap returns underlying reason.
func (e ErrDecode) Unwrap() error {
	return e.Reason
}

// ErrMissingHeader means the payload has no header_1 or header_2.
type ErrMissingHeader struct {
	Header int
}

func (e ErrMissingHeader) Error() string {
	return fmt.Sprintf("missing header%d", e.Header)
}

// ErrInvalidRawClientID means the payload's client id does not parse.
type ErrInvalidRawClientID struct {
	ClientID string
	Err      error
}

func (e ErrInvalidRawClientID) Error() string {
	return fmt.Sprintf("invalid raw client id %q: %v", e.ClientID, e.Err)
}

// Unwrap returns the host.ErrInvalidClientID.
func (e ErrInvalidRawClientID) Unwrap() error {
	return e.Err
}
