package tendermint

import (
	"bytes"
	"fmt"

	"github.com/tendermint/ics07/ibc/client"
	"github.com/tendermint/ics07/ibc/host"
	"github.com/tendermint/ics07/light"
)

const (
	// ClientType is the ICS-02 client type of Tendermint light clients.
	ClientType = "07-tendermint"

	// MisbehaviourTypeURL is the envelope type URL of Misbehaviour.
	MisbehaviourTypeURL = "/ibc.lightclients.tendermint.v1.Misbehaviour"
)

// Misbehaviour is evidence that the validators of a chain signed two
// headers, header 1 at a height no lower than header 2.
//
// A Misbehaviour can only be obtained from NewMisbehaviour or one of the
// decoders, all of which run the full validation; it cannot be changed
// afterwards.
type Misbehaviour struct {
	clientID host.ClientID
	header1  Header
	header2  Header
}

var _ client.Misbehaviour = (*Misbehaviour)(nil)

// NewMisbehaviour validates the header pair and returns the evidence. The
// checks run in this order and the first failure is returned:
//
//	1. both headers have the same chain id (ErrChainIDMismatch)
//	2. header 1 is not lower than header 2 (ErrHeightOrdering)
//	3. each validator set hashes to the header's validators hash, header 1
//	   first (ErrValidatorSetHashMismatch)
//	4. each next validator set, if given, hashes to the header's next
//	   validators hash (ErrValidatorSetHashMismatch with Next set)
//	5. each header hashes to its commit's block id (ErrHeaderCommitMismatch)
//	6. each commit passes Validate then ValidateFull of the commit
//	   validator, header 1 first (ErrInvalidCommit)
//
// Before any of the above, headers lacking a signed header, commit,
// validator set or trusted validators fail with ErrIncompleteHeader, and
// headers with a negative height or malformed trusted or next validators
// fail with ErrMalformedHeader. The two headers are not required to differ.
// The returned value holds deep copies of h1 and h2.
func NewMisbehaviour(clientID host.ClientID, h1, h2 Header, opts ...Option) (*Misbehaviour, error) {
	v := newVerifier(opts)
	if err := v.verify(h1, h2); err != nil {
		v.logger.Debug("rejected misbehaviour", "client_id", clientID, "err", err)
		v.metrics.EvidenceRejected.With("reason", rejectReason(err)).Add(1)
		return nil, err
	}

	v.logger.Debug("validated misbehaviour",
		"client_id", clientID,
		"height1", h1.Height(),
		"height2", h2.Height(),
	)
	v.metrics.EvidenceAccepted.Add(1)
	v.metrics.ValidatorSetSize.Set(float64(h1.ValidatorSet.Size()))

	return &Misbehaviour{
		clientID: clientID,
		header1:  h1.Copy(),
		header2:  h2.Copy(),
	}, nil
}

func (v *verifier) verify(h1, h2 Header) error {
	if !h1.complete() {
		return ErrIncompleteHeader{Header: 1}
	}
	if !h2.complete() {
		return ErrIncompleteHeader{Header: 2}
	}
	if err := h1.checkWellFormed(); err != nil {
		return ErrMalformedHeader{Header: 1, Reason: err}
	}
	if err := h2.checkWellFormed(); err != nil {
		return ErrMalformedHeader{Header: 2, Reason: err}
	}

	if h1.ChainID() != h2.ChainID() {
		return ErrChainIDMismatch{ChainID1: h1.ChainID(), ChainID2: h2.ChainID()}
	}

	if h1.Height().LT(h2.Height()) {
		return ErrHeightOrdering{Height1: h1.Height(), Height2: h2.Height()}
	}

	states := [2]light.UntrustedBlockState{h1.AsUntrustedBlockState(), h2.AsUntrustedBlockState()}

	for i, s := range states {
		if err := v.verifyValidatorSet(i+1, s); err != nil {
			return err
		}
	}
	for i, s := range states {
		if err := v.verifyNextValidatorSet(i+1, s); err != nil {
			return err
		}
	}
	for i, s := range states {
		if err := v.verifyHeaderCommit(i+1, s); err != nil {
			return err
		}
	}
	for i, s := range states {
		if err := v.verifyCommit(i+1, s); err != nil {
			return err
		}
	}
	return nil
}

func (v *verifier) verifyValidatorSet(header int, s light.UntrustedBlockState) error {
	valsHash := v.hasher.HashValidatorSet(s.Validators)
	if !bytes.Equal(s.SignedHeader.ValidatorsHash, valsHash) {
		return ErrValidatorSetHashMismatch{
			Header:         header,
			HeaderHash:     s.SignedHeader.ValidatorsHash,
			ValidatorsHash: valsHash,
		}
	}
	return nil
}

func (v *verifier) verifyNextValidatorSet(header int, s light.UntrustedBlockState) error {
	if s.NextValidators == nil {
		return nil
	}
	valsHash := v.hasher.HashValidatorSet(s.NextValidators)
	if !bytes.Equal(s.SignedHeader.NextValidatorsHash, valsHash) {
		return ErrValidatorSetHashMismatch{
			Header:         header,
			Next:           true,
			HeaderHash:     s.SignedHeader.NextValidatorsHash,
			ValidatorsHash: valsHash,
		}
	}
	return nil
}

func (v *verifier) verifyHeaderCommit(header int, s light.UntrustedBlockState) error {
	headerHash := v.hasher.HashHeader(s.SignedHeader.Header)
	commitHash := s.SignedHeader.Commit.BlockID.Hash
	if !bytes.Equal(headerHash, commitHash) {
		return ErrHeaderCommitMismatch{
			Header:     header,
			HeaderHash: headerHash,
			CommitHash: commitHash,
		}
	}
	return nil
}

func (v *verifier) verifyCommit(header int, s light.UntrustedBlockState) error {
	if err := s.Validators.ValidateBasic(); err != nil {
		return ErrInvalidCommit{Header: header, Verdict: light.Invalid(fmt.Errorf("validator set: %w", err))}
	}
	if verdict := v.commitValidator.Validate(s.SignedHeader, s.Validators); !verdict.IsSuccess() {
		return ErrInvalidCommit{Header: header, Verdict: verdict}
	}
	if verdict := v.commitValidator.ValidateFull(s.SignedHeader, s.Validators); !verdict.IsSuccess() {
		return ErrInvalidCommit{Header: header, Verdict: verdict}
	}
	return nil
}

func rejectReason(err error) string {
	switch err := err.(type) {
	case ErrIncompleteHeader:
		return "incomplete_header"
	case ErrMalformedHeader:
		return "malformed_header"
	case ErrChainIDMismatch:
		return "chain_id_mismatch"
	case ErrHeightOrdering:
		return "height_ordering"
	case ErrValidatorSetHashMismatch:
		if err.Next {
			return "next_validator_set_hash"
		}
		return "validator_set_hash"
	case ErrHeaderCommitMismatch:
		return "header_commit_mismatch"
	case ErrInvalidCommit:
		return err.Verdict.Kind.String()
	default:
		return "other"
	}
}

// ClientID returns the id of the client the evidence is submitted to.
func (m *Misbehaviour) ClientID() host.ClientID {
	return m.clientID
}

// ClientType returns "07-tendermint".
func (m *Misbehaviour) ClientType() string {
	return ClientType
}

// Header1 returns a copy of the higher of the two headers.
func (m *Misbehaviour) Header1() Header {
	return m.header1.Copy()
}

// Header2 returns a copy of the second header.
func (m *Misbehaviour) Header2() Header {
	return m.header2.Copy()
}

// Height returns the height of header 1.
func (m *Misbehaviour) Height() client.Height {
	return m.header1.Height()
}

// ChainIDMatches reports whether the evidence is for chainID.
func (m *Misbehaviour) ChainIDMatches(chainID host.ChainID) bool {
	if m.header1.ChainID() != m.header2.ChainID() {
		panic(fmt.Sprintf("misbehaviour headers have different chain ids: %q, %q",
			m.header1.ChainID(), m.header2.ChainID()))
	}
	return m.header1.ChainID() == chainID.String()
}

// String returns "<client id> h1: <height>-<trusted height> h2: <height>-<trusted height>".
func (m *Misbehaviour) String() string {
	return fmt.Sprintf("%s h1: %s-%s h2: %s-%s",
		m.clientID,
		m.header1.Height(), m.header1.TrustedHeight,
		m.header2.Height(), m.header2.TrustedHeight,
	)
}
