package tendermint

import (
	"errors"
	"fmt"

	gogotypes "github.com/gogo/protobuf/types"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tendermint/ics07/ibc/client"
	"github.com/tendermint/ics07/ibc/host"
	"github.com/tendermint/ics07/libs/protoio"
	"github.com/tendermint/ics07/types"
)

// Field numbers of ibc.lightclients.tendermint.v1.Header. Field 5 carries
// the optional next validator set.
const (
	fieldSignedHeader      = 1
	fieldValidatorSet      = 2
	fieldTrustedHeight     = 3
	fieldTrustedValidators = 4
	fieldNextValidatorSet  = 5
)

// Field numbers of ibc.lightclients.tendermint.v1.Misbehaviour.
const (
	fieldClientID = 1
	fieldHeader1  = 2
	fieldHeader2  = 3
)

func heightToProto(h client.Height) []byte {
	var w protoio.Writer
	w.Uint64(1, h.RevisionNumber)
	w.Uint64(2, h.RevisionHeight)
	return w.Bytes()
}

func heightFromProto(bz []byte) (h client.Height, err error) {
	err = protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case 1:
			h.RevisionNumber, err = f.AsUint64()
		case 2:
			h.RevisionHeight, err = f.AsUint64()
		}
		return err
	})
	return h, err
}

// Marshal encodes the header as an ibc.lightclients.tendermint.v1.Header.
func (h Header) Marshal() ([]byte, error) {
	var w protoio.Writer
	if h.SignedHeader != nil {
		bz, err := h.SignedHeader.ToProto()
		if err != nil {
			return nil, fmt.Errorf("signed header: %w", err)
		}
		w.Message(fieldSignedHeader, bz)
	}
	if err := writeValidatorSet(&w, fieldValidatorSet, h.ValidatorSet); err != nil {
		return nil, fmt.Errorf("validator set: %w", err)
	}
	w.Message(fieldTrustedHeight, heightToProto(h.TrustedHeight))
	if err := writeValidatorSet(&w, fieldTrustedValidators, h.TrustedValidators); err != nil {
		return nil, fmt.Errorf("trusted validators: %w", err)
	}
	if err := writeValidatorSet(&w, fieldNextValidatorSet, h.NextValidatorSet); err != nil {
		return nil, fmt.Errorf("next validator set: %w", err)
	}
	return w.Bytes(), nil
}

func writeValidatorSet(w *protoio.Writer, num protowire.Number, vals *types.ValidatorSet) error {
	if vals == nil {
		return nil
	}
	bz, err := vals.ToProto()
	if err != nil {
		return err
	}
	w.Message(num, bz)
	return nil
}

// UnmarshalHeader decodes an ibc.lightclients.tendermint.v1.Header. The
// signed header, validator set, trusted height and trusted validators are
// required; the validator sets must be well formed. Nothing else is checked.
func UnmarshalHeader(bz []byte) (Header, error) {
	var (
		h                Header
		hasTrustedHeight bool
	)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		switch f.Num {
		case fieldSignedHeader:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			if h.SignedHeader, err = types.SignedHeaderFromProto(msg); err != nil {
				return fmt.Errorf("signed header: %w", err)
			}
		case fieldValidatorSet, fieldTrustedValidators, fieldNextValidatorSet:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			vals, err := types.ValidatorSetFromProto(msg)
			if err != nil {
				return fmt.Errorf("validator set field %d: %w", f.Num, err)
			}
			switch f.Num {
			case fieldValidatorSet:
				h.ValidatorSet = vals
			case fieldTrustedValidators:
				h.TrustedValidators = vals
			default:
				h.NextValidatorSet = vals
			}
		case fieldTrustedHeight:
			msg, err := f.AsMessage()
			if err != nil {
				return err
			}
			if h.TrustedHeight, err = heightFromProto(msg); err != nil {
				return fmt.Errorf("trusted height: %w", err)
			}
			hasTrustedHeight = true
		}
		return nil
	})
	if err != nil {
		return Header{}, ErrDecode{Reason: err}
	}

	switch {
	case h.SignedHeader == nil:
		return Header{}, ErrDecode{Reason: errors.New("missing signed header")}
	case h.ValidatorSet == nil:
		return Header{}, ErrDecode{Reason: errors.New("missing validator set")}
	case !hasTrustedHeight:
		return Header{}, ErrDecode{Reason: errors.New("missing trusted height")}
	case h.TrustedValidators == nil:
		return Header{}, ErrDecode{Reason: errors.New("missing trusted validators")}
	}
	return h, nil
}

// Marshal encodes the evidence as an
// ibc.lightclients.tendermint.v1.Misbehaviour.
func (m *Misbehaviour) Marshal() ([]byte, error) {
	h1, err := m.header1.Marshal()
	if err != nil {
		return nil, fmt.Errorf("header1: %w", err)
	}
	h2, err := m.header2.Marshal()
	if err != nil {
		return nil, fmt.Errorf("header2: %w", err)
	}

	var w protoio.Writer
	w.String(fieldClientID, m.clientID.String())
	w.Message(fieldHeader1, h1)
	w.Message(fieldHeader2, h2)
	return w.Bytes(), nil
}

// UnmarshalMisbehaviour decodes an ibc.lightclients.tendermint.v1.Misbehaviour
// and validates it with NewMisbehaviour.
func UnmarshalMisbehaviour(bz []byte, opts ...Option) (*Misbehaviour, error) {
	var (
		rawClientID  string
		rawH1, rawH2 []byte
		hasH1, hasH2 bool
	)
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case fieldClientID:
			rawClientID, err = f.AsString()
		case fieldHeader1:
			rawH1, err = f.AsMessage()
			hasH1 = true
		case fieldHeader2:
			rawH2, err = f.AsMessage()
			hasH2 = true
		}
		return err
	})
	if err != nil {
		return nil, ErrDecode{Reason: err}
	}

	clientID, err := host.ParseClientID(rawClientID)
	if err != nil {
		return nil, ErrInvalidRawClientID{ClientID: rawClientID, Err: err}
	}

	if !hasH1 {
		return nil, ErrMissingHeader{Header: 1}
	}
	h1, err := UnmarshalHeader(rawH1)
	if err != nil {
		return nil, err
	}
	if !hasH2 {
		return nil, ErrMissingHeader{Header: 2}
	}
	h2, err := UnmarshalHeader(rawH2)
	if err != nil {
		return nil, err
	}

	return NewMisbehaviour(clientID, h1, h2, opts...)
}

// ToAny wraps the evidence in a google.protobuf.Any. Evidence that passed
// validation always encodes, so a failure here panics.
func (m *Misbehaviour) ToAny() *gogotypes.Any {
	bz, err := m.Marshal()
	if err != nil {
		panic(fmt.Sprintf("encoding misbehaviour: %v", err))
	}
	return &gogotypes.Any{
		TypeUrl: MisbehaviourTypeURL,
		Value:   bz,
	}
}

// MisbehaviourFromAny decodes env if its type URL is MisbehaviourTypeURL and
// fails with client.ErrUnknownMisbehaviourType otherwise.
func MisbehaviourFromAny(env *gogotypes.Any, opts ...Option) (*Misbehaviour, error) {
	if env == nil {
		return nil, client.ErrUnknownMisbehaviourType{}
	}
	if env.TypeUrl != MisbehaviourTypeURL {
		return nil, client.ErrUnknownMisbehaviourType{Type: env.TypeUrl}
	}
	return UnmarshalMisbehaviour(env.Value, opts...)
}

// EncodeEnvelope returns the encoded google.protobuf.Any of the evidence.
func (m *Misbehaviour) EncodeEnvelope() []byte {
	bz, err := m.ToAny().Marshal()
	if err != nil {
		panic(fmt.Sprintf("encoding misbehaviour envelope: %v", err))
	}
	return bz
}

// DecodeEnvelope decodes an encoded google.protobuf.Any holding
// Tendermint misbehaviour. Bytes that are not an Any fail with an ErrDecode
// wrapping client.ErrMalformedEnvelope, as MisbehaviourRegistry does.
func DecodeEnvelope(bz []byte, opts ...Option) (*Misbehaviour, error) {
	var env gogotypes.Any
	if err := env.Unmarshal(bz); err != nil {
		return nil, ErrDecode{Reason: client.ErrMalformedEnvelope{Reason: err}}
	}
	return MisbehaviourFromAny(&env, opts...)
}

// RegisterMisbehaviour registers the Tendermint decoder with reg. The
// options apply to every decoded value.
func RegisterMisbehaviour(reg *client.MisbehaviourRegistry, opts ...Option) error {
	return reg.Register(MisbehaviourTypeURL, func(value []byte) (client.Misbehaviour, error) {
		m, err := UnmarshalMisbehaviour(value, opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}
