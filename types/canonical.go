package types

import (
	"time"

	gogotypes "github.com/gogo/protobuf/types"

	tmbytes "github.com/tendermint/ics07/libs/bytes"
	"github.com/tendermint/ics07/libs/protoio"
)

// SignedMsgType is a type of signed message in the consensus.
type SignedMsgType int32

const (
	// PrevoteType is the type of a prevote message.
	PrevoteType SignedMsgType = 1
	// PrecommitType is the type of a precommit message. Commits are built
	// exclusively out of precommits.
	PrecommitType SignedMsgType = 2
)

// Canonical* wraps the structs in types for amino encoding them for use in SignBytes / the Signable interface.

// CanonicalPartSetHeader is the canonical form of a PartSetHeader.
type CanonicalPartSetHeader struct {
	Total uint32
	Hash  tmbytes.HexBytes
}

// CanonicalBlockID is the canonical form of a BlockID.
type CanonicalBlockID struct {
	Hash          tmbytes.HexBytes
	PartSetHeader CanonicalPartSetHeader
}

// CanonicalVote is the structure validators sign over when precommitting
// to a block.
type CanonicalVote struct {
	Type      SignedMsgType
	Height    int64
	Round     int64
	BlockID   *CanonicalBlockID
	Timestamp time.Time
	ChainID   string
}

// CanonicalizeBlockID returns nil for a nil BlockID so that votes for nil
// omit the block_id field entirely.
func CanonicalizeBlockID(bid BlockID) *CanonicalBlockID {
	if bid.IsNil() {
		return nil
	}
	return &CanonicalBlockID{
		Hash: bid.Hash,
		PartSetHeader: CanonicalPartSetHeader{
			Total: bid.PartSetHeader.Total,
			Hash:  bid.PartSetHeader.Hash,
		},
	}
}

func (psh CanonicalPartSetHeader) toProto() []byte {
	var w protoio.Writer
	w.Uint64(1, uint64(psh.Total))
	w.RawBytes(2, psh.Hash)
	return w.Bytes()
}

func (bid CanonicalBlockID) toProto() []byte {
	var w protoio.Writer
	w.RawBytes(1, bid.Hash)
	w.Message(2, bid.PartSetHeader.toProto())
	return w.Bytes()
}

func (vote CanonicalVote) toProto() []byte {
	var w protoio.Writer
	w.Int64(1, int64(vote.Type))
	w.SFixed64(2, vote.Height)
	w.SFixed64(3, vote.Round)
	if vote.BlockID != nil {
		w.Message(4, vote.BlockID.toProto())
	}
	ts, err := gogotypes.StdTimeMarshal(vote.Timestamp)
	if err != nil {
		panic(err)
	}
	w.Message(5, ts)
	w.String(6, vote.ChainID)
	return w.Bytes()
}

// VoteSignBytes returns the length-delimited protobuf encoding of the
// canonical vote. This is the message a validator signs.
//
// Panics if the timestamp is outside the range protobuf can represent.
func VoteSignBytes(chainID string, vote CanonicalVote) []byte {
	vote.ChainID = chainID
	return protoio.MarshalDelimited(vote.toProto())
}
