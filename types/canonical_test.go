package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVoteSignBytesTestVectors(t *testing.T) {
	zero := time.Time{}

	tests := []struct {
		chainID string
		vote    CanonicalVote
		want    []byte
	}{
		0: {
			"", CanonicalVote{Timestamp: zero},
			// NOTE: Height and Round are skipped here. This case needs to be considered while parsing.
			[]byte{0xd, 0x2a, 0xb, 0x8, 0x80, 0x92, 0xb8, 0xc3, 0x98, 0xfe, 0xff, 0xff, 0xff, 0x1},
		},
		// with proper (fixed size) height and round (PreCommit):
		1: {
			"", CanonicalVote{Height: 1, Round: 1, Type: PrecommitType, Timestamp: zero},
			[]byte{
				0x21,                                   // length
				0x8,                                    // (field_number << 3) | wire_type
				0x2,                                    // PrecommitType
				0x11,                                   // (field_number << 3) | wire_type
				0x1, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, // height
				0x19,                                   // (field_number << 3) | wire_type
				0x1, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, // round
				0x2a, // (field_number << 3) | wire_type
				// remaining fields (timestamp):
				0xb, 0x8, 0x80, 0x92, 0xb8, 0xc3, 0x98, 0xfe, 0xff, 0xff, 0xff, 0x1},
		},
		// containing non-empty chain_id:
		2: {
			"test_chain_id", CanonicalVote{Height: 1, Round: 1, Timestamp: zero},
			[]byte{
				0x2e,                                   // length
				0x11,                                   // (field_number << 3) | wire_type
				0x1, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, // height
				0x19,                                   // (field_number << 3) | wire_type
				0x1, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, 0x0, // round
				// remaining fields:
				0x2a,                                                                // (field_number << 3) | wire_type
				0xb, 0x8, 0x80, 0x92, 0xb8, 0xc3, 0x98, 0xfe, 0xff, 0xff, 0xff, 0x1, // timestamp
				0x32,                                                                               // (field_number << 3) | wire_type
				0xd, 0x74, 0x65, 0x73, 0x74, 0x5f, 0x63, 0x68, 0x61, 0x69, 0x6e, 0x5f, 0x69, 0x64}, // chainID
		},
		// with a block id:
		3: {
			"", CanonicalVote{
				BlockID:   &CanonicalBlockID{Hash: []byte{0xaa}, PartSetHeader: CanonicalPartSetHeader{Total: 1, Hash: []byte{0xbb}}},
				Timestamp: zero,
			},
			[]byte{
				0x19,           // length
				0x22, 0xa,      // block_id
				0xa, 0x1, 0xaa, // hash
				0x12, 0x5, // part_set_header
				0x8, 0x1, // total
				0x12, 0x1, 0xbb, // hash
				0x2a, 0xb, 0x8, 0x80, 0x92, 0xb8, 0xc3, 0x98, 0xfe, 0xff, 0xff, 0xff, 0x1}, // timestamp
		},
	}
	for i, tc := range tests {
		got := VoteSignBytes(tc.chainID, tc.vote)
		require.Equal(t, tc.want, got, "test case #%v: got unexpected sign bytes for Vote.", i)
	}
}

func TestCanonicalizeBlockID(t *testing.T) {
	require.Nil(t, CanonicalizeBlockID(BlockID{}))

	bid := makeBlockID([]byte{1}, 2, []byte{3})
	cbid := CanonicalizeBlockID(bid)
	require.NotNil(t, cbid)
	require.EqualValues(t, []byte{1}, cbid.Hash)
	require.EqualValues(t, 2, cbid.PartSetHeader.Total)
}
