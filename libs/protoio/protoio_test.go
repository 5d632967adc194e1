package protoio_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tendermint/ics07/libs/protoio"
)

func TestWriterOmitsZeroScalars(t *testing.T) {
	var w protoio.Writer
	w.Uint64(1, 0)
	w.Int64(2, 0)
	w.SFixed64(3, 0)
	w.RawBytes(4, nil)
	w.String(5, "")
	assert.Empty(t, w.Bytes())

	w.Message(6, nil)
	assert.Equal(t, []byte{0x32, 0x00}, w.Bytes())
}

func TestWriterReaderRoundTrip(t *testing.T) {
	var inner protoio.Writer
	inner.String(1, "nested")

	var w protoio.Writer
	w.Uint64(1, 42)
	w.Int64(2, -7)
	w.Int32(3, -1)
	w.SFixed64(4, math.MinInt64)
	w.RawBytes(5, []byte{0xde, 0xad})
	w.String(6, "chain-1")
	w.Message(7, inner.Bytes())

	seen := map[protowire.Number]bool{}
	err := protoio.ReadFields(w.Bytes(), func(f protoio.Field) error {
		seen[f.Num] = true
		switch f.Num {
		case 1:
			v, err := f.AsUint64()
			require.NoError(t, err)
			assert.EqualValues(t, 42, v)
		case 2:
			v, err := f.AsInt64()
			require.NoError(t, err)
			assert.EqualValues(t, -7, v)
		case 3:
			v, err := f.AsInt32()
			require.NoError(t, err)
			assert.EqualValues(t, -1, v)
		case 4:
			v, err := f.AsSFixed64()
			require.NoError(t, err)
			assert.EqualValues(t, int64(math.MinInt64), v)
		case 5:
			v, err := f.AsBytes()
			require.NoError(t, err)
			assert.Equal(t, []byte{0xde, 0xad}, v)
		case 6:
			v, err := f.AsString()
			require.NoError(t, err)
			assert.Equal(t, "chain-1", v)
		case 7:
			bz, err := f.AsMessage()
			require.NoError(t, err)
			return protoio.ReadFields(bz, func(f protoio.Field) error {
				s, err := f.AsString()
				assert.Equal(t, "nested", s)
				return err
			})
		}
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 7)
}

func TestReadFieldsSkipsUnknownAndRejectsTruncated(t *testing.T) {
	var w protoio.Writer
	w.String(99, "unknown to the caller")
	w.Uint64(1, 5)

	var got uint64
	require.NoError(t, protoio.ReadFields(w.Bytes(), func(f protoio.Field) error {
		if f.Num == 1 {
			var err error
			got, err = f.AsUint64()
			return err
		}
		return nil
	}))
	assert.EqualValues(t, 5, got)

	bz := w.Bytes()
	err := protoio.ReadFields(bz[:3], func(protoio.Field) error { return nil })
	require.Error(t, err)
}

func TestFieldWireTypeMismatch(t *testing.T) {
	var w protoio.Writer
	w.String(1, "not a varint")
	err := protoio.ReadFields(w.Bytes(), func(f protoio.Field) error {
		_, err := f.AsUint64()
		return err
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected wire type")
}

func TestMarshalDelimited(t *testing.T) {
	bz := protoio.MarshalDelimited([]byte{1, 2, 3})
	assert.Equal(t, []byte{3, 1, 2, 3}, bz)
}
