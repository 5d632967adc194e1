package protoio

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Writer appends protobuf wire-format fields to an internal buffer. Scalar
// helpers follow proto3 semantics and omit zero values; Message always
// writes the field so non-nullable embedded messages survive a round trip.
type Writer struct {
	buf []byte
}

// Bytes returns the encoded fields written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) Uint64(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.VarintType)
	w.buf = protowire.AppendVarint(w.buf, v)
}

func (w *Writer) Int64(num protowire.Number, v int64) {
	w.Uint64(num, uint64(v))
}

// Int32 encodes v the way protobuf encodes int32: negative values are sign
// extended to ten bytes.
func (w *Writer) Int32(num protowire.Number, v int32) {
	w.Uint64(num, uint64(int64(v)))
}

func (w *Writer) SFixed64(num protowire.Number, v int64) {
	if v == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.Fixed64Type)
	w.buf = protowire.AppendFixed64(w.buf, uint64(v))
}

func (w *Writer) RawBytes(num protowire.Number, bz []byte) {
	if len(bz) == 0 {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, bz)
}

func (w *Writer) String(num protowire.Number, s string) {
	if s == "" {
		return
	}
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendString(w.buf, s)
}

// Message writes an embedded message, even when bz is empty.
func (w *Writer) Message(num protowire.Number, bz []byte) {
	w.buf = protowire.AppendTag(w.buf, num, protowire.BytesType)
	w.buf = protowire.AppendBytes(w.buf, bz)
}

// MarshalDelimited prefixes bz with its uvarint encoded length.
func MarshalDelimited(bz []byte) []byte {
	out := protowire.AppendVarint(make([]byte, 0, protowire.SizeVarint(uint64(len(bz)))+len(bz)), uint64(len(bz)))
	return append(out, bz...)
}
