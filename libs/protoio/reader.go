package protoio

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field is a single decoded protobuf field. Varint, fixed32 and fixed64
// values are held in Scalar; length-delimited values in Value, which
// aliases the input buffer.
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Scalar uint64
	Value  []byte
}

// ReadFields walks every field in bz in order and calls fn for each one.
// Groups are skipped. Callers ignore field numbers they do not know, which
// gives the usual protobuf forward compatibility.
func ReadFields(bz []byte, fn func(f Field) error) error {
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return fmt.Errorf("invalid field tag: %w", protowire.ParseError(n))
		}
		bz = bz[n:]

		f := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			f.Scalar, n = protowire.ConsumeVarint(bz)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(bz)
			f.Scalar = uint64(v)
		case protowire.Fixed64Type:
			f.Scalar, n = protowire.ConsumeFixed64(bz)
		case protowire.BytesType:
			f.Value, n = protowire.ConsumeBytes(bz)
		default:
			n = protowire.ConsumeFieldValue(num, typ, bz)
		}
		if n < 0 {
			return fmt.Errorf("invalid field %d: %w", num, protowire.ParseError(n))
		}
		bz = bz[n:]

		if typ == protowire.StartGroupType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

func (f Field) expect(typ protowire.Type) error {
	if f.Type != typ {
		return fmt.Errorf("field %d: unexpected wire type %d, want %d", f.Num, f.Type, typ)
	}
	return nil
}

func (f Field) AsUint64() (uint64, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return f.Scalar, nil
}

func (f Field) AsInt64() (int64, error) {
	v, err := f.AsUint64()
	return int64(v), err
}

func (f Field) AsInt32() (int32, error) {
	v, err := f.AsInt64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("field %d: value %d overflows int32", f.Num, v)
	}
	return int32(v), nil
}

func (f Field) AsUint32() (uint32, error) {
	v, err := f.AsUint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("field %d: value %d overflows uint32", f.Num, v)
	}
	return uint32(v), nil
}

func (f Field) AsSFixed64() (int64, error) {
	if err := f.expect(protowire.Fixed64Type); err != nil {
		return 0, err
	}
	return int64(f.Scalar), nil
}

// AsBytes returns a copy of a length-delimited value.
func (f Field) AsBytes() ([]byte, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	if len(f.Value) == 0 {
		return nil, nil
	}
	bz := make([]byte, len(f.Value))
	copy(bz, f.Value)
	return bz, nil
}

func (f Field) AsString() (string, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.Value), nil
}

// AsMessage returns the raw bytes of an embedded message without copying.
func (f Field) AsMessage() ([]byte, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	return f.Value, nil
}
