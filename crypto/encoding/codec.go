package encoding

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tendermint/ics07/crypto"
	"github.com/tendermint/ics07/crypto/ed25519"
	"github.com/tendermint/ics07/crypto/secp256k1"
	"github.com/tendermint/ics07/libs/protoio"
)

// Field numbers of the tendermint.crypto.PublicKey oneof.
const (
	fieldEd25519   = 1
	fieldSecp256k1 = 2
)

// PubKeyToProto encodes a crypto.PubKey as a tendermint.crypto.PublicKey
// message.
func PubKeyToProto(k crypto.PubKey) ([]byte, error) {
	var w protoio.Writer
	switch k := k.(type) {
	case ed25519.PubKey:
		w.Message(fieldEd25519, k)
	case secp256k1.PubKey:
		w.Message(fieldSecp256k1, k)
	default:
		return nil, fmt.Errorf("toproto: key type %v is not supported", k)
	}
	return w.Bytes(), nil
}

// PubKeyFromProto decodes a tendermint.crypto.PublicKey message.
func PubKeyFromProto(bz []byte) (crypto.PubKey, error) {
	var pk crypto.PubKey
	err := protoio.ReadFields(bz, func(f protoio.Field) error {
		var err error
		switch f.Num {
		case fieldEd25519:
			var raw []byte
			if raw, err = f.AsBytes(); err != nil {
				return err
			}
			if len(raw) != ed25519.PubKeySize {
				return fmt.Errorf("invalid size for PubKeyEd25519. Got %d, expected %d",
					len(raw), ed25519.PubKeySize)
			}
			pk = ed25519.PubKey(raw)
		case fieldSecp256k1:
			var raw []byte
			if raw, err = f.AsBytes(); err != nil {
				return err
			}
			if len(raw) != secp256k1.PubKeySize {
				return fmt.Errorf("invalid size for PubKeySecp256k1. Got %d, expected %d",
					len(raw), secp256k1.PubKeySize)
			}
			pk = secp256k1.PubKey(raw)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, errors.New("fromproto: key type is not supported")
	}
	return pk, nil
}

type pubKeyJSON struct {
	Type  string `json:"type"`
	Value []byte `json:"value"`
}

// PubKeyToJSON encodes k as {"type": <amino name>, "value": <base64>}.
func PubKeyToJSON(k crypto.PubKey) ([]byte, error) {
	var name string
	switch k.(type) {
	case ed25519.PubKey:
		name = ed25519.PubKeyName
	case secp256k1.PubKey:
		name = secp256k1.PubKeyName
	default:
		return nil, fmt.Errorf("tojson: key type %v is not supported", k)
	}
	return json.Marshal(pubKeyJSON{Type: name, Value: k.Bytes()})
}

// PubKeyFromJSON is the inverse of PubKeyToJSON.
func PubKeyFromJSON(bz []byte) (crypto.PubKey, error) {
	var pkj pubKeyJSON
	if err := json.Unmarshal(bz, &pkj); err != nil {
		return nil, err
	}
	switch pkj.Type {
	case ed25519.PubKeyName:
		if len(pkj.Value) != ed25519.PubKeySize {
			return nil, fmt.Errorf("invalid size for PubKeyEd25519. Got %d, expected %d",
				len(pkj.Value), ed25519.PubKeySize)
		}
		return ed25519.PubKey(pkj.Value), nil
	case secp256k1.PubKeyName:
		if len(pkj.Value) != secp256k1.PubKeySize {
			return nil, fmt.Errorf("invalid size for PubKeySecp256k1. Got %d, expected %d",
				len(pkj.Value), secp256k1.PubKeySize)
		}
		return secp256k1.PubKey(pkj.Value), nil
	default:
		return nil, fmt.Errorf("fromjson: key type %q is not supported", pkj.Type)
	}
}
