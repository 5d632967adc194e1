package commands

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	formatHex    = "hex"
	formatBase64 = "base64"
	formatRaw    = "raw"
)

func encodeEnvelope(bz []byte, format string) ([]byte, error) {
	switch format {
	case formatHex:
		return []byte(hex.EncodeToString(bz) + "\n"), nil
	case formatBase64:
		return []byte(base64.StdEncoding.EncodeToString(bz) + "\n"), nil
	case formatRaw:
		return bz, nil
	default:
		return nil, fmt.Errorf("unknown format %q (must be hex, base64 or raw)", format)
	}
}

func decodeEnvelope(bz []byte, format string) ([]byte, error) {
	switch format {
	case formatHex:
		return hex.DecodeString(string(bytes.TrimSpace(bz)))
	case formatBase64:
		return base64.StdEncoding.DecodeString(string(bytes.TrimSpace(bz)))
	case formatRaw:
		return bz, nil
	default:
		return nil, fmt.Errorf("unknown format %q (must be hex, base64 or raw)", format)
	}
}
