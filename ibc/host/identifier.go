package host

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	MinClientIDLen = 9
	MaxClientIDLen = 64

	MaxChainIDLen = 50
)

// ClientID identifies a light client on the host chain, e.g.
// "07-tendermint-0".
type ClientID string

// ParseClientID validates s against the ICS-24 identifier rules: between 9
// and 64 characters drawn from [a-zA-Z0-9._+-#[]<>].
func ParseClientID(s string) (ClientID, error) {
	if n := len(s); n < MinClientIDLen || n > MaxClientIDLen {
		return "", ErrInvalidClientID{
			ID:     s,
			Reason: fmt.Sprintf("length %d is outside [%d, %d]", n, MinClientIDLen, MaxClientIDLen),
		}
	}
	for i, c := range s {
		if !isIdentifierChar(c) {
			return "", ErrInvalidClientID{
				ID:     s,
				Reason: fmt.Sprintf("invalid character %q at position %d", c, i),
			}
		}
	}
	return ClientID(s), nil
}

// MustParseClientID is like ParseClientID but panics on error.
func MustParseClientID(s string) ClientID {
	id, err := ParseClientID(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ClientID) String() string {
	return string(id)
}

func isIdentifierChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.ContainsRune("._+-#[]<>", c)
}

// ChainID identifies a Tendermint chain. A chain id ending in "-{N}", with N
// a number without leading zeros, carries revision N.
type ChainID string

// ParseChainID checks s is between 1 and 50 characters and has no
// whitespace.
func ParseChainID(s string) (ChainID, error) {
	if s == "" {
		return "", ErrInvalidChainID{ID: s, Reason: "empty"}
	}
	if len(s) > MaxChainIDLen {
		return "", ErrInvalidChainID{
			ID:     s,
			Reason: fmt.Sprintf("length %d exceeds %d", len(s), MaxChainIDLen),
		}
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", ErrInvalidChainID{ID: s, Reason: "contains whitespace"}
	}
	return ChainID(s), nil
}

func (id ChainID) String() string {
	return string(id)
}

// Revision returns the revision number encoded in the chain id, or 0 if
// there is none.
func (id ChainID) Revision() uint64 {
	return RevisionFromChainID(string(id))
}

// RevisionFromChainID parses the revision number out of an unvalidated
// chain id, e.g. 4 for "cosmoshub-4" and 0 for "testing".
func RevisionFromChainID(chainID string) uint64 {
	i := strings.LastIndexByte(chainID, '-')
	if i <= 0 || i == len(chainID)-1 {
		return 0
	}
	suffix := chainID[i+1:]
	if suffix[0] == '0' {
		return 0
	}
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0
		}
	}
	revision, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0
	}
	return revision
}

// FormatChainID builds the chain id of revision `revision` of chain `name`.
func FormatChainID(name string, revision uint64) string {
	return fmt.Sprintf("%s-%d", name, revision)
}
