package light

import (
	"github.com/tendermint/ics07/types"
)

//go:generate mockery --case underscore --name Hasher

// Hasher computes the hashes a header commits to. Alternative consensus hash
// schemes plug in here.
type Hasher interface {
	HashValidatorSet(vals *types.ValidatorSet) []byte
	HashHeader(h *types.Header) []byte
}

// ProdHasher hashes following the Tendermint rules: the merkle root of the
// validators' simple encodings, and the merkle root of the header fields.
type ProdHasher struct{}

var _ Hasher = ProdHasher{}

// HashValidatorSet returns nil for a nil set.
func (ProdHasher) HashValidatorSet(vals *types.ValidatorSet) []byte {
	if vals == nil {
		return nil
	}
	return vals.Hash()
}

func (ProdHasher) HashHeader(h *types.Header) []byte {
	return h.Hash()
}
