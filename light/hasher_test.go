package light_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tendermint/ics07/internal/test/factory"
	"github.com/tendermint/ics07/light"
)

func TestProdHasher(t *testing.T) {
	keys := factory.GenPrivKeys(3)
	vals := keys.ToValidators(t, 10, 1)
	sh := keys.GenSignedHeader(t, chainID, 9, factory.DefaultTime, vals, vals, 0, 3)

	var h light.Hasher = light.ProdHasher{}
	assert.Equal(t, []byte(sh.ValidatorsHash), h.HashValidatorSet(vals))
	assert.Equal(t, []byte(sh.Commit.BlockID.Hash), h.HashHeader(sh.Header))
	assert.Nil(t, h.HashValidatorSet(nil))
}
