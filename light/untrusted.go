package light

import "github.com/tendermint/ics07/types"

// UntrustedBlockState is the view of a block that commit validation works
// on. Nothing in it has been checked.
type UntrustedBlockState struct {
	SignedHeader   *types.SignedHeader
	Validators     *types.ValidatorSet
	NextValidators *types.ValidatorSet // optional
}
