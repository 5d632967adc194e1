package light

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictErr(t *testing.T) {
	reason := errors.New("boom")

	assert.NoError(t, Success().Err())
	assert.True(t, Success().IsSuccess())
	assert.Equal(t, "success", Success().String())

	invalid := Invalid(reason).Err()
	var errInvalid ErrInvalidCommit
	assert.True(t, errors.As(invalid, &errInvalid))
	assert.ErrorIs(t, invalid, reason)

	notEnough := NotEnoughTrust(reason).Err()
	var errTrust ErrNotEnoughTrust
	assert.True(t, errors.As(notEnough, &errTrust))
	assert.ErrorIs(t, notEnough, reason)
	assert.Equal(t, "not_enough_trust: boom", NotEnoughTrust(reason).String())
}

func TestThresholdArithmetic(t *testing.T) {
	twoThirds := DefaultCommitThreshold
	assert.False(t, exceeds(0, 0, twoThirds))
	assert.False(t, exceeds(2, 3, twoThirds))
	assert.True(t, exceeds(3, 4, twoThirds))
	assert.EqualValues(t, 2, needed(3, twoThirds))
	assert.EqualValues(t, 26, needed(40, twoThirds))

	// products beyond int64 must not wrap around
	huge := int64(1) << 60
	assert.True(t, exceeds(huge, huge, twoThirds))
	assert.False(t, exceeds(huge/2, huge, twoThirds))
	assert.EqualValues(t, huge/3*2, needed(huge, twoThirds))
}
