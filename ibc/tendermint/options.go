package tendermint

import (
	"github.com/tendermint/ics07/libs/log"
	"github.com/tendermint/ics07/light"
)

// Option sets a parameter of evidence validation.
type Option func(*verifier)

// WithHasher replaces the Tendermint hashing rules.
func WithHasher(h light.Hasher) Option {
	return func(v *verifier) {
		v.hasher = h
	}
}

// WithCommitValidator replaces the default commit validator, which requires
// more than 2/3 of the voting power.
func WithCommitValidator(cv light.CommitValidator) Option {
	return func(v *verifier) {
		v.commitValidator = cv
	}
}

// WithLogger sets the logger. Rejections are logged at debug level.
func WithLogger(l log.Logger) Option {
	return func(v *verifier) {
		v.logger = l
	}
}

// WithMetrics sets the metrics.
func WithMetrics(m *Metrics) Option {
	return func(v *verifier) {
		v.metrics = m
	}
}

type verifier struct {
	hasher          light.Hasher
	commitValidator light.CommitValidator
	logger          log.Logger
	metrics         *Metrics
}

func newVerifier(opts []Option) *verifier {
	v := &verifier{
		hasher:          light.ProdHasher{},
		commitValidator: light.DefaultCommitValidator(),
		logger:          log.NewNopLogger(),
		metrics:         NopMetrics(),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}
