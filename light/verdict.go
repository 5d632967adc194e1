package light

import "fmt"

// VerdictKind classifies the outcome of a commit check.
type VerdictKind int

const (
	VerdictSuccess VerdictKind = iota
	VerdictInvalid
	VerdictNotEnoughTrust
)

func (k VerdictKind) String() string {
	switch k {
	case VerdictSuccess:
		return "success"
	case VerdictInvalid:
		return "invalid"
	case VerdictNotEnoughTrust:
		return "not_enough_trust"
	default:
		return fmt.Sprintf("VerdictKind(%d)", int(k))
	}
}

// Verdict is the result of a CommitValidator check. Reason is nil on
// success and set otherwise.
type Verdict struct {
	Kind   VerdictKind
	Reason error
}

// Success returns a successful verdict.
func Success() Verdict {
	return Verdict{Kind: VerdictSuccess}
}

// Invalid returns a verdict rejecting a malformed commit.
func Invalid(reason error) Verdict {
	return Verdict{Kind: VerdictInvalid, Reason: reason}
}

// NotEnoughTrust returns a verdict rejecting a commit lacking voting power.
func NotEnoughTrust(reason error) Verdict {
	return Verdict{Kind: VerdictNotEnoughTrust, Reason: reason}
}

// IsSuccess reports whether the check passed.
func (v Verdict) IsSuccess() bool {
	return v.Kind == VerdictSuccess
}

// Err converts the verdict into an error: nil on success, ErrInvalidCommit
// or ErrNotEnoughTrust otherwise.
func (v Verdict) Err() error {
	switch v.Kind {
	case VerdictSuccess:
		return nil
	case VerdictNotEnoughTrust:
		return ErrNotEnoughTrust{Reason: v.Reason}
	default:
		return ErrInvalidCommit{Reason: v.Reason}
	}
}

func (v Verdict) String() string {
	if v.Reason == nil {
		return v.Kind.String()
	}
	return fmt.Sprintf("%v: %v", v.Kind, v.Reason)
}
