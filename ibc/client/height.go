package client

import (
	"fmt"
	"strconv"
	"strings"
)

// Height is a monotonically increasing block height across chain upgrades.
// Heights compare by revision number first, then by revision height.
type Height struct {
	RevisionNumber uint64 `json:"revision_number,string"`
	RevisionHeight uint64 `json:"revision_height,string"`
}

// NewHeight is a constructor for the Height type.
func NewHeight(revisionNumber, revisionHeight uint64) Height {
	return Height{
		RevisionNumber: revisionNumber,
		RevisionHeight: revisionHeight,
	}
}

// Compare returns -1, 0 or 1 when h is lower than, equal to or greater than
// other.
func (h Height) Compare(other Height) int {
	switch {
	case h.RevisionNumber < other.RevisionNumber:
		return -1
	case h.RevisionNumber > other.RevisionNumber:
		return 1
	case h.RevisionHeight < other.RevisionHeight:
		return -1
	case h.RevisionHeight > other.RevisionHeight:
		return 1
	default:
		return 0
	}
}

func (h Height) LT(other Height) bool  { return h.Compare(other) < 0 }
func (h Height) LTE(other Height) bool { return h.Compare(other) <= 0 }
func (h Height) GT(other Height) bool  { return h.Compare(other) > 0 }
func (h Height) GTE(other Height) bool { return h.Compare(other) >= 0 }
func (h Height) EQ(other Height) bool  { return h.Compare(other) == 0 }

// IsZero returns true if both revision number and height are zero.
func (h Height) IsZero() bool {
	return h.RevisionNumber == 0 && h.RevisionHeight == 0
}

// String returns "{revision number}-{revision height}".
func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

// ParseHeight is the inverse of Height.String.
func ParseHeight(s string) (Height, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Height{}, fmt.Errorf("expected height in the form {revision}-{height}, got %q", s)
	}
	number, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return Height{}, fmt.Errorf("invalid revision number in %q: %w", s, err)
	}
	height, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return Height{}, fmt.Errorf("invalid revision height in %q: %w", s, err)
	}
	return NewHeight(number, height), nil
}
