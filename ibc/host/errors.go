package host

import "fmt"

// ErrInvalidClientID is returned when a string is not a valid ICS-24 client
// identifier.
type ErrInvalidClientID struct {
	ID     string
	Reason string
}

func (e ErrInvalidClientID) Error() string {
	return fmt.Sprintf("invalid client identifier %q: %s", e.ID, e.Reason)
}

// ErrInvalidChainID is returned when a string is not a valid chain
// identifier.
type ErrInvalidChainID struct {
	ID     string
	Reason string
}

func (e ErrInvalidChainID) Error() string {
	return fmt.Sprintf("invalid chain identifier %q: %s", e.ID, e.Reason)
}
