package client

import (
	"fmt"
	"sort"
	"sync"

	gogotypes "github.com/gogo/protobuf/types"

	"github.com/tendermint/ics07/ibc/host"
)

// Misbehaviour is validated evidence that a counterparty chain misbehaved,
// submitted to freeze the light client that tracks it.
type Misbehaviour interface {
	ClientType() string
	ClientID() host.ClientID
	// Height at which the misbehaviour happened.
	Height() Height
	String() string
}

// ErrUnknownMisbehaviourType is returned when an envelope's type URL has no
// registered decoder.
type ErrUnknownMisbehaviourType struct {
	Type string
}

func (e ErrUnknownMisbehaviourType) Error() string {
	return fmt.Sprintf("unknown misbehaviour type: %s", e.Type)
}

// ErrMalformedEnvelope means the bytes are not an encoded google.protobuf.Any.
type ErrMalformedEnvelope struct {
	Reason error
}

func (e ErrMalformedEnvelope) Error() string {
	return fmt.Sprintf("decoding envelope: %v", e.Reason)
}

func (e ErrMalformedEnvelope) Unwrap() error {
	return e.Reason
}

// MisbehaviourDecoder decodes and validates the payload of an envelope.
type MisbehaviourDecoder func(value []byte) (Misbehaviour, error)

// MisbehaviourRegistry dispatches envelopes to decoders by type URL. It is
// safe for concurrent use.
type MisbehaviourRegistry struct {
	mtx      sync.RWMutex
	decoders map[string]MisbehaviourDecoder
}

func NewMisbehaviourRegistry() *MisbehaviourRegistry {
	return &MisbehaviourRegistry{decoders: make(map[string]MisbehaviourDecoder)}
}

// Register adds a decoder. Registering the same type URL twice is an error.
func (r *MisbehaviourRegistry) Register(typeURL string, dec MisbehaviourDecoder) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.decoders[typeURL]; ok {
		return fmt.Errorf("misbehaviour type %s is already registered", typeURL)
	}
	r.decoders[typeURL] = dec
	return nil
}

// TypeURLs returns the registered type URLs in sorted order.
func (r *MisbehaviourRegistry) TypeURLs() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	urls := make([]string, 0, len(r.decoders))
	for url := range r.decoders {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Decode dispatches env to the decoder registered for its type URL. The
// value is not inspected when the type is unknown.
func (r *MisbehaviourRegistry) Decode(env *gogotypes.Any) (Misbehaviour, error) {
	if env == nil {
		return nil, ErrUnknownMisbehaviourType{}
	}
	r.mtx.RLock()
	dec, ok := r.decoders[env.TypeUrl]
	r.mtx.RUnlock()

	if !ok {
		return nil, ErrUnknownMisbehaviourType{Type: env.TypeUrl}
	}
	return dec(env.Value)
}

// DecodeEnvelope unmarshals a google.protobuf.Any and decodes it.
func (r *MisbehaviourRegistry) DecodeEnvelope(bz []byte) (Misbehaviour, error) {
	var env gogotypes.Any
	if err := env.Unmarshal(bz); err != nil {
		return nil, ErrMalformedEnvelope{Reason: err}
	}
	return r.Decode(&env)
}
