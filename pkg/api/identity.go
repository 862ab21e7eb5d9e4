package api

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// ClientID is a fingerprint of a client's configuration, used to correlate
// log lines and compare clients. It carries no security meaning.
type ClientID uint64

// String renders the identity as fixed-width hex.
func (id ClientID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Bytes returns the big-endian encoding of the identity.
func (id ClientID) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(id))
}

// NewClientID derives an identity from the given parts. Each part is length
// prefixed so ("ab", "c") and ("a", "bc") differ.
func NewClientID(parts ...[]byte) ClientID {
	hasher := blake3.New()

	var prefix [8]byte
	for _, part := range parts {
		binary.BigEndian.PutUint64(prefix[:], uint64(len(part)))
		_, _ = hasher.Write(prefix[:])
		_, _ = hasher.Write(part)
	}

	sum := hasher.Sum(nil)

	return ClientID(binary.BigEndian.Uint64(sum[:8]))
}
