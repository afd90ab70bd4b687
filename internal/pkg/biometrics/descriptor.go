// Package biometrics implements facial-descriptor matching for
// registration duplicate detection and login/vote identity verification.
package biometrics

import (
	"encoding/binary"
	"errors"
	"math"
)

// DescriptorLength is the dimensionality produced by the capture layer.
// Stored descriptors may in principle have other lengths; comparisons
// between mismatched lengths never match.
const DescriptorLength = 128

// ErrMalformedDescriptor is returned when a packed buffer cannot be decoded.
var ErrMalformedDescriptor = errors.New("malformed descriptor buffer")

// Descriptor is a fixed-length facial biometric signature.
type Descriptor []float64

// Encode packs the descriptor into a byte buffer for BYTEA storage,
// 8 bytes per element, big-endian IEEE 754.
func (d Descriptor) Encode() []byte {
	buf := make([]byte, 8*len(d))
	for i, v := range d {
		binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// DecodeDescriptor unpacks a stored byte buffer into a Descriptor.
func DecodeDescriptor(buf []byte) (Descriptor, error) {
	if len(buf)%8 != 0 {
		return nil, ErrMalformedDescriptor
	}
	d := make(Descriptor, len(buf)/8)
	for i := range d {
		d[i] = math.Float64frombits(binary.BigEndian.Uint64(buf[i*8:]))
	}
	return d, nil
}
