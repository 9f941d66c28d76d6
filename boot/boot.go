package boot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/byte4ever/bootdat/digest"
)

const (
	// HeaderSize is the fixed length of the container
	// header. The payload starts at this offset.
	HeaderSize = 0x100

	// StageTwoLoadAddr is the address the loader copies
	// the payload to before jumping. Every known loader
	// build expects the same address, so it is a fixed
	// constant rather than a Variant field.
	StageTwoLoadAddr = 0x40010000

	// Version is the library release tag.
	Version = "0.4.0"

	// prefixSize is the span covered by the trailing
	// header digest: every field before sha2_hdr.
	prefixSize = HeaderSize - digest.Size
)

// header mirrors the container header up to the trailing
// digest. Blank fields are the reserved regions;
// binary.Write emits them as zeros.
type header struct {
	Ident          [identLen]byte
	Vers           [versLen]byte
	PayloadDigest  [digest.Size]byte
	LoadAddr       uint32
	PayloadSize    uint32
	Encrypted      uint32
	_              [0x10]byte
	StageThreeSize uint32
	_              [0x90]byte
}

// Build assembles a boot.dat container: the 256-byte
// header followed by payload verbatim. The variant
// selects the ident and vers tags; every other header
// field is fixed by the format. The payload may be empty.
func Build(payload []byte, vr Variant) ([]byte, error) {
	const errCtx = "building boot.dat"

	if !fitsSizeField(uint64(len(payload))) {
		return nil, fmt.Errorf(
			"%s: %d bytes: %w",
			errCtx, len(payload), ErrPayloadTooLarge,
		)
	}

	hd := header{
		Ident:       vr.Ident,
		Vers:        vr.Vers,
		LoadAddr:    StageTwoLoadAddr,
		PayloadSize: uint32(len(payload)),
	}

	ps := digest.Sum(payload)
	if len(ps) != digest.Size {
		return nil, fmt.Errorf(
			"%s: payload digest is %d bytes: %w",
			errCtx, len(ps), ErrDigestSize,
		)
	}

	copy(hd.PayloadDigest[:], ps)

	pre, err := hd.prefix()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	// The header digest covers the serialized prefix
	// bytes, so it is computed after serialization.
	hs := digest.Sum(pre)
	if len(hs) != digest.Size {
		return nil, fmt.Errorf(
			"%s: header digest is %d bytes: %w",
			errCtx, len(hs), ErrDigestSize,
		)
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, pre...)
	out = append(out, hs...)
	out = append(out, payload...)

	return out, nil
}

// prefix serializes the header fields into the exact byte
// sequence the loader hashes, packed little-endian.
func (hd header) prefix() ([]byte, error) {
	const errCtx = "serializing header"

	buf := bytes.NewBuffer(make([]byte, 0, prefixSize))

	if err := binary.Write(
		buf, binary.LittleEndian, hd,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return buf.Bytes(), nil
}

// fitsSizeField reports whether a payload of n bytes can
// be recorded in the 32-bit size field.
func fitsSizeField(n uint64) bool {
	return n <= math.MaxUint32
}
