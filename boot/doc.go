// Package boot builds boot.dat containers for Nintendo Switch payload
// loaders: a fixed 256-byte header followed by the stage-2 payload
// verbatim. The loader verifies both header digests before copying the
// payload to its load address and jumping to it.
//
// Header layout, multi-byte fields little-endian:
//
//	offset  size  field
//	0x00    0x0C  ident     loader identification tag, zero padded
//	0x0C    0x04  vers      loader version tag
//	0x10    0x20  sha2_s2   SHA-256 of the payload
//	0x30    0x04  s2_dst    payload load address
//	0x34    0x04  s2_size   payload length in bytes
//	0x38    0x04  s2_enc    encryption flag, always zero
//	0x3C    0x10  -         reserved, zero
//	0x4C    0x04  s3_size   stage-3 length, always zero
//	0x50    0x90  -         reserved, zero
//	0xE0    0x20  sha2_hdr  SHA-256 of bytes 0x00..0xE0
//
// Two loader variants are known: the stock SX "Insane BOOT" tag and the
// hekate-compatible "CTCaer BOOT" tag. Build accepts either preset, or any
// other Variant value for loaders with different tags.
package boot
