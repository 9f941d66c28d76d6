package boot

import (
	"fmt"
	"strings"
)

const (
	identLen = 12
	versLen  = 4
)

// Variant selects the identification tags embedded in the
// container header. The loader compares them against its
// own build, so the tags must match the loader flavor the
// container is meant for.
type Variant struct {
	// Ident is the 12-byte identification tag, zero
	// padded.
	Ident [identLen]byte

	// Vers is the 4-byte version tag.
	Vers [versLen]byte
}

// InsaneBoot tags containers for the stock SX loader.
var InsaneBoot = Variant{
	Ident: identTag("Insane BOOT\x00"),
	Vers:  versTag("V1.0"),
}

// CTCaerBoot tags containers for hekate-compatible
// loaders.
var CTCaerBoot = Variant{
	Ident: identTag("CTCaer BOOT\x00"),
	Vers:  versTag("V2.5"),
}

// VariantByName returns the preset for a configuration
// name. Known names are "insane" and "ctcaer".
// Pattern: Factory -- selects loader preset at runtime.
func VariantByName(name string) (Variant, error) {
	const errCtx = "selecting variant"

	switch name {
	case "insane":
		return InsaneBoot, nil
	case "ctcaer":
		return CTCaerBoot, nil
	default:
		return Variant{}, fmt.Errorf(
			"%s: unknown variant %q", errCtx, name,
		)
	}
}

// String returns the tags joined for log output, e.g.
// "Insane BOOT V1.0".
func (vr Variant) String() string {
	ident := strings.TrimRight(string(vr.Ident[:]), "\x00")

	return ident + " " + string(vr.Vers[:])
}

// identTag copies a literal tag into an ident field,
// zero padding the remainder.
func identTag(tag string) (id [identLen]byte) {
	copy(id[:], tag)

	return id
}

// versTag copies a literal tag into a vers field.
func versTag(tag string) (vs [versLen]byte) {
	copy(vs[:], tag)

	return vs
}
