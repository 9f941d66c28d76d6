package boot

// Exported aliases for testing internal types and
// functions from boot_test package.

// Header is an alias for header.
type Header = header

// PrefixForTest exposes header.prefix.
func PrefixForTest(hd Header) ([]byte, error) {
	return hd.prefix()
}

// FitsSizeFieldForTest exposes fitsSizeField.
var FitsSizeFieldForTest = fitsSizeField

// PrefixSize exposes prefixSize.
const PrefixSize = prefixSize
