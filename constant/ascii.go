package constant

import _ "embed"

// AsciiArtLogo is the banner printed on top of the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string
