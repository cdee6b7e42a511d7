//go:build embedded

package embedded

import (
	_ "embed"
)

// Bundled release files. To build an offline launcher:
//   1. Place game.zip and Version.txt in internal/embedded/release/
//   2. Run: go build -tags embedded

//go:embed release/game.zip
var embeddedZip []byte

//go:embed release/Version.txt
var embeddedVersion string

func getVersion() string {
	return embeddedVersion
}

func getZipData() []byte {
	return embeddedZip
}
