//go:build !embedded

package embedded

// Normal builds carry no release.

func getVersion() string {
	return ""
}

func getZipData() []byte {
	return nil
}
