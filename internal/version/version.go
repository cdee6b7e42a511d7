package version

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformed is returned by ParseStrict and LoadFile when a version string
// is not three dot-separated non-negative integers.
var ErrMalformed = errors.New("malformed version")

// Zero is the version a malformed string parses to under Parse.
var Zero = Code{}

// Code is a major.minor.subMinor version. Only equality matters; there is no ordering.
type Code struct {
	Major    int
	Minor    int
	SubMinor int
}

// String returns the version as "major.minor.subMinor"
func (c Code) String() string {
	return fmt.Sprintf("%d.%d.%d", c.Major, c.Minor, c.SubMinor)
}

// DiffersFrom reports whether any component of c differs from other
func (c Code) DiffersFrom(other Code) bool {
	return c.Major != other.Major || c.Minor != other.Minor || c.SubMinor != other.SubMinor
}

// Parse reads a version leniently: anything other than exactly three
// non-negative integer tokens yields Zero.
func Parse(text string) Code {
	c, err := ParseStrict(text)
	if err != nil {
		return Zero
	}
	return c
}

// ParseStrict reads a version and reports malformed input instead of coercing it.
func ParseStrict(text string) (Code, error) {
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) != 3 {
		return Zero, fmt.Errorf("%w: %q (expected major.minor.subMinor)", ErrMalformed, text)
	}

	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Zero, fmt.Errorf("%w: %q: %v", ErrMalformed, text, err)
		}
		if n < 0 {
			return Zero, fmt.Errorf("%w: %q: negative component", ErrMalformed, text)
		}
		nums[i] = n
	}

	return Code{Major: nums[0], Minor: nums[1], SubMinor: nums[2]}, nil
}

// LoadFile reads the version recorded in a version file. A missing file
// yields an error matching fs.ErrNotExist; unparseable content yields ErrMalformed.
func LoadFile(path string) (Code, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Zero, fmt.Errorf("failed to read local version: %w", err)
	}

	c, err := ParseStrict(string(data))
	if err != nil {
		return Zero, fmt.Errorf("failed to parse local version: %w", err)
	}

	return c, nil
}

// SaveFile writes the formatted version to path, creating its directory
func SaveFile(path string, c Code) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create version directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(c.String()), 0644); err != nil {
		return fmt.Errorf("failed to write version file: %w", err)
	}

	return nil
}
