package version

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestCodeString(t *testing.T) {
	tests := []struct {
		name     string
		version  Code
		expected string
	}{
		{
			name:     "basic version",
			version:  Code{Major: 1, Minor: 2, SubMinor: 3},
			expected: "1.2.3",
		},
		{
			name:     "zero version",
			version:  Code{},
			expected: "0.0.0",
		},
		{
			name:     "double digit components",
			version:  Code{Major: 10, Minor: 25, SubMinor: 12},
			expected: "10.25.12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.version.String()
			if got != tt.expected {
				t.Errorf("Code.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3", "1.2.3"},
		{"0.0.0", "0.0.0"},
		{"10.20.30", "10.20.30"},
		{"01.002.3", "1.2.3"},
		{"1.2.3\n", "1.2.3"},
		{" 4 . 5 . 6 ", "4.5.6"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input).String()
			if got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
			if again := Parse(got); again != Parse(tt.input) {
				t.Errorf("Parse(String()) = %v, want %v", again, Parse(tt.input))
			}
		})
	}
}

// Malformed input coerces to 0.0.0 under Parse. ParseStrict must flag the
// same inputs so a corrupt version file is not mistaken for a real 0.0.0.
func TestParseMalformedFallsBackToZero(t *testing.T) {
	malformed := []string{
		"",
		"1.2",
		"1.2.3.4",
		"x.2.3",
		"1.y.3",
		"1.2.z",
		"1..3",
		"-1.2.3",
		"v1.2.3",
		"1.2.3-beta",
		"99999999999999999999.0.0",
	}

	for _, s := range malformed {
		t.Run(s, func(t *testing.T) {
			if got := Parse(s); got != Zero {
				t.Errorf("Parse(%q) = %v, want zero version", s, got)
			}
			if _, err := ParseStrict(s); !errors.Is(err, ErrMalformed) {
				t.Errorf("ParseStrict(%q) error = %v, want ErrMalformed", s, err)
			}
		})
	}
}

func TestParseStrictAcceptsLiteralZero(t *testing.T) {
	c, err := ParseStrict("0.0.0")
	if err != nil {
		t.Fatalf("ParseStrict(0.0.0) error = %v", err)
	}
	if c != Zero {
		t.Errorf("ParseStrict(0.0.0) = %v, want zero", c)
	}
}

func TestDiffersFrom(t *testing.T) {
	versions := []Code{
		{},
		{Major: 1, Minor: 2, SubMinor: 3},
		{Major: 1, Minor: 2, SubMinor: 4},
		{Major: 1, Minor: 3, SubMinor: 3},
		{Major: 2, Minor: 2, SubMinor: 3},
	}

	for i, a := range versions {
		if a.DiffersFrom(a) {
			t.Errorf("%v.DiffersFrom(itself) = true", a)
		}
		for j, b := range versions {
			if a.DiffersFrom(b) != b.DiffersFrom(a) {
				t.Errorf("DiffersFrom not symmetric for %v and %v", a, b)
			}
			if want := i != j; a.DiffersFrom(b) != want {
				t.Errorf("%v.DiffersFrom(%v) = %v, want %v", a, b, a.DiffersFrom(b), want)
			}
		}
	}
}

func TestLoadFileAndSaveFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "LauncherCache", "Version.txt")

	v := Code{Major: 1, Minor: 2, SubMinor: 4}
	if err := SaveFile(path, v); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read version file: %v", err)
	}
	if string(data) != "1.2.4" {
		t.Errorf("version file = %q, want %q", string(data), "1.2.4")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded != v {
		t.Errorf("LoadFile() = %v, want %v", loaded, v)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := LoadFile(filepath.Join(tmpDir, "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadFile() error = %v, want fs.ErrNotExist", err)
	}

	corrupt := filepath.Join(tmpDir, "corrupt.txt")
	if err := os.WriteFile(corrupt, []byte("not a version"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadFile(corrupt)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("LoadFile() error = %v, want ErrMalformed", err)
	}
}
