package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadFolder(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultDir string
		want       string
		wantErr    error
	}{
		{"typed path", "/games/h2m\n", "/default", "/games/h2m", nil},
		{"quoted path", "\"C:\\Games\\H2M\"\r\n", "", `C:\Games\H2M`, nil},
		{"empty keeps default", "\n", "/default", "/default", nil},
		{"empty without default", "\n", "", "", ErrCancelled},
		{"eof", "", "/default", "", ErrCancelled},
		{"no trailing newline", "/games", "", "/games", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cfg := Config{In: strings.NewReader(tt.input), Out: &out}

			got, err := ReadFolder(tt.defaultDir, cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadFolder() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFolder() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadFolder() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), "Select game directory") {
				t.Errorf("prompt = %q", out.String())
			}
		})
	}
}

func TestReadFolder_NonInteractive(t *testing.T) {
	got, err := ReadFolder("/default", Config{NonInteractive: true, In: strings.NewReader("/ignored\n")})
	if err != nil || got != "/default" {
		t.Errorf("ReadFolder() = %q, %v", got, err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm("Launch now?", Config{In: strings.NewReader(tt.input), Out: &out})
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if !Confirm("Launch now?", Config{NonInteractive: true}) {
		t.Error("non-interactive Confirm should return true")
	}
}

func TestWaitForKey(t *testing.T) {
	var out bytes.Buffer

	WaitForKey("Press Enter to exit...", Config{In: strings.NewReader("\n"), Out: &out})
	if out.String() != "Press Enter to exit..." {
		t.Errorf("prompt = %q", out.String())
	}

	out.Reset()
	WaitForKey("Press Enter to exit...", Config{NonInteractive: true, In: strings.NewReader(""), Out: &out})
	if out.Len() != 0 {
		t.Errorf("non-interactive should print nothing, got %q", out.String())
	}
}
