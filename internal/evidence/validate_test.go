package evidence_test

import (
	"strings"
	"testing"

	"objectif-go/internal/evidence"
)

func TestValidateName(t *testing.T) {
	t.Run("accepts typical names", func(t *testing.T) {
		for _, name := range []string{
			"AFF001",
			"01_TEL",
			"02_USB_KINGSTON",
			"Scellé n°4",
			"dossier.2024",
		} {
			if err := evidence.ValidateName(name); err != nil {
				t.Errorf("ValidateName(%q) error = %v, want nil", name, err)
			}
		}
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		tests := []struct {
			label string
			name  string
		}{
			{"empty", ""},
			{"only spaces", "   "},
			{"leading space", " AFF001"},
			{"trailing space", "AFF001 "},
			{"colon", "AFF:001"},
			{"slash", "a/b"},
			{"backslash", `a\b`},
			{"question mark", "photo?"},
			{"reserved device name", "CON"},
			{"reserved lowercase", "nul"},
			{"reserved with extension", "aux.txt"},
			{"trailing dot", "dossier."},
			{"control character", "a\tb"},
			{"over-long", strings.Repeat("a", 201)},
		}
		for _, tt := range tests {
			t.Run(tt.label, func(t *testing.T) {
				if err := evidence.ValidateName(tt.name); err == nil {
					t.Errorf("ValidateName(%q) = nil, want error", tt.name)
				}
			})
		}
	})
}

func TestSuggestName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "nouveau_dossier"},
		{"   ", "nouveau_dossier"},
		{"AFF:001", "AFF_001"},
		{" AFF001 ", "AFF001"},
		{"dossier.", "dossier"},
		{"CON", "CON_dossier"},
		{`a/b\c`, "a_b_c"},
	}

	for _, tt := range tests {
		got := evidence.SuggestName(tt.name)
		if got != tt.want {
			t.Errorf("SuggestName(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if err := evidence.ValidateName(got); err != nil {
			t.Errorf("SuggestName(%q) = %q does not validate: %v", tt.name, got, err)
		}
	}
}
