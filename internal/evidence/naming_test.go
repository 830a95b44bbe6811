package evidence_test

import (
	"errors"
	"testing"

	"objectif-go/internal/evidence"
)

func TestEncodeFilename(t *testing.T) {
	got := evidence.EncodeFilename("2024-001", "TEL", evidence.ClosedSeal(), 1)
	want := "2024-001_TEL_Ferme_1.jpg"
	if got != want {
		t.Errorf("EncodeFilename() = %q, want %q", got, want)
	}

	got = evidence.EncodeFilename("01", "USB", evidence.TestObject("B"), 12)
	want = "01_USB_B_12.jpg"
	if got != want {
		t.Errorf("EncodeFilename() = %q, want %q", got, want)
	}
}

func TestDecodeFilename_roundTrip(t *testing.T) {
	categories := []evidence.Category{
		evidence.ClosedSeal(),
		evidence.Content(),
		evidence.Repackaged(),
		evidence.TestObject("A"),
		evidence.TestObject("Q"),
	}

	for _, category := range categories {
		t.Run(category.Token(), func(t *testing.T) {
			name := evidence.EncodeFilename("007", "CaseX", category, 3)
			rec, err := evidence.DecodeFilename(name)
			if err != nil {
				t.Fatalf("DecodeFilename(%q) error = %v", name, err)
			}

			want := evidence.PhotoRecord{
				SealNumber: "007",
				SealName:   "CaseX",
				Category:   category,
				Sequence:   3,
			}
			if rec != want {
				t.Errorf("DecodeFilename(%q) = %+v, want %+v", name, rec, want)
			}
		})
	}
}

func TestDecodeFilename_errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"too few tokens", "random_photo.jpg"},
		{"too many tokens", "01_TEL_EXT_Ferme_1.jpg"},
		{"sequence not integer", "01_TEL_Ferme_un.jpg"},
		{"unknown category", "01_TEL_Mystery_1.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evidence.DecodeFilename(tt.filename)
			if !errors.Is(err, evidence.ErrInvalidFormat) {
				t.Errorf("DecodeFilename(%q) error = %v, want ErrInvalidFormat", tt.filename, err)
			}
		})
	}
}

func TestDecodeFilenameTolerant(t *testing.T) {
	t.Run("seal name with underscores", func(t *testing.T) {
		rec, ok := evidence.DecodeFilenameTolerant("2024-001_TEL_SAMSUNG_Contenu_4.jpg")
		if !ok {
			t.Fatal("DecodeFilenameTolerant() ok = false, want true")
		}
		if rec.SealNumber != "2024-001" || rec.SealName != "TEL_SAMSUNG" {
			t.Errorf("seal = %q/%q, want 2024-001/TEL_SAMSUNG", rec.SealNumber, rec.SealName)
		}
		if rec.Category != evidence.Content() || rec.Sequence != 4 {
			t.Errorf("category/sequence = %+v/%d, want Content/4", rec.Category, rec.Sequence)
		}
	})

	t.Run("accented legacy spelling", func(t *testing.T) {
		rec, ok := evidence.DecodeFilenameTolerant("01_TEL_Fermé_2.jpg")
		if !ok {
			t.Fatal("DecodeFilenameTolerant() ok = false, want true")
		}
		if rec.Category != evidence.ClosedSeal() {
			t.Errorf("category = %+v, want ClosedSeal", rec.Category)
		}
	})

	t.Run("object letter lowercase", func(t *testing.T) {
		rec, ok := evidence.DecodeFilenameTolerant("01_TEL_b_7.jpg")
		if !ok {
			t.Fatal("DecodeFilenameTolerant() ok = false, want true")
		}
		if rec.Category != evidence.TestObject("B") {
			t.Errorf("category = %+v, want TestObject(B)", rec.Category)
		}
	})

	t.Run("non-evidence files are skipped not errors", func(t *testing.T) {
		for _, filename := range []string{
			"random_photo.jpg",      // second-to-last token not a category
			"vacances.jpg",          // single token
			"01_TEL_Ferme_last.jpg", // sequence not an integer
			"01_TEL_Mystery_1.jpg",  // unknown category token
		} {
			if _, ok := evidence.DecodeFilenameTolerant(filename); ok {
				t.Errorf("DecodeFilenameTolerant(%q) ok = true, want false", filename)
			}
		}
	})

	t.Run("short prefix leaves seal fields empty", func(t *testing.T) {
		rec, ok := evidence.DecodeFilenameTolerant("Ferme_1.jpg")
		if !ok {
			t.Fatal("DecodeFilenameTolerant() ok = false, want true")
		}
		if rec.SealNumber != "" || rec.SealName != "" {
			t.Errorf("seal = %q/%q, want empty", rec.SealNumber, rec.SealName)
		}
	})
}
