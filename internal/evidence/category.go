package evidence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CategoryKind identifies the semantic type of an evidence photo.
type CategoryKind int

const (
	// KindUnrecognized marks a token that denotes no known photo type.
	// Files carrying it are not evidence photos and are skipped by the scanner.
	KindUnrecognized CategoryKind = iota

	// KindClosedSeal is a photo of the sealed container before opening.
	KindClosedSeal

	// KindContent is a photo of the container's contents.
	KindContent

	// KindRepackaged is a photo of the container after resealing.
	KindRepackaged

	// KindTestObject is a photo of one examined object, identified by a
	// letter code.
	KindTestObject
)

// Canonical tokens written into filenames at encode time. Older archives may
// carry accented or alternate spellings; Classify normalizes those on read.
const (
	TokenClosedSeal = "Ferme"
	TokenContent    = "Contenu"
	TokenRepackaged = "Reconditionne"
)

// Category is the decoded photo type: one of the three fixed seal stages, or
// a test object carrying its letter code. The codec and classifier are the
// only places converting between this and the wire token.
type Category struct {
	Kind   CategoryKind
	Letter string // set only when Kind == KindTestObject
}

func ClosedSeal() Category { return Category{Kind: KindClosedSeal} }
func Content() Category    { return Category{Kind: KindContent} }
func Repackaged() Category { return Category{Kind: KindRepackaged} }
func TestObject(letter string) Category {
	return Category{Kind: KindTestObject, Letter: strings.ToUpper(letter)}
}

// Token returns the canonical wire token for the category: the fixed spelling
// for seal stages, the bare letter code for test objects.
func (c Category) Token() string {
	switch c.Kind {
	case KindClosedSeal:
		return TokenClosedSeal
	case KindContent:
		return TokenContent
	case KindRepackaged:
		return TokenRepackaged
	case KindTestObject:
		return c.Letter
	}
	return ""
}

// Rank orders seal-stage photos by workflow position: closed seal, content,
// repackaged. Unrecognized kinds sort last.
func (c Category) Rank() int {
	switch c.Kind {
	case KindClosedSeal:
		return 1
	case KindContent:
		return 2
	case KindRepackaged:
		return 3
	}
	return 99
}

// IsSealStage reports whether the category is one of the three fixed seal
// stages (as opposed to a test-object photo).
func (c Category) IsSealStage() bool {
	switch c.Kind {
	case KindClosedSeal, KindContent, KindRepackaged:
		return true
	}
	return false
}

// Classify maps a raw filename token to a Category, tolerating the accented
// and alternate French spellings that older tool versions wrote. A single
// alphabetic character is a test-object letter (uppercased). Anything else is
// unrecognized; the scanner treats such files as non-evidence.
func Classify(token string) Category {
	if utf8.RuneCountInString(token) == 1 {
		r, _ := utf8.DecodeRuneInString(token)
		if unicode.IsLetter(r) {
			return TestObject(token)
		}
	}

	switch strings.ToLower(token) {
	case "ferme", "fermé":
		return ClosedSeal()
	case "contenu":
		return Content()
	case "reconditionne", "reconditionné", "reconditionnement":
		return Repackaged()
	}
	return Category{Kind: KindUnrecognized}
}
