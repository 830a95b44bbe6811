package evidence

import "sort"

// Test objects are coded with spreadsheet-column letters: A..Z, then AA..AZ,
// BA.., with the most significant letter first. Ordering is therefore by
// length first, then lexicographic within equal length.

// IsLetterCode reports whether s is a valid object code: one or more
// uppercase ASCII letters.
func IsLetterCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// LetterLess reports whether code a orders before code b: shorter codes
// first, then lexicographic.
func LetterLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// SortLetters sorts object codes in place in allocation order.
func SortLetters(letters []string) {
	sort.Slice(letters, func(i, j int) bool { return LetterLess(letters[i], letters[j]) })
}

// NextLetter returns the next free object code given the set of codes already
// in use: "A" when the set is empty, otherwise the increment of the maximum
// existing code. There is no upper bound; Z rolls over to AA.
func NextLetter(existing []string) string {
	if len(existing) == 0 {
		return "A"
	}
	max := existing[0]
	for _, l := range existing[1:] {
		if LetterLess(max, l) {
			max = l
		}
	}
	return incrementLetter(max)
}

// incrementLetter performs a base-26 increment with carry, 'A' acting as
// digit 0 and 'Z' as digit 25: A->B, Z->AA, AZ->BA, ZZ->AAA.
func incrementLetter(code string) string {
	digits := []byte(code)
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < 'Z' {
			digits[i]++
			return string(digits)
		}
		digits[i] = 'A'
	}
	// Carry past the most significant digit.
	return "A" + string(digits)
}

// CompleteLetters fills in missing single-letter codes up to the maximum
// single-letter code present, so listings show a contiguous A..max range even
// when intermediate objects have no photos yet. Multi-letter codes pass
// through untouched. The result is sorted in allocation order.
func CompleteLetters(letters []string) []string {
	seen := make(map[string]struct{}, len(letters))
	var max byte
	for _, l := range letters {
		seen[l] = struct{}{}
		if len(l) == 1 && l[0] >= 'A' && l[0] <= 'Z' && l[0] > max {
			max = l[0]
		}
	}
	for c := byte('A'); c <= max && max != 0; c++ {
		seen[string(c)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	SortLetters(out)
	return out
}
