package evidence

import (
	"fmt"
	"strings"
)

// Folder and file names end up on operator-managed Windows shares, so
// validation follows Windows rules even on other platforms.

const forbiddenNameChars = `<>:"/\|?*`

// maxNameLength keeps a margin under the Windows 255-character limit.
const maxNameLength = 200

var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateName checks that name is usable as a folder or file name component.
// It rejects empty and surrounding-whitespace names, forbidden characters,
// control characters, over-long names, Windows-reserved device names, and
// trailing dots or spaces.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name contains only spaces")
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("name starts or ends with spaces: %q", name)
	}

	if i := strings.IndexAny(name, forbiddenNameChars); i >= 0 {
		return fmt.Errorf("name contains forbidden character %q: %q", name[i], name)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name exceeds %d characters", maxNameLength)
	}

	upper := strings.ToUpper(name)
	if _, ok := reservedNames[upper]; ok {
		return fmt.Errorf("%q is a reserved Windows name", name)
	}
	if base, _, found := strings.Cut(upper, "."); found {
		if _, ok := reservedNames[base]; ok {
			return fmt.Errorf("%q uses a reserved Windows name", name)
		}
	}

	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return fmt.Errorf("name ends with a dot or space: %q", name)
	}
	for _, r := range name {
		if r < 32 {
			return fmt.Errorf("name contains control characters")
		}
	}
	return nil
}

// SuggestName returns a cleaned-up version of name that would pass
// ValidateName, for use in user-facing error hints.
func SuggestName(name string) string {
	if name == "" {
		return "nouveau_dossier"
	}

	fixed := strings.TrimSpace(name)
	for _, c := range forbiddenNameChars {
		fixed = strings.ReplaceAll(fixed, string(c), "_")
	}

	var b strings.Builder
	for _, r := range fixed {
		if r >= 32 {
			b.WriteRune(r)
		}
	}
	fixed = strings.TrimRight(b.String(), ". ")

	if _, ok := reservedNames[strings.ToUpper(fixed)]; ok {
		fixed += "_dossier"
	}
	if len(fixed) > maxNameLength {
		fixed = strings.TrimRight(fixed[:maxNameLength], ". ")
	}
	if fixed == "" {
		fixed = "nouveau_dossier"
	}
	return fixed
}
