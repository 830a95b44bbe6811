// Package evidence implements the naming, indexing and sequencing engine for
// forensic evidence photographs.
//
// The on-disk convention is one folder per sealed item, all photos flat
// inside it, named "{sealNumber}_{sealName}_{categoryToken}_{sequence}.jpg".
// The grammar has no escaping: a seal whose name is itself a single letter is
// indistinguishable from a test-object token when another file is parsed
// suffix-first. That ambiguity is inherited from existing archives and is
// deliberately left in place.
package evidence

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// PhotoExt is the extension written on every evidence photo.
const PhotoExt = ".jpg"

// EncodeFilename produces the canonical filename for an evidence photo.
func EncodeFilename(sealNumber, sealName string, category Category, sequence int) string {
	return fmt.Sprintf("%s_%s_%s_%d%s", sealNumber, sealName, category.Token(), sequence, PhotoExt)
}

// DecodeFilename decodes a filename under the strict four-token form:
// exactly four underscore-separated stem tokens, the last one an integer,
// the third one a recognized category token. Used to validate freshly
// generated names; scanning uses DecodeFilenameTolerant instead.
func DecodeFilename(filename string) (PhotoRecord, error) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.Split(stem, "_")
	if len(parts) != 4 {
		return PhotoRecord{}, fmt.Errorf("%w: %q has %d tokens, want 4", ErrInvalidFormat, filename, len(parts))
	}

	seq, err := strconv.Atoi(parts[3])
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("%w: %q sequence token %q is not an integer", ErrInvalidFormat, filename, parts[3])
	}

	category := Classify(parts[2])
	if category.Kind == KindUnrecognized {
		return PhotoRecord{}, fmt.Errorf("%w: %q category token %q is not recognized", ErrInvalidFormat, filename, parts[2])
	}

	return PhotoRecord{
		SealNumber: parts[0],
		SealName:   parts[1],
		Category:   category,
		Sequence:   seq,
	}, nil
}

// DecodeFilenameTolerant decodes a filename suffix-first, so seal names that
// themselves contain underscores still parse: the last stem token must be an
// integer sequence and the second-to-last a recognized category token. The
// prefix, when long enough, splits into seal number (first token) and seal
// name (the rest rejoined). Returns false for anything that is not an
// evidence photo; that is not an error.
func DecodeFilenameTolerant(filename string) (PhotoRecord, bool) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return PhotoRecord{}, false
	}

	seq, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return PhotoRecord{}, false
	}

	category := Classify(parts[len(parts)-2])
	if category.Kind == KindUnrecognized {
		return PhotoRecord{}, false
	}

	rec := PhotoRecord{Category: category, Sequence: seq}
	if prefix := parts[:len(parts)-2]; len(prefix) > 0 {
		rec.SealNumber = prefix[0]
		rec.SealName = strings.Join(prefix[1:], "_")
	}
	return rec, true
}
