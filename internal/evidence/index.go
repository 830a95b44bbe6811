package evidence

import (
	"fmt"
	"sort"
)

// PhotoRecord is one evidence photograph with the metadata carried by its
// filename. FilePath is empty for records produced by decoding a bare name.
type PhotoRecord struct {
	SealNumber string
	SealName   string
	Category   Category
	Sequence   int
	FilePath   string
}

// EvidenceIndex is the in-memory view of one sealed-item directory, built by
// scanning filenames. It owns no state beyond what a rescan would reproduce.
type EvidenceIndex struct {
	SealPath string

	// ByCategory groups seal-stage photos, each list sorted by sequence.
	ByCategory map[CategoryKind][]PhotoRecord

	// ByObject groups test-object photos by letter code, each list sorted
	// by sequence.
	ByObject map[string][]PhotoRecord

	// ObjectLetters are the codes with at least one photo, sorted in
	// allocation order.
	ObjectLetters []string
}

// BuildIndex scans a sealed-item directory and indexes every decodable photo.
// Files that fail tolerant decoding are skipped silently: evidence folders
// are expected to contain the occasional foreign file. Scanning is
// side-effect-free, so two scans of an unchanged directory yield identical
// indexes.
func BuildIndex(fsmgr FilesystemManager, sealPath string) (*EvidenceIndex, error) {
	paths, err := fsmgr.ListImages(sealPath)
	if err != nil {
		return nil, fmt.Errorf("scanning seal directory %s: %w", sealPath, err)
	}

	ix := &EvidenceIndex{
		SealPath:   sealPath,
		ByCategory: make(map[CategoryKind][]PhotoRecord),
		ByObject:   make(map[string][]PhotoRecord),
	}

	for _, p := range paths {
		rec, ok := DecodeFilenameTolerant(p)
		if !ok {
			continue
		}
		rec.FilePath = p

		if rec.Category.Kind == KindTestObject {
			ix.ByObject[rec.Category.Letter] = append(ix.ByObject[rec.Category.Letter], rec)
		} else {
			ix.ByCategory[rec.Category.Kind] = append(ix.ByCategory[rec.Category.Kind], rec)
		}
	}

	for kind := range ix.ByCategory {
		sortBySequence(ix.ByCategory[kind])
	}
	for letter := range ix.ByObject {
		sortBySequence(ix.ByObject[letter])
		ix.ObjectLetters = append(ix.ObjectLetters, letter)
	}
	SortLetters(ix.ObjectLetters)

	return ix, nil
}

// SealPhotos returns the seal-stage photos (test-object photos excluded) in
// the fixed workflow order closed seal, content, repackaged, then by
// sequence. The order does not depend on capture order.
func (ix *EvidenceIndex) SealPhotos() []PhotoRecord {
	var out []PhotoRecord
	for _, recs := range ix.ByCategory {
		out = append(out, recs...)
	}
	sort.Slice(out, func(i, j int) bool {
		if ri, rj := out[i].Category.Rank(), out[j].Category.Rank(); ri != rj {
			return ri < rj
		}
		return out[i].Sequence < out[j].Sequence
	})
	return out
}

// ObjectPhotos returns the photos of one test object, sorted by sequence.
func (ix *EvidenceIndex) ObjectPhotos(letter string) []PhotoRecord {
	return ix.ByObject[letter]
}

func sortBySequence(recs []PhotoRecord) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].Sequence < recs[j].Sequence })
}
