package evidence

// NextSequence returns the next free sequence number for a category: 1 when
// the category has no photos, otherwise max(existing)+1. Gaps left by manual
// deletion are not refilled; deleting the highest-numbered photo makes its
// number available again. Matching is over the index's normalized category
// lists, so legacy accented spellings count toward the maximum.
func (ix *EvidenceIndex) NextSequence(category Category) int {
	var recs []PhotoRecord
	if category.Kind == KindTestObject {
		recs = ix.ByObject[category.Letter]
	} else {
		recs = ix.ByCategory[category.Kind]
	}

	max := 0
	for _, r := range recs {
		if r.Sequence > max {
			max = r.Sequence
		}
	}
	return max + 1
}
