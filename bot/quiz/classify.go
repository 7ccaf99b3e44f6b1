package quiz

// Classify maps a pair of answers to its face-type category.
// If either answer is unknown the neutral category is returned; otherwise
// the lookup is total over the four remaining combinations.
func Classify(face FaceValue, line LineValue) Category {
	if face == FaceUnknown || line == LineUnknown {
		return CategoryNatural
	}
	if cat, ok := categoryTable[answerPair{face, line}]; ok {
		return cat
	}
	// Out-of-enum values are normalized at the dispatch boundary, but an
	// unmapped pair still resolves to the neutral category.
	return CategoryNatural
}
