package analyzer

// TreeSimilarity computes the bounded similarity score between two wrapped
// canonical trees. The synthetic roots are excluded from the size terms;
// they contribute nothing to the distance either since their labels always
// match.
//
// The raw score is 1 - distance/max(sizeA, sizeB), clamped to [0, 1]. With
// sizePenalty enabled the raw score is additionally multiplied by
// min(sizeA, sizeB)/max(sizeA, sizeB), which suppresses near-perfect
// scores for a tiny function that happens to be a structural subset of a
// much larger one.
func TreeSimilarity(a, b *Node, sizePenalty bool) float64 {
	sizeA := BodySize(a)
	sizeB := BodySize(b)

	if sizeA == 0 && sizeB == 0 {
		return 1.0
	}

	maxSize := sizeA
	minSize := sizeB
	if sizeB > maxSize {
		maxSize, minSize = sizeB, sizeA
	}

	raw := 1.0 - float64(Distance(a, b))/float64(maxSize)
	if raw < 0 {
		raw = 0
	} else if raw > 1 {
		raw = 1
	}

	if sizePenalty {
		return raw * (float64(minSize) / float64(maxSize))
	}
	return raw
}

// Similarity computes the similarity score between two function records.
func Similarity(a, b *FunctionRecord, sizePenalty bool) float64 {
	return TreeSimilarity(a.Tree, b.Tree, sizePenalty)
}
