package analyzer

// Distance computes the edit distance between two canonical trees under a
// restricted top-down alignment: the roots are compared directly, and each
// node's ordered child sequences are aligned by dynamic programming where a
// child subtree may be deleted, inserted, or paired one-to-one in order.
// Subtrees are never promoted or demoted across levels, so the result is
// optimal only under this alignment, not under unrestricted edit scripts.
// That restriction is intentional: every similarity number reported by the
// tool depends on this exact recursion.
//
// Distance is symmetric, Distance(t, t) == 0, and against a nil tree it
// degenerates to TreeSize of the other side.
func Distance(a, b *Node) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return TreeSize(b)
	}
	if b == nil {
		return TreeSize(a)
	}
	return relabelCost(a, b) + childAlignmentCost(a.Children, b.Children)
}

// relabelCost is 0 when the (kind, value) labels match and 1 otherwise.
func relabelCost(a, b *Node) int {
	if a.SameLabel(b) {
		return 0
	}
	return 1
}

// childAlignmentCost aligns two ordered child sequences. Deleting or
// inserting a child costs its full subtree size; pairing two children
// costs their full recursive distance.
func childAlignmentCost(as, bs []*Node) int {
	m, n := len(as), len(bs)
	if m == 0 && n == 0 {
		return 0
	}

	// Subtree sizes are reused across the whole row/column initialization
	// and the deletion/insertion arms of the recurrence.
	aSizes := make([]int, m)
	for i, child := range as {
		aSizes[i] = TreeSize(child)
	}
	bSizes := make([]int, n)
	for j, child := range bs {
		bSizes[j] = TreeSize(child)
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		dp[i][0] = dp[i-1][0] + aSizes[i-1]
	}
	for j := 1; j <= n; j++ {
		dp[0][j] = dp[0][j-1] + bSizes[j-1]
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			deleteCost := dp[i-1][j] + aSizes[i-1]
			insertCost := dp[i][j-1] + bSizes[j-1]
			pairCost := dp[i-1][j-1] + Distance(as[i-1], bs[j-1])

			best := deleteCost
			if insertCost < best {
				best = insertCost
			}
			if pairCost < best {
				best = pairCost
			}
			dp[i][j] = best
		}
	}

	return dp[m][n]
}
