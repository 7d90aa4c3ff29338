package textmatch

// Distance computes the Levenshtein edit distance between a and b:
// the minimum number of single-character insertions, deletions, and
// substitutions needed to transform one into the other. Symmetric,
// and zero exactly when the strings are equal.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	// Single-row DP; prev carries the diagonal value.
	row := make([]int, m+1)
	for j := 0; j <= m; j++ {
		row[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= m; j++ {
			tmp := row[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			row[j] = min(row[j]+1, row[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return row[m]
}

// Similarity returns a normalized similarity score in [0, 1].
// Identical strings (including two empty strings) score 1.0; if exactly
// one string is empty the score is 0.0. Otherwise the score is
// 1 - distance/maxLen, floored at 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}

	sim := 1.0 - float64(Distance(a, b))/float64(maxLen)
	if sim < 0 {
		return 0.0
	}
	return sim
}
