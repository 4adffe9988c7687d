package catalog

import "strings"

// similarityThreshold is the cutoff for the sequence-similarity fallback
// in Match.
const similarityThreshold = 0.4

// Match reports whether query fuzzy-matches text. Matching is
// case-insensitive: a literal substring hit passes immediately, otherwise
// the two strings must exceed the similarity threshold. Empty inputs
// never match.
func Match(query, text string) bool {
	if query == "" || text == "" {
		return false
	}

	q := strings.ToLower(query)
	t := strings.ToLower(text)

	if strings.Contains(t, q) {
		return true
	}

	return similarity(q, t) > similarityThreshold
}

// similarity computes 2*M / (len(a)+len(b)), where M is the total length
// of the matching blocks between a and b. This is the ratio produced by
// recursively splitting around the longest common block, so transposed or
// misspelled queries still score on their shared runs.
func similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}
	return 2 * float64(matchingTotal(ra, rb)) / float64(total)
}

// matchingTotal sums the matching block sizes: find the longest common
// block, then recurse on the pieces to its left and right.
func matchingTotal(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingTotal(a[:ai], b[:bi]) +
		matchingTotal(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest block with a[ai:ai+size] == b[bi:bi+size],
// preferring the earliest position in a, then in b, on ties.
func longestMatch(a, b []rune) (ai, bi, size int) {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	// j2len[j] is the length of the run ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := range a {
		next := make(map[int]int, len(b2j[a[i]]))
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return ai, bi, size
}
