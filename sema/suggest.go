package sema

// keywordHints is the small set of keyword-like words worth
// suggesting alongside in-scope identifiers (spec §4.4's
// "closest-match heuristic over candidate names plus a small set of
// keyword hints").
var keywordHints = []string{
	"true", "false", "return", "print", "break", "continue",
}

// closestMatch returns the candidate string with the smallest edit
// distance to name, provided that distance is small enough to be a
// plausible typo (at most a third of name's length, rounded down, plus 1); it
// returns "" if nothing is close enough to suggest.
func closestMatch(name string, candidates []string) string {
	all := append(append([]string{}, candidates...), keywordHints...)

	best := ""
	bestDist := -1
	threshold := len(name)/3 + 1

	for _, c := range all {
		if c == name || c == "" {
			continue
		}
		d := levenshtein(name, c)
		if d > threshold {
			continue
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)

	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}

	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[m]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
