package eval

import "strings"

// RougeL scores how closely a generated sequence of phrases (for example
// roadmap topic titles) follows a reference sequence. It is the ROUGE-L
// F-measure of the longest common subsequence of their lower-cased tokens.
func RougeL(generated, reference []string) float64 {
	g := tokens(generated)
	r := tokens(reference)
	if len(g) == 0 || len(r) == 0 {
		return 0
	}
	lcs := float64(lcsLength(g, r))
	if lcs == 0 {
		return 0
	}
	precision := lcs / float64(len(g))
	recall := lcs / float64(len(r))
	return 2 * precision * recall / (precision + recall)
}

func tokens(phrases []string) []string {
	var out []string
	for _, p := range phrases {
		out = append(out, strings.Fields(strings.ToLower(p))...)
	}
	return out
}

// lcsLength uses a single rolling row.
func lcsLength(a, b []string) int {
	row := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		prev := 0
		for j := 1; j <= len(b); j++ {
			tmp := row[j]
			if a[i-1] == b[j-1] {
				row[j] = prev + 1
			} else if row[j-1] > row[j] {
				row[j] = row[j-1]
			}
			prev = tmp
		}
	}
	return row[len(b)]
}
