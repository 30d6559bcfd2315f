package taxonomy

import "strings"

// Levenshtein returns the case-insensitive edit distance between a and b
// (insert, delete, substitute at unit cost). Symmetric in its arguments.
func Levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	rows := len(rb) + 1
	cols := len(ra) + 1
	table := make([][]int, rows)
	for i := range table {
		table[i] = make([]int, cols)
		table[i][0] = i
	}
	for j := 0; j < cols; j++ {
		table[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			deletion := table[i-1][j] + 1
			insertion := table[i][j-1] + 1
			substitution := table[i-1][j-1] + cost
			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			table[i][j] = best
		}
	}
	return table[rows-1][cols-1]
}

// Similarity normalizes the edit distance between a and b to [0, 1], where 1
// means the case-folded strings are identical. Pure function, no side effects.
func Similarity(a, b string) float64 {
	fa := strings.ToLower(a)
	fb := strings.ToLower(b)
	if fa == fb {
		return 1.0
	}
	la := len([]rune(fa))
	lb := len([]rune(fb))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(fa, fb))/float64(longest)
}
