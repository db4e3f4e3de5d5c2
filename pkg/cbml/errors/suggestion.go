package errors

import (
	"fmt"
	"strings"
)

// SuggestName suggests the closest known name when an unknown one is
// referenced. It returns "" when nothing is reasonably close.
func SuggestName(unknown string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	best, dist := closest(unknown, candidates)

	// Only suggest if the distance is small relative to the name
	limit := max(len([]rune(unknown))/2, 2)
	if dist <= limit {
		return fmt.Sprintf("did you mean `%s`?", best)
	}
	return ""
}

// SuggestFieldName is like SuggestName but falls back to listing valid names.
func SuggestFieldName(unknown string, validFields []string) string {
	if s := SuggestName(unknown, validFields); s != "" {
		return s
	}
	if len(validFields) == 0 {
		return ""
	}
	if len(validFields) > 5 {
		return fmt.Sprintf("valid fields include: %s, ...", strings.Join(validFields[:5], ", "))
	}
	return fmt.Sprintf("valid fields: %s", strings.Join(validFields, ", "))
}

func closest(unknown string, candidates []string) (string, int) {
	minDistance := -1
	var bestMatch string
	for _, c := range candidates {
		d := levenshteinDistance(unknown, c)
		if minDistance < 0 || d < minDistance {
			minDistance = d
			bestMatch = c
		}
	}
	return bestMatch, minDistance
}

// levenshteinDistance computes the edit distance between two strings, rune-wise.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	r1, r2 := []rune(s1), []rune(s2)
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // Deletion
				curr[j-1]+1,    // Insertion
				prev[j-1]+cost, // Substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
