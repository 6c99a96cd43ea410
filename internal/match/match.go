// Package match implements token-set similarity scoring for noisy name
// reconciliation against a trusted list.
package match

import "strings"

// TokenSetRatio scores two strings 0-100 by comparing their unique token
// sets. Tokens are lowercased with punctuation stripped, so word order,
// repeated tokens, and dot/case noise do not affect the score. A string
// whose tokens are a subset of the other's scores 100.
func TokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	common := 0
	for tok := range setA {
		if setB[tok] {
			common++
		}
	}

	smaller := len(setA)
	if len(setB) < smaller {
		smaller = len(setB)
	}
	return 100 * common / smaller
}

// ExtractBest returns the choice with the highest TokenSetRatio against
// query, along with its score. Ties keep the earliest choice, so results
// are deterministic for a fixed choice order. Returns ("", 0) when choices
// is empty.
func ExtractBest(query string, choices []string) (string, int) {
	best := ""
	bestScore := 0
	for i, c := range choices {
		score := TokenSetRatio(query, c)
		if i == 0 || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best, bestScore
}

func tokenSet(s string) map[string]bool {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ' || r == '\t':
			return ' '
		default:
			return ' '
		}
	}, s)

	set := make(map[string]bool)
	for _, tok := range strings.Fields(cleaned) {
		set[tok] = true
	}
	return set
}
