// Package tokens provides a deterministic token estimate for budgeting.
// The heuristic is one token per four characters, which tracks English prose
// closely enough for allocation decisions; exactness is not a goal because the
// provider reports authoritative usage after the fact.
package tokens

// Estimate returns the estimated token count for s. Non-empty strings count as
// at least one token.
func Estimate(s string) int {
	if len(s) == 0 {
		return 0
	}

	n := (len(s) + 3) / 4
	if n < 1 {
		n = 1
	}

	return n
}
