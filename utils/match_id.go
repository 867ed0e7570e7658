package utils

// MatchID derives the deterministic match id for an unordered pair of uids.
// Either side can compute it independently, so concurrent creation attempts
// collide on the same key instead of producing two records.
func MatchID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// SortedPair returns the two uids in ascending order.
func SortedPair(a, b string) []string {
	if b < a {
		a, b = b, a
	}
	return []string{a, b}
}
