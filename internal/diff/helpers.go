package diff

// indexByName builds a name→index-in-slice map for O(1) lookup while a
// caller walks a slice in its original order. It does not reorder
// anything; ordering is entirely driven by the caller's own iteration.
func indexByName[T interface{ GetName() string }](items []T) map[string]int {
	m := make(map[string]int, len(items))
	for i, it := range items {
		m[it.GetName()] = i
	}
	return m
}
