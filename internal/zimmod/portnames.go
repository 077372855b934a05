package zimmod

import "fmt"

// numberedNames precomputes "prefix1".."prefixN" once at construction
// time so that Process can look channels up by a cached string instead
// of calling fmt.Sprintf per frame — fmt.Sprintf allocates, which the
// audio context must not do in steady state (SPEC_FULL.md §5).
func numberedNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return names
}
