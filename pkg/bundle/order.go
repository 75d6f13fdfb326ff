package bundle

import (
	"path/filepath"
	"sort"
)

// Order returns a sorted copy of files. The sort is stable, so files sharing an
// extension keep their relative order under SortByType.
func Order(files []string, mode SortMode) []string {
	ordered := append([]string(nil), files...)

	key := filepath.Base
	if mode == SortByType {
		key = filepath.Ext
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return key(ordered[i]) < key(ordered[j])
	})
	return ordered
}
