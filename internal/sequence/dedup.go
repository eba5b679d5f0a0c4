package sequence

// Partition splits candidates into the ones not present in existing,
// preserving candidate order, and a count of the ones that were already
// there. existing is not modified.
func Partition(candidates []string, existing map[string]struct{}) (fresh []string, duplicates int) {
	for _, id := range candidates {
		if _, ok := existing[id]; ok {
			duplicates++
			continue
		}
		fresh = append(fresh, id)
	}
	return fresh, duplicates
}
