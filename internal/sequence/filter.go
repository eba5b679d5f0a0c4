package sequence

import (
	"sort"
	"strconv"
)

// FilterSequential collapses exact string repeats in ids, orders the
// distinct values numerically and returns, in ascending numeric order, the
// identifiers that have a neighbor at numeric distance exactly 1 in the
// set. The ascending output order is an observable contract relied on by
// the save path. ids must be a single length class; identifiers of
// different lengths are never compared.
//
// Values are compared as exact unsigned decimals: 15 digits stay well below
// the uint64 range, no floating point is involved. An empty input or a
// singleton yields an empty result.
func FilterSequential(ids []string) []string {
	if len(ids) < 2 {
		return nil
	}

	// Within one length class equal numeric values are the same string, so
	// value -> string is a bijection.
	byValue := make(map[uint64]string, len(ids))
	values := make([]uint64, 0, len(ids))
	for _, id := range ids {
		v, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			continue
		}
		if _, ok := byValue[v]; ok {
			continue
		}
		byValue[v] = id
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	var sequential []string
	for i, v := range values {
		if (i > 0 && values[i-1]+1 == v) || (i < len(values)-1 && v+1 == values[i+1]) {
			sequential = append(sequential, byValue[v])
		}
	}
	return sequential
}
