// Package sequence implements the identifier pipeline primitives: scanning
// free-form text for 11- and 15-digit runs, retaining numerically sequential
// identifiers within a length class, and partitioning candidates against a
// user's history. All functions are pure.
package sequence

// Accepted identifier lengths.
const (
	LenShort = 11
	LenLong  = 15
)

// ValidLength reports whether s has one of the two accepted lengths.
func ValidLength(s string) bool {
	return len(s) == LenShort || len(s) == LenLong
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Extract scans text left to right and returns every maximal ASCII digit
// run of length exactly 11 and exactly 15, each batch in order of first
// occurrence. A run is maximal when it is bounded by a non-digit byte or a
// string edge on both sides; runs of any other length yield nothing (a
// 12-digit run is not truncated to 11). Repeats within one pass are kept,
// the caller collapses them downstream.
func Extract(text string) (eleven, fifteen []string) {
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		switch run := text[start:end]; len(run) {
		case LenShort:
			eleven = append(eleven, run)
		case LenLong:
			fifteen = append(fifteen, run)
		}
		start = -1
	}

	for i := 0; i < len(text); i++ {
		if isDigit(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return eleven, fifteen
}
