package heap

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Levels splits s into the levels of its implicit binary tree. Level k holds
// up to 2^k elements starting at index 2^k-1; the last level may be partial.
// The returned slices share memory with s.
func Levels[T any](s []T) [][]T {
	var levels [][]T
	for start, width := 0, 1; start < len(s); width <<= 1 {
		end := min(start+width, len(s))
		levels = append(levels, s[start:end])
		start = end
	}
	return levels
}

// WriteTree writes s to w one tree level per line, in the form
//
//	L0: [9]
//	L1: [6] [5]
//
// Nothing is written for an empty slice.
func WriteTree[T any](w io.Writer, s []T) error {
	var sb strings.Builder
	for level, values := range Levels(s) {
		sb.Reset()
		fmt.Fprintf(&sb, "L%d: ", level)
		for _, v := range values {
			fmt.Fprintf(&sb, "[%v] ", v)
		}
		sb.WriteByte('\n')

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// PrintTree writes the tree rendering of s to standard output.
func PrintTree[T any](s []T) {
	_ = WriteTree(os.Stdout, s)
}
