package vdom

// opTag classifies an aligned run produced by the sequence matcher.
type opTag uint8

const (
	opEqual opTag = iota
	opReplace
	opDelete
	opInsert
)

// opcode describes one aligned run: a[i1:i2] paired with b[j1:j2].
type opcode struct {
	tag opTag
	i1  int
	i2  int
	j1  int
	j2  int
}

// opcodes aligns two child lists with a longest-common-subsequence matcher
// and decomposes the alignment into equal/replace/delete/insert runs.
// Children are atomic units compared with Equal. The output is
// deterministic: equal-cost alignments prefer matching the earliest
// elements, and ties between deletion and insertion prefer deletion.
func opcodes(a, b []*VNode) []opcode {
	n, m := len(a), len(b)
	if n == 0 && m == 0 {
		return nil
	}

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if Equal(a[i], b[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []opcode
	i, j := 0, 0
	for i < n || j < m {
		if i < n && j < m && Equal(a[i], b[j]) {
			i1, j1 := i, j
			for i < n && j < m && Equal(a[i], b[j]) {
				i++
				j++
			}
			ops = append(ops, opcode{opEqual, i1, i, j1, j})
			continue
		}

		// Consume the unmatched region up to the next anchor.
		i1, j1 := i, j
		for i < n || j < m {
			if i < n && j < m && Equal(a[i], b[j]) {
				break
			}
			if j >= m || (i < n && lcs[i+1][j] >= lcs[i][j+1]) {
				i++
			} else {
				j++
			}
		}

		switch {
		case i > i1 && j > j1:
			ops = append(ops, opcode{opReplace, i1, i, j1, j})
		case i > i1:
			ops = append(ops, opcode{opDelete, i1, i, j1, j})
		default:
			ops = append(ops, opcode{opInsert, i1, i, j1, j})
		}
	}

	return ops
}
