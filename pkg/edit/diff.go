package edit

import "bytes"

// maxDiffCells bounds the line LCS table. Larger differences collapse into a
// single edit.
const maxDiffCells = 1 << 20

// Diff computes edits that turn before into after. The common prefix and suffix
// are trimmed first; the middle is compared line by line so that unrelated
// changes far apart become separate edits.
func Diff(before, after []byte) []TextEdit {
	prefix := commonPrefix(before, after)
	suffix := commonSuffix(before[prefix:], after[prefix:])

	oldMid := before[prefix : len(before)-suffix]
	newMid := after[prefix : len(after)-suffix]
	if len(oldMid) == 0 && len(newMid) == 0 {
		return nil
	}

	oldLines := splitLines(oldMid)
	newLines := splitLines(newMid)
	if len(oldLines) < 2 || len(newLines) < 2 || len(oldLines)*len(newLines) > maxDiffCells {
		return []TextEdit{{Start: prefix, End: prefix + len(oldMid), NewText: string(newMid)}}
	}

	return lineEdits(buildDiffOps(oldLines, newLines), prefix)
}

func commonPrefix(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}

	return n
}

func commonSuffix(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[len(a)-1-i] != b[len(b)-1-i] {
			return i
		}
	}

	return n
}

// splitLines splits content after each newline, so the pieces concatenate
// back to content.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	parts := bytes.SplitAfter(content, []byte{'\n'})
	if len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}

	lines := make([]string, len(parts))
	for i, part := range parts {
		lines[i] = string(part)
	}

	return lines
}

type diffOpKind uint8

const (
	opKeep diffOpKind = iota
	opRemove
	opAdd
)

type diffOp struct {
	kind diffOpKind
	line string
}

// buildDiffOps walks both line lists against their longest common
// subsequence.
func buildDiffOps(orig, mod []string) []diffOp {
	lcs := longestCommonSubsequence(orig, mod)
	ops := make([]diffOp, 0, len(orig)+len(mod))
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) && origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, diffOp{kind: opKeep, line: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++

			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: opRemove, line: orig[origIdx]})
			origIdx++
		}

		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{kind: opAdd, line: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// lineEdits turns each run of removed and added lines into one edit.
func lineEdits(ops []diffOp, base int) []TextEdit {
	var (
		edits   []TextEdit
		pending *TextEdit
		newText bytes.Buffer
	)

	offset := base
	flush := func() {
		if pending != nil {
			pending.NewText = newText.String()
			edits = append(edits, *pending)
			pending = nil
			newText.Reset()
		}
	}

	for _, op := range ops {
		if op.kind == opKeep {
			flush()
			offset += len(op.line)

			continue
		}

		if pending == nil {
			pending = &TextEdit{Start: offset, End: offset}
		}

		if op.kind == opRemove {
			offset += len(op.line)
			pending.End = offset
		} else {
			newText.WriteString(op.line)
		}
	}
	flush()

	return edits
}

// longestCommonSubsequence computes the LCS of two line lists.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][modLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := origLen, modLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
