package docx

import (
	"sort"
	"strings"
)

// ReplaceOptions controls token matching behavior.
type ReplaceOptions struct {
	// MergeRuns additionally matches tokens whose text is split across
	// adjacent runs of one paragraph, as happens when an editor breaks
	// a token into several formatting runs. The replacement keeps the
	// formatting of the first affected run. Off by default: the
	// default pass only touches tokens intact within a single run.
	MergeRuns bool
}

// Replace rewrites every literal occurrence of each token across all
// text-bearing parts: body paragraphs, tables at any nesting depth,
// headers, and footers. Tokens are plain substrings, not patterns.
// Absent tokens are simply left alone.
func (d *Document) Replace(tokens map[string]string) {
	d.ReplaceWith(tokens, ReplaceOptions{})
}

// ReplaceWith is Replace with explicit options.
func (d *Document) ReplaceWith(tokens map[string]string, opts ReplaceOptions) {
	if len(tokens) == 0 {
		return
	}
	for _, part := range d.Parts {
		replaceBlocks(part.Blocks, tokens, opts)
	}
}

func replaceBlocks(blocks []Block, tokens map[string]string, opts ReplaceOptions) {
	for _, b := range blocks {
		switch el := b.(type) {
		case *Paragraph:
			replaceParagraph(el, tokens, opts)
		case *Table:
			for _, row := range el.Rows {
				for _, cell := range row.Cells {
					replaceBlocks(cell.Blocks, tokens, opts)
				}
			}
		}
	}
}

func replaceParagraph(p *Paragraph, tokens map[string]string, opts ReplaceOptions) {
	for _, run := range p.Runs {
		text := run.Text()
		for key, val := range tokens {
			if strings.Contains(text, key) {
				text = strings.ReplaceAll(text, key, val)
			}
		}
		if text != run.Text() {
			run.SetText(text)
		}
	}

	if opts.MergeRuns && len(p.Runs) > 1 {
		replaceAcrossRuns(p.Runs, tokens)
	}
}

// replaceAcrossRuns matches tokens on the joined text of a paragraph's
// runs and rewrites only occurrences that straddle a run boundary
// (run-local ones were handled above). The replacement value lands in
// the first affected run, middle runs are emptied, and the last run
// keeps its tail. Repeats until no straddling occurrence remains;
// terminates because replacement values never reintroduce tokens.
func replaceAcrossRuns(runs []*Run, tokens map[string]string) {
	for {
		offsets, joined := joinRuns(runs)

		replaced := false
		for key, val := range tokens {
			idx := strings.Index(joined, key)
			for idx >= 0 {
				first := runAt(offsets, idx)
				last := runAt(offsets, idx+len(key)-1)
				if first != last {
					spliceRuns(runs, offsets, idx, len(key), val, first, last)
					replaced = true
					break
				}
				next := strings.Index(joined[idx+1:], key)
				if next < 0 {
					break
				}
				idx += 1 + next
			}
			if replaced {
				break // offsets are stale, rebuild
			}
		}
		if !replaced {
			return
		}
	}
}

// joinRuns returns the concatenated run text and the start offset of
// each run within it (offsets has len(runs)+1 entries).
func joinRuns(runs []*Run) ([]int, string) {
	offsets := make([]int, len(runs)+1)
	var b strings.Builder
	for i, r := range runs {
		offsets[i] = b.Len()
		b.WriteString(r.Text())
	}
	offsets[len(runs)] = b.Len()
	return offsets, b.String()
}

// runAt returns the index of the run whose text contains position pos.
// Zero-width runs are skipped.
func runAt(offsets []int, pos int) int {
	return sort.Search(len(offsets)-1, func(i int) bool {
		return offsets[i+1] > pos
	})
}

func spliceRuns(runs []*Run, offsets []int, idx, keyLen int, val string, first, last int) {
	runs[first].SetText(runs[first].Text()[:idx-offsets[first]] + val)
	for k := first + 1; k < last; k++ {
		runs[k].SetText("")
	}
	runs[last].SetText(runs[last].Text()[idx+keyLen-offsets[last]:])
}
