package docx

import "strings"

// Block is a top-level element inside a body or table cell: either a
// *Paragraph or a *Table, in document order.
type Block interface {
	isBlock()
}

// Paragraph is an ordered sequence of formatting runs.
type Paragraph struct {
	Runs []*Run
}

func (*Paragraph) isBlock() {}

// Text returns the concatenated text of all runs in the paragraph.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text())
	}
	return b.String()
}

// Table is an ordered sequence of rows.
type Table struct {
	Rows []*Row
}

func (*Table) isBlock() {}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []*Cell
}

// Cell contains paragraphs and, possibly, nested tables.
type Cell struct {
	Blocks []Block
}

// Run holds the text of a single <w:t> node. WordprocessingML runs
// almost always carry exactly one text node; runs whose text node is
// absent or self-closing appear with empty text and are never edited.
type Run struct {
	text string
	orig string

	// Byte span of the character data inside the owning part,
	// [start, end). Valid only when spliceable is true.
	start      int64
	end        int64
	spliceable bool
}

// Text returns the current run text.
func (r *Run) Text() string {
	return r.text
}

// SetText replaces the run text. The change is applied to the part
// bytes when the document is serialized.
func (r *Run) SetText(s string) {
	r.text = s
}

func (r *Run) dirty() bool {
	return r.spliceable && r.text != r.orig
}

// Part is one text-bearing XML part of the package, such as
// word/document.xml or word/header1.xml.
type Part struct {
	Name   string
	Blocks []Block

	raw  []byte
	runs []*Run // every run in the part, document order
}

// Text returns the part's visible text, one line per paragraph,
// including paragraphs nested inside tables.
func (p *Part) Text() string {
	var lines []string
	collectText(p.Blocks, &lines)
	return strings.Join(lines, "\n")
}

func collectText(blocks []Block, lines *[]string) {
	for _, b := range blocks {
		switch el := b.(type) {
		case *Paragraph:
			*lines = append(*lines, el.Text())
		case *Table:
			for _, row := range el.Rows {
				for _, cell := range row.Cells {
					collectText(cell.Blocks, lines)
				}
			}
		}
	}
}

// Document is a parsed DOCX package. Parts holds the text-bearing
// parts (body first, then headers and footers in archive order); all
// remaining archive entries are preserved untouched.
type Document struct {
	Parts []*Part

	entries []zipEntry
}

type zipEntry struct {
	name string
	data []byte
	part *Part // non-nil for parsed text parts
}

// Body returns the main document part (word/document.xml).
func (d *Document) Body() *Part {
	for _, p := range d.Parts {
		if p.Name == documentPartName {
			return p
		}
	}
	return nil
}

// Headers returns the header parts in archive order.
func (d *Document) Headers() []*Part {
	return d.partsWithPrefix("word/header")
}

// Footers returns the footer parts in archive order.
func (d *Document) Footers() []*Part {
	return d.partsWithPrefix("word/footer")
}

func (d *Document) partsWithPrefix(prefix string) []*Part {
	var out []*Part
	for _, p := range d.Parts {
		if strings.HasPrefix(p.Name, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Text returns the visible text of the main document part.
func (d *Document) Text() string {
	if body := d.Body(); body != nil {
		return body.Text()
	}
	return ""
}
