package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
)

// WordprocessingML main namespace.
const nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const documentPartName = "word/document.xml"

// Sentinel errors for DOCX parsing.
var (
	ErrNotArchive          = errors.New("not a DOCX archive")
	ErrMissingDocumentPart = errors.New("missing word/document.xml")
)

// textPartPattern matches the archive entries that carry document text:
// the body plus every header and footer part.
var textPartPattern = regexp.MustCompile(`^word/(document|header\d*|footer\d*)\.xml$`)

// Parse reads a DOCX package from memory. Every archive entry is
// retained; the text-bearing parts are additionally parsed into the
// block tree for substitution.
func Parse(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArchive, err)
	}

	doc := &Document{}
	for _, f := range zr.File {
		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}

		entry := zipEntry{name: f.Name, data: content}
		if textPartPattern.MatchString(f.Name) {
			part, err := parsePart(f.Name, content)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", f.Name, err)
			}
			entry.part = part
			doc.Parts = append(doc.Parts, part)
		}
		doc.entries = append(doc.entries, entry)
	}

	body := doc.Body()
	if body == nil {
		return nil, ErrMissingDocumentPart
	}

	// Body first, headers and footers keep archive order after it.
	ordered := []*Part{body}
	for _, p := range doc.Parts {
		if p != body {
			ordered = append(ordered, p)
		}
	}
	doc.Parts = ordered

	return doc, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// partParser tracks the open element context while scanning one part.
// Containers are explicit stacks so tables nest to any depth.
type partParser struct {
	part       *Part
	containers []*[]Block
	tables     []*Table
	rows       []*Row
	paragraphs []*Paragraph
	run        *Run
	inText     bool
}

// parsePart builds the block tree for one XML part while recording the
// byte span of every <w:t> character-data section for later splicing.
func parsePart(name string, raw []byte) (*Part, error) {
	part := &Part{Name: name, raw: raw}
	p := &partParser{part: part}
	p.containers = append(p.containers, &part.Blocks)

	dec := xml.NewDecoder(bytes.NewReader(raw))
	var prev int64
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cur := dec.InputOffset()

		switch t := tok.(type) {
		case xml.StartElement:
			p.startElement(t.Name)
		case xml.EndElement:
			p.endElement(t.Name)
		case xml.CharData:
			p.charData(t, prev, cur)
		}
		prev = cur
	}

	return part, nil
}

// isW reports whether the element belongs to the main WordprocessingML
// namespace. Parts written without namespace declarations resolve to an
// empty space and are accepted too.
func isW(name xml.Name) bool {
	return name.Space == nsW || name.Space == ""
}

func (p *partParser) startElement(name xml.Name) {
	if !isW(name) {
		return
	}
	switch name.Local {
	case "p":
		para := &Paragraph{}
		p.appendBlock(para)
		p.paragraphs = append(p.paragraphs, para)
	case "tbl":
		table := &Table{}
		p.appendBlock(table)
		p.tables = append(p.tables, table)
	case "tr":
		if n := len(p.tables); n > 0 {
			row := &Row{}
			p.tables[n-1].Rows = append(p.tables[n-1].Rows, row)
			p.rows = append(p.rows, row)
		}
	case "tc":
		if n := len(p.rows); n > 0 {
			cell := &Cell{}
			p.rows[n-1].Cells = append(p.rows[n-1].Cells, cell)
			p.containers = append(p.containers, &cell.Blocks)
		}
	case "t":
		if n := len(p.paragraphs); n > 0 {
			run := &Run{}
			para := p.paragraphs[n-1]
			para.Runs = append(para.Runs, run)
			p.part.runs = append(p.part.runs, run)
			p.run = run
			p.inText = true
		}
	}
}

func (p *partParser) endElement(name xml.Name) {
	if !isW(name) {
		return
	}
	switch name.Local {
	case "p":
		if n := len(p.paragraphs); n > 0 {
			p.paragraphs = p.paragraphs[:n-1]
		}
	case "tbl":
		if n := len(p.tables); n > 0 {
			p.tables = p.tables[:n-1]
		}
	case "tr":
		if n := len(p.rows); n > 0 {
			p.rows = p.rows[:n-1]
		}
	case "tc":
		if n := len(p.containers); n > 1 {
			p.containers = p.containers[:n-1]
		}
	case "t":
		p.run = nil
		p.inText = false
	}
}

// charData records the raw byte span [prev, cur) of a text section.
// A run whose text node never produced character data (empty or
// self-closing <w:t/>) stays non-spliceable and is never edited.
func (p *partParser) charData(data xml.CharData, prev, cur int64) {
	if !p.inText || p.run == nil {
		return
	}
	if !p.run.spliceable {
		p.run.start = prev
		p.run.spliceable = true
	}
	p.run.end = cur
	p.run.text += string(data)
	p.run.orig = p.run.text
}

func (p *partParser) appendBlock(b Block) {
	top := p.containers[len(p.containers)-1]
	*top = append(*top, b)
}
