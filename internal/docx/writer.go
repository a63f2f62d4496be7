package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
)

// Bytes serializes the document back into a DOCX archive. Entries keep
// their original order; only parts with edited runs are rewritten.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range d.entries {
		data := e.data
		if e.part != nil {
			data = e.part.bytes()
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.name,
			Method: zip.Deflate,
		})
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// bytes splices edited run text into the raw part bytes. Run spans are
// recorded in document order and never overlap, so a single forward
// pass suffices. Untouched parts are returned as-is.
func (p *Part) bytes() []byte {
	var edited []*Run
	for _, r := range p.runs {
		if r.dirty() {
			edited = append(edited, r)
		}
	}
	if len(edited) == 0 {
		return p.raw
	}

	var out bytes.Buffer
	out.Grow(len(p.raw))
	var pos int64
	for _, r := range edited {
		out.Write(p.raw[pos:r.start])
		escapeText(&out, r.text)
		pos = r.end
	}
	out.Write(p.raw[pos:])
	return out.Bytes()
}

// escapeText writes s with XML character escaping. bytes.Buffer writes
// cannot fail, so the EscapeText error is impossible here.
func escapeText(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
