package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"testing"
)

// Shared builders for in-memory DOCX fixtures.

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// wrapDocument wraps body XML in a w:document envelope.
func wrapDocument(body string) string {
	return xmlHeader +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body + `</w:body></w:document>`
}

// wrapHeader and wrapFooter wrap content in header/footer envelopes.
func wrapHeader(content string) string {
	return xmlHeader +
		`<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		content + `</w:hdr>`
}

func wrapFooter(content string) string {
	return xmlHeader +
		`<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		content + `</w:ftr>`
}

// para builds a single-run paragraph. The text must already be
// XML-escaped by the caller.
func para(escapedText string) string {
	return `<w:p><w:r><w:t>` + escapedText + `</w:t></w:r></w:p>`
}

// buildDocx assembles a DOCX archive from part name to content.
// Content types and package relationships are added automatically.
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	all := map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"_rels/.rels":         relsXML,
	}
	for name, content := range parts {
		all[name] = content
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(all[name])); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return buf.Bytes()
}

func newZipReader(archive []byte) (*zip.Reader, error) {
	return zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
}

// extractPart reads one part's raw bytes back out of an archive.
func extractPart(t *testing.T, archive []byte, name string) []byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("opening %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("reading %s: %v", name, err)
			}
			return data
		}
	}
	t.Fatalf("part %s not found in archive", name)
	return nil
}

// mustParse parses an archive or fails the test.
func mustParse(t *testing.T, archive []byte) *Document {
	t.Helper()
	doc, err := Parse(archive)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}
