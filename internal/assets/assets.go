// Package assets provides the embedded starter template: a minimal
// DOCX cover letter carrying every supported placeholder token.
package assets

import (
	"archive/zip"
	"bytes"
	"embed"
	"fmt"
	"io/fs"
)

// The template directory holds the unzipped parts of the starter
// package. The all: prefix is required to include _rels/.rels, which
// plain directory embedding would skip.
//
//go:embed all:template
var templateFS embed.FS

// StarterTemplate assembles the embedded parts into a DOCX archive.
func StarterTemplate() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err := fs.WalkDir(templateFS, "template", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := templateFS.ReadFile(path)
		if err != nil {
			return err
		}

		name := path[len("template/"):]
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("assembling starter template: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("assembling starter template: %w", err)
	}
	return buf.Bytes(), nil
}
