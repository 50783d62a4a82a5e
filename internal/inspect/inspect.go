// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect verifies that engine output files are well formed before
// they are registered as artifacts. The engine occasionally exits zero while
// writing a truncated or empty file; these checks catch that.
package inspect

import (
	"archive/zip"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const contentTypesEntry = "[Content_Types].xml"

// PDF checks that path holds a parseable PDF with at least one page.
func PDF(path string) error {
	if err := nonEmpty(path); err != nil {
		return err
	}
	pages, err := api.PageCountFile(path)
	if err != nil {
		return fmt.Errorf("not a valid PDF: %w", err)
	}
	if pages < 1 {
		return fmt.Errorf("PDF has no pages")
	}
	return nil
}

// DOCX checks that path holds an OOXML container: a ZIP archive carrying
// the content-types manifest.
func DOCX(path string) error {
	if err := nonEmpty(path); err != nil {
		return err
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("not a valid DOCX container: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name == contentTypesEntry {
			return nil
		}
	}
	return fmt.Errorf("DOCX container missing %s", contentTypesEntry)
}

// Output dispatches to the checker for the given engine format name.
func Output(path, format string) error {
	switch format {
	case "pdf":
		return PDF(path)
	case "docx":
		return DOCX(path)
	}
	return fmt.Errorf("no inspector for format %q", format)
}

func nonEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output file missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output file %s is empty", path)
	}
	return nil
}
