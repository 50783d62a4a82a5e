// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspect

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/doc-converter/internal/testdoc"
)

// writeZip creates a zip file at path with the given entries.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPDF(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid one-page PDF", func(t *testing.T) {
		path := filepath.Join(dir, "ok.pdf")
		testdoc.WritePDF(t, path)
		if err := PDF(path); err != nil {
			t.Errorf("PDF() = %v, want nil", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.pdf")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := PDF(path); err == nil {
			t.Error("PDF() = nil for empty file")
		}
	})

	t.Run("garbage bytes", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.pdf")
		if err := os.WriteFile(path, []byte("this is not a pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := PDF(path); err == nil {
			t.Error("PDF() = nil for garbage bytes")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if err := PDF(filepath.Join(dir, "nope.pdf")); err == nil {
			t.Error("PDF() = nil for missing file")
		}
	})
}

func TestDOCX(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid container", func(t *testing.T) {
		path := filepath.Join(dir, "ok.docx")
		testdoc.WriteDOCX(t, path)
		if err := DOCX(path); err != nil {
			t.Errorf("DOCX() = %v, want nil", err)
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(dir, "bad.docx")
		if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := DOCX(path); err == nil {
			t.Error("DOCX() = nil for non-zip file")
		}
	})

	t.Run("zip without manifest", func(t *testing.T) {
		path := filepath.Join(dir, "nomanifest.docx")
		// A bare zip holding an unrelated entry.
		writeZip(t, path, map[string]string{"readme.txt": "hi"})
		if err := DOCX(path); err == nil {
			t.Error("DOCX() = nil for zip without content types")
		}
	})
}

func TestOutput(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "a.pdf")
	testdoc.WritePDF(t, pdfPath)

	if err := Output(pdfPath, "pdf"); err != nil {
		t.Errorf("Output(pdf) = %v", err)
	}
	if err := Output(pdfPath, "odt"); err == nil {
		t.Error("Output() = nil for unknown format")
	}
}
