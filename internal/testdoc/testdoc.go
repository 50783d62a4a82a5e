// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testdoc builds minimal but well-formed PDF and DOCX fixture files
// for tests. The PDF carries a correct xref table so it survives strict
// parsing; the DOCX is a ZIP container with the content-types manifest.
package testdoc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"testing"
)

// PDFBytes returns a one-page PDF document.
func PDFBytes() []byte {
	var buf bytes.Buffer
	offsets := make([]int, 4)

	buf.WriteString("%PDF-1.4\n")
	obj := func(i int, body string) {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i, body)
	}
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")

	xref := buf.Len()
	buf.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for i := 1; i <= 3; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// DOCXBytes returns a minimal OOXML word-processing container.
func DOCXBytes() []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
			`<w:body><w:p/></w:body></w:document>`,
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WritePDF writes a valid one-page PDF to path.
func WritePDF(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path, PDFBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// WriteDOCX writes a valid minimal DOCX to path.
func WriteDOCX(t testing.TB, path string) {
	t.Helper()
	if err := os.WriteFile(path, DOCXBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}
