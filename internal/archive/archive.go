// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive bundles stored artifacts into a single ZIP stream for
// bulk download.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// Entry is one file to include in the bundle.
type Entry struct {
	// Path is the artifact file on disk.
	Path string

	// Name is the entry name inside the archive (the display name).
	Name string
}

// WriteZip streams entries into w as a ZIP archive and returns the number
// of entries written. Duplicate entry names get a " (n)" suffix before the
// extension so no file silently overwrites another. The archive is written
// incrementally; a read failure part-way leaves a truncated stream, which
// the HTTP layer cannot undo once headers are sent.
func WriteZip(w io.Writer, entries []Entry) (int, error) {
	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(entries))

	for _, e := range entries {
		name := uniqueName(seen, e.Name)
		if err := writeEntry(zw, e.Path, name); err != nil {
			zw.Close()
			return 0, fmt.Errorf("archiving %s: %w", e.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return len(entries), nil
}

func writeEntry(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ew, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(ew, f)
	return err
}

// uniqueName disambiguates repeated display names: "report.pdf" becomes
// "report (2).pdf" on its second occurrence.
func uniqueName(seen map[string]int, name string) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}

	stem, ext := name, ""
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			stem, ext = name[:i], name[i:]
			break
		}
	}
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
