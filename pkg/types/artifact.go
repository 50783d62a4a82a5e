// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared domain types and configuration structs for
// the doc-converter CLI and server.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Direction identifies which of the two supported conversions is being
// performed.
type Direction string

const (
	DocxToPDF Direction = "docx-to-pdf"
	PDFToDocx Direction = "pdf-to-docx"
)

// ParseDirection validates a direction string. Anything other than the two
// supported directions is rejected.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DocxToPDF:
		return DocxToPDF, nil
	case PDFToDocx:
		return PDFToDocx, nil
	}
	return "", fmt.Errorf("unknown direction %q (want %s or %s)", s, DocxToPDF, PDFToDocx)
}

// String returns the direction slug used in routes and config.
func (d Direction) String() string { return string(d) }

// SourceExt returns the required extension of input files, with leading dot.
func (d Direction) SourceExt() string {
	if d == PDFToDocx {
		return ".pdf"
	}
	return ".docx"
}

// TargetExt returns the extension of produced files, with leading dot.
func (d Direction) TargetExt() string {
	if d == PDFToDocx {
		return ".docx"
	}
	return ".pdf"
}

// OutputFormat returns the format argument passed to the conversion engine.
func (d Direction) OutputFormat() string {
	return strings.TrimPrefix(d.TargetExt(), ".")
}

// DisplayName swaps the extension of an original filename for the
// direction's target extension (e.g. "report.docx" -> "report.pdf").
func (d Direction) DisplayName(original string) string {
	stem := original
	if i := strings.LastIndex(original, "."); i > 0 {
		stem = original[:i]
	}
	if stem == "" {
		stem = "converted"
	}
	return stem + d.TargetExt()
}

// ConversionStatus indicates the state of a conversion job as recorded by
// the server and mirrored by the client queue.
type ConversionStatus string

const (
	StatusQueued     ConversionStatus = "queued"
	StatusProcessing ConversionStatus = "processing"
	StatusCompleted  ConversionStatus = "completed"
	StatusError      ConversionStatus = "error"
)

// Finished reports whether the status is terminal.
func (s ConversionStatus) Finished() bool {
	return s == StatusCompleted || s == StatusError
}

// Artifact is a converted output file retrievable by its identifier. The
// identifier is unique and is the only handle a client holds; the server
// never exposes directory listings.
type Artifact struct {
	// ID is the generated identifier returned to the client.
	ID string `json:"id" yaml:"id"`

	// Path is the absolute filesystem path of the stored output file.
	Path string `json:"path" yaml:"path"`

	// DisplayName is the original filename with its extension swapped to
	// the target format (e.g. "report.pdf").
	DisplayName string `json:"display_name" yaml:"display_name"`

	// Direction records which conversion produced the artifact.
	Direction Direction `json:"direction" yaml:"direction"`

	// Size is the output file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// CreatedAt is when the artifact was registered.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
