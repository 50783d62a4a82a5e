// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"docx-to-pdf", DocxToPDF, false},
		{"pdf-to-docx", PDFToDocx, false},
		{"DOCX-TO-PDF", DocxToPDF, false},
		{"  pdf-to-docx  ", PDFToDocx, false},
		{"pdf-to-pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDirection(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestDirectionExtensions(t *testing.T) {
	if got := DocxToPDF.SourceExt(); got != ".docx" {
		t.Errorf("DocxToPDF.SourceExt() = %q", got)
	}
	if got := DocxToPDF.TargetExt(); got != ".pdf" {
		t.Errorf("DocxToPDF.TargetExt() = %q", got)
	}
	if got := PDFToDocx.SourceExt(); got != ".pdf" {
		t.Errorf("PDFToDocx.SourceExt() = %q", got)
	}
	if got := PDFToDocx.OutputFormat(); got != "docx" {
		t.Errorf("PDFToDocx.OutputFormat() = %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		direction Direction
		in        string
		want      string
	}{
		{DocxToPDF, "report.docx", "report.pdf"},
		{DocxToPDF, "archive.v2.docx", "archive.v2.pdf"},
		{PDFToDocx, "scan.pdf", "scan.docx"},
		{DocxToPDF, "noext", "noext.pdf"},
	}
	for _, tt := range tests {
		if got := tt.direction.DisplayName(tt.in); got != tt.want {
			t.Errorf("%s.DisplayName(%q) = %q, want %q", tt.direction, tt.in, got, tt.want)
		}
	}
}

func TestConversionStatusFinished(t *testing.T) {
	for status, want := range map[ConversionStatus]bool{
		StatusQueued:     false,
		StatusProcessing: false,
		StatusCompleted:  true,
		StatusError:      true,
	} {
		if got := status.Finished(); got != want {
			t.Errorf("%s.Finished() = %v, want %v", status, got, want)
		}
	}
}
