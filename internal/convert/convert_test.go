// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/doc-converter/internal/engine"
	"github.com/pdiddy/doc-converter/internal/testdoc"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// fakeEngine implements engine.Engine for testing. It writes a canned
// output file, or fails, depending on configuration.
type fakeEngine struct {
	err    error  // returned from Convert when set
	output []byte // bytes written as the converted file; nil means valid fixture
	calls  int
}

func (f *fakeEngine) Probe() (string, error) {
	return "/usr/bin/soffice", nil
}

func (f *fakeEngine) Convert(ctx context.Context, inputPath, outDir, format string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}

	out := f.output
	if out == nil {
		if format == "pdf" {
			out = testdoc.PDFBytes()
		} else {
			out = testdoc.DOCXBytes()
		}
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(outDir, stem+"."+format)
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

// fakeStore records Put calls.
type fakeStore struct {
	err  error
	puts []string // display names
}

func (f *fakeStore) Put(ctx context.Context, srcPath, displayName string, direction types.Direction) (types.Artifact, error) {
	if f.err != nil {
		return types.Artifact{}, f.err
	}
	f.puts = append(f.puts, displayName)
	return types.Artifact{
		ID:          fmt.Sprintf("artifact-%d", len(f.puts)),
		Path:        srcPath,
		DisplayName: displayName,
		Direction:   direction,
	}, nil
}

func newTestService(t *testing.T, eng engine.Engine, st ArtifactStore) *Service {
	t.Helper()
	s, err := NewService(eng, st, t.TempDir())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return s
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name      string
		direction types.Direction
		wantErr   bool
	}{
		{"report.docx", types.DocxToPDF, false},
		{"REPORT.DOCX", types.DocxToPDF, false},
		{"report.pdf", types.DocxToPDF, true},
		{"report", types.DocxToPDF, true},
		{"scan.pdf", types.PDFToDocx, false},
		{"scan.docx", types.PDFToDocx, true},
	}

	s := newTestService(t, &fakeEngine{}, &fakeStore{})
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.direction.String(), func(t *testing.T) {
			err := s.ValidateFilename(tt.name, tt.direction)
			if tt.wantErr && !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ValidateFilename() = %v, want ErrInvalidFormat", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateFilename() = %v, want nil", err)
			}
		})
	}
}

func TestConvertUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("success registers artifact and cleans work dir", func(t *testing.T) {
		st := &fakeStore{}
		s := newTestService(t, &fakeEngine{}, st)

		a, err := s.ConvertUpload(ctx, "report.docx", strings.NewReader("docx payload"), types.DocxToPDF)
		if err != nil {
			t.Fatalf("ConvertUpload() error = %v", err)
		}
		if a.DisplayName != "report.pdf" {
			t.Errorf("DisplayName = %q, want report.pdf", a.DisplayName)
		}
		if len(st.puts) != 1 {
			t.Fatalf("store.Put called %d times, want 1", len(st.puts))
		}
		assertWorkDirClean(t, s, a.Path)
	})

	t.Run("invalid extension never reaches the engine", func(t *testing.T) {
		eng := &fakeEngine{}
		st := &fakeStore{}
		s := newTestService(t, eng, st)

		_, err := s.ConvertUpload(ctx, "report.pdf", strings.NewReader("x"), types.DocxToPDF)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("ConvertUpload() error = %v, want ErrInvalidFormat", err)
		}
		if eng.calls != 0 {
			t.Error("engine should not run for invalid input")
		}
		if len(st.puts) != 0 {
			t.Error("no artifact should be registered")
		}
	})

	t.Run("engine failure registers nothing", func(t *testing.T) {
		st := &fakeStore{}
		s := newTestService(t, &fakeEngine{err: engine.ErrFailed}, st)

		_, err := s.ConvertUpload(ctx, "report.docx", strings.NewReader("x"), types.DocxToPDF)
		if !errors.Is(err, engine.ErrFailed) {
			t.Fatalf("ConvertUpload() error = %v, want ErrFailed", err)
		}
		if len(st.puts) != 0 {
			t.Error("no artifact should be registered")
		}
		assertWorkDirClean(t, s)
	})

	t.Run("engine unavailable surfaces as such", func(t *testing.T) {
		s := newTestService(t, &fakeEngine{err: engine.ErrUnavailable}, &fakeStore{})

		_, err := s.ConvertUpload(ctx, "report.docx", strings.NewReader("x"), types.DocxToPDF)
		if !errors.Is(err, engine.ErrUnavailable) {
			t.Fatalf("ConvertUpload() error = %v, want ErrUnavailable", err)
		}
	})

	t.Run("corrupt engine output is rejected", func(t *testing.T) {
		st := &fakeStore{}
		s := newTestService(t, &fakeEngine{output: []byte("not a pdf at all")}, st)

		_, err := s.ConvertUpload(ctx, "report.docx", strings.NewReader("x"), types.DocxToPDF)
		if !errors.Is(err, engine.ErrFailed) {
			t.Fatalf("ConvertUpload() error = %v, want ErrFailed", err)
		}
		if len(st.puts) != 0 {
			t.Error("no artifact should be registered")
		}
		assertWorkDirClean(t, s)
	})

	t.Run("store failure removes the output", func(t *testing.T) {
		s := newTestService(t, &fakeEngine{}, &fakeStore{err: errors.New("disk full")})

		_, err := s.ConvertUpload(ctx, "report.docx", strings.NewReader("x"), types.DocxToPDF)
		if err == nil {
			t.Fatal("ConvertUpload() = nil, want error")
		}
		assertWorkDirClean(t, s)
	})

	t.Run("pdf to docx direction", func(t *testing.T) {
		st := &fakeStore{}
		s := newTestService(t, &fakeEngine{}, st)

		a, err := s.ConvertUpload(ctx, "scan.pdf", bytes.NewReader(testdoc.PDFBytes()), types.PDFToDocx)
		if err != nil {
			t.Fatalf("ConvertUpload() error = %v", err)
		}
		if a.DisplayName != "scan.docx" {
			t.Errorf("DisplayName = %q, want scan.docx", a.DisplayName)
		}
	})
}

// assertWorkDirClean fails if the work dir holds anything besides the
// listed surviving paths.
func assertWorkDirClean(t *testing.T, s *Service, survivors ...string) {
	t.Helper()
	keep := make(map[string]bool, len(survivors))
	for _, p := range survivors {
		keep[p] = true
	}
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		full := filepath.Join(s.workDir, e.Name())
		if !keep[full] {
			t.Errorf("leftover file in work dir: %s", e.Name())
		}
	}
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	good1 := filepath.Join(dir, "a.docx")
	good2 := filepath.Join(dir, "b.docx")
	bad := filepath.Join(dir, "c.txt")
	for _, p := range []string{good1, good2, bad} {
		if err := os.WriteFile(p, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := newTestService(t, &fakeEngine{}, &fakeStore{})
	var log bytes.Buffer
	outDir := filepath.Join(dir, "out")

	result := s.ConvertBatch(context.Background(), []string{good1, good2, bad}, outDir, types.DocxToPDF, 2, &log)

	if result.Converted != 2 || result.Failed != 1 {
		t.Errorf("BatchResult = %d converted, %d failed; want 2, 1", result.Converted, result.Failed)
	}
	if result.Total() != 3 {
		t.Errorf("Total() = %d, want 3", result.Total())
	}
	if !result.HasFailures() {
		t.Error("HasFailures() = false, want true")
	}
	if !strings.Contains(log.String(), "Batch summary: 2 converted, 1 failed") {
		t.Errorf("log missing summary: %q", log.String())
	}

	// Failures keep their slot so report order matches input order.
	if result.Files[2].Error == "" {
		t.Error("expected error recorded for c.txt")
	}
	if result.Files[0].Output == "" || result.Files[1].Output == "" {
		t.Error("expected outputs recorded for converted files")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.docx", "report.docx"},
		{"my report (final).docx", "my_report__final_.docx"},
		{"../../etc/passwd", "passwd"},
		{"résumé.docx", "r_sum_.docx"},
		{"...", "upload"},
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
