// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the upload-to-artifact conversion pipeline:
// validate the input name, stage the file, run the external engine, verify
// the output, and register the artifact. It also provides the batch path
// used by the CLI for local files.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/doc-converter/internal/engine"
	"github.com/pdiddy/doc-converter/internal/inspect"
	"github.com/pdiddy/doc-converter/pkg/types"
)

// ErrInvalidFormat means the input filename does not carry the extension
// the requested direction expects.
var ErrInvalidFormat = errors.New("invalid input format")

// ArtifactStore registers converted outputs. Implemented by store.Store.
type ArtifactStore interface {
	Put(ctx context.Context, srcPath, displayName string, direction types.Direction) (types.Artifact, error)
}

// Service runs conversions through the engine and registers results.
type Service struct {
	engine  engine.Engine
	store   ArtifactStore
	workDir string
}

// NewService creates a conversion service. workDir holds staged uploads and
// raw engine output; it is created if missing.
func NewService(eng engine.Engine, st ArtifactStore, workDir string) (*Service, error) {
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	return &Service{engine: eng, store: st, workDir: workDir}, nil
}

// ValidateFilename checks that name carries the direction's source
// extension (case-insensitive).
func (s *Service) ValidateFilename(name string, direction types.Direction) error {
	want := direction.SourceExt()
	if strings.ToLower(filepath.Ext(name)) != want {
		return fmt.Errorf("%w: file must be a %s document", ErrInvalidFormat, want)
	}
	return nil
}

// ConvertUpload stages the uploaded file, runs the engine, verifies the
// output, and registers the artifact. On any failure nothing is registered
// and staged files are removed. The returned artifact's display name is the
// original filename with the target extension.
func (s *Service) ConvertUpload(ctx context.Context, filename string, r io.Reader, direction types.Direction) (types.Artifact, error) {
	if err := s.ValidateFilename(filename, direction); err != nil {
		return types.Artifact{}, err
	}

	// Stage under a unique prefix: the engine names its output after the
	// input stem, so the prefix keeps concurrent conversions apart.
	staged := filepath.Join(s.workDir, uuid.NewString()+"_"+sanitize(filename))
	if err := writeFile(staged, r); err != nil {
		return types.Artifact{}, fmt.Errorf("staging upload: %w", err)
	}
	defer os.Remove(staged)

	outPath, err := s.engine.Convert(ctx, staged, s.workDir, direction.OutputFormat())
	if err != nil {
		return types.Artifact{}, err
	}

	if err := inspect.Output(outPath, direction.OutputFormat()); err != nil {
		os.Remove(outPath)
		return types.Artifact{}, fmt.Errorf("%w: %v", engine.ErrFailed, err)
	}

	artifact, err := s.store.Put(ctx, outPath, direction.DisplayName(filename), direction)
	if err != nil {
		os.Remove(outPath)
		return types.Artifact{}, err
	}
	return artifact, nil
}

// ConvertFile converts a local file, writing the output into outDir. Used
// by the CLI; the artifact store is not involved.
func (s *Service) ConvertFile(ctx context.Context, path, outDir string, direction types.Direction) (string, error) {
	if err := s.ValidateFilename(filepath.Base(path), direction); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outPath, err := s.engine.Convert(ctx, path, outDir, direction.OutputFormat())
	if err != nil {
		return "", err
	}
	if err := inspect.Output(outPath, direction.OutputFormat()); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("%w: %v", engine.ErrFailed, err)
	}
	return outPath, nil
}

// FileResult records the outcome of one file in a batch run.
type FileResult struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output,omitempty" yaml:"output,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int          `json:"converted" yaml:"converted"`
	Failed    int          `json:"failed" yaml:"failed"`
	Files     []FileResult `json:"files" yaml:"files"`
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts local files concurrently, up to limit engine
// invocations at once. Each file is an independent unit of work: one
// failure never affects its siblings. Per-file status lines go to w.
func (s *Service) ConvertBatch(ctx context.Context, paths []string, outDir string, direction types.Direction, limit int, w io.Writer) BatchResult {
	if limit <= 0 {
		limit = 4
	}

	results := make([]FileResult, len(paths))
	var mu sync.Mutex

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, p := range paths {
		eg.Go(func() error {
			out, err := s.ConvertFile(gctx, p, outDir, direction)
			res := FileResult{Input: p, Output: out}
			if err != nil {
				res.Error = err.Error()
			}

			mu.Lock()
			results[i] = res
			if err != nil {
				fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(p), err)
			} else {
				fmt.Fprintf(w, "converted: %s -> %s\n", filepath.Base(p), filepath.Base(out))
			}
			mu.Unlock()
			return nil
		})
	}
	eg.Wait()

	var result BatchResult
	result.Files = results
	for _, r := range results {
		if r.Error != "" {
			result.Failed++
		} else {
			result.Converted++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// sanitize reduces an uploaded filename to a safe basename: anything
// outside a conservative character set is replaced, and an empty result
// falls back to "upload".
func sanitize(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "upload"
	}
	return out
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
