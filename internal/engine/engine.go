// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine implements discovery and invocation of the external
// document conversion engine (LibreOffice in headless mode).
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-converter/pkg/types"
)

var (
	// ErrUnavailable means no conversion engine binary could be found on
	// the host.
	ErrUnavailable = errors.New("conversion engine not available")

	// ErrFailed means the engine ran but did not produce a valid output
	// file.
	ErrFailed = errors.New("conversion failed")
)

// Engine converts a document file to a target format by invoking an
// external binary. Implementations block until the engine exits; a single
// attempt is made per call, with no retries.
type Engine interface {
	// Probe reports the resolved engine binary path, or ErrUnavailable.
	Probe() (string, error)

	// Convert runs the engine on inputPath, writing the converted file
	// into outDir, and returns the output file path. format is the target
	// format name ("pdf" or "docx").
	Convert(ctx context.Context, inputPath, outDir, format string) (string, error)
}

// executor abstracts command execution and path probing for testing.
type executor interface {
	LookPath(file string) (string, error)
	FileExists(path string) bool
	Run(ctx context.Context, name string, args ...string) (output string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

const binSoffice = "soffice"

// candidatePaths are checked before falling back to $PATH. Covers the
// macOS app bundle, Homebrew, and common Linux install locations.
var candidatePaths = []string{
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	"/opt/homebrew/bin/soffice",
	"/usr/local/bin/soffice",
	"/usr/bin/soffice",
	"/usr/bin/libreoffice",
	"/snap/bin/libreoffice",
}

// Soffice is the LibreOffice implementation of Engine. It resolves the
// binary per call so a freshly installed engine is picked up without a
// restart.
type Soffice struct {
	cfg  types.EngineConfig
	exec executor
}

// NewSoffice creates a LibreOffice engine adapter from config. An explicit
// cfg.Path pins the binary; otherwise discovery walks candidatePaths and
// then $PATH.
func NewSoffice(cfg types.EngineConfig) *Soffice {
	return &Soffice{cfg: cfg, exec: defaultExec}
}

var defaultExec executor = &osExecutor{}

// Probe resolves the engine binary path without running a conversion.
func (s *Soffice) Probe() (string, error) {
	if s.cfg.Path != "" {
		if s.exec.FileExists(s.cfg.Path) {
			return s.cfg.Path, nil
		}
		return "", fmt.Errorf("%w: configured path %s does not exist", ErrUnavailable, s.cfg.Path)
	}

	for _, p := range candidatePaths {
		if s.exec.FileExists(p) {
			return p, nil
		}
	}

	if p, err := s.exec.LookPath(binSoffice); err == nil {
		return p, nil
	}

	return "", fmt.Errorf("%w: %s not found; install LibreOffice from https://www.libreoffice.org/download/", ErrUnavailable, binSoffice)
}

// Convert invokes soffice in headless mode and waits for it to exit. The
// output file is expected at outDir/<input stem>.<format>; a missing output
// or non-zero exit maps to ErrFailed.
func (s *Soffice) Convert(ctx context.Context, inputPath, outDir, format string) (string, error) {
	bin, err := s.Probe()
	if err != nil {
		return "", err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	// PDF export goes through the writer filter; other formats are
	// auto-detected by the engine.
	convertTo := format
	if format == "pdf" {
		convertTo = "pdf:writer_pdf_Export"
	}

	// Concurrent soffice processes must not share a user profile, so each
	// invocation gets its own throwaway profile directory.
	profileDir, err := os.MkdirTemp("", "soffice-profile-")
	if err != nil {
		return "", fmt.Errorf("creating engine profile dir: %w", err)
	}
	defer os.RemoveAll(profileDir)

	args := []string{
		"--headless",
		"-env:UserInstallation=file://" + profileDir,
		"--convert-to", convertTo,
		"--outdir", outDir,
		inputPath,
	}

	out, err := s.exec.Run(ctx, bin, args...)
	if err != nil {
		return "", fmt.Errorf("%w: engine exited: %v (%s)", ErrFailed, err, excerpt(out))
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(outDir, stem+"."+format)
	if !s.exec.FileExists(outputPath) {
		return "", fmt.Errorf("%w: engine produced no output for %s (%s)", ErrFailed, filepath.Base(inputPath), excerpt(out))
	}

	return outputPath, nil
}

// excerpt trims engine output to a single short line for error messages.
func excerpt(out string) string {
	out = strings.TrimSpace(out)
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	const max = 200
	if len(out) > max {
		out = out[:max]
	}
	if out == "" {
		return "no engine output"
	}
	return out
}
