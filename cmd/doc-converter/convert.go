// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-converter/internal/convert"
	"github.com/pdiddy/doc-converter/internal/engine"
	"github.com/pdiddy/doc-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert local files without the server",
	Long: `Convert runs the conversion engine directly on local files. All files in
one run share a direction: docx-to-pdf (the default) or pdf-to-docx.
Files are processed concurrently; a failure on one file does not stop the
others. The exit code is non-zero when any file failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	dirStr, _ := cmd.Flags().GetString("direction")
	direction, err := types.ParseDirection(dirStr)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	report, _ := cmd.Flags().GetString("report")

	eng := engine.NewSoffice(engineConfig(cmd))
	if _, err := eng.Probe(); err != nil {
		return err
	}

	// The store is not involved: outputs go straight to outDir.
	svc, err := convert.NewService(eng, nil, outDir)
	if err != nil {
		return err
	}

	result := svc.ConvertBatch(cmd.Context(), args, outDir, direction, concurrency, os.Stdout)

	if report != "" {
		if err := writeReport(report, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: report write failed: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// writeReport writes the batch outcome as YAML for scripting around the CLI.
func writeReport(path string, result convert.BatchResult) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func init() {
	convertCmd.Flags().String("direction", string(types.DocxToPDF), "conversion direction: docx-to-pdf or pdf-to-docx")
	convertCmd.Flags().String("out-dir", "converted", "directory for converted files")
	convertCmd.Flags().Int("concurrency", 4, "maximum parallel engine invocations")
	convertCmd.Flags().String("report", "", "write a YAML batch report to this path")
	addEngineFlags(convertCmd)

	rootCmd.AddCommand(convertCmd)
}
