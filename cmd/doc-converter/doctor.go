// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc-converter/internal/engine"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the conversion engine is installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine.NewSoffice(engineConfig(cmd))
		path, err := eng.Probe()
		if err != nil {
			return err
		}
		fmt.Printf("conversion engine found: %s\n", path)
		return nil
	},
}

func init() {
	addEngineFlags(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}
