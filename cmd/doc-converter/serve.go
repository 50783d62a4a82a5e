// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-converter/internal/convert"
	"github.com/pdiddy/doc-converter/internal/engine"
	"github.com/pdiddy/doc-converter/internal/server"
	"github.com/pdiddy/doc-converter/internal/store"
	"github.com/pdiddy/doc-converter/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local conversion server and browser UI",
	Long: `Serve starts the HTTP server that backs the browser UI: upload a DOCX or
PDF file, download the converted result individually or as a ZIP archive.
Artifacts live under the data directory until removed by hand.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		if dataDir = viper.GetString("store.data_dir"); dataDir == "" {
			dataDir = "data"
		}
	}
	workDir, _ := cmd.Flags().GetString("work-dir")
	if workDir == "" {
		if workDir = viper.GetString("convert.work_dir"); workDir == "" {
			workDir = "uploads"
		}
	}

	eng := engine.NewSoffice(engineConfig(cmd))
	if path, err := eng.Probe(); err != nil {
		log.Warn("conversion engine not found; conversions will fail until LibreOffice is installed")
	} else {
		log.Info("conversion engine found", "path", path)
	}

	st, err := store.New(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return fmt.Errorf("opening artifact store: %w", err)
	}
	defer st.Close()

	svc, err := convert.NewService(eng, st, workDir)
	if err != nil {
		return err
	}

	srv := server.New(types.ServerConfig{Addr: addr}, svc, st, eng, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default localhost:5001)")
	serveCmd.Flags().String("data-dir", "", "artifact directory (default ./data)")
	serveCmd.Flags().String("work-dir", "", "upload staging directory (default ./uploads)")
	addEngineFlags(serveCmd)

	rootCmd.AddCommand(serveCmd)
}
