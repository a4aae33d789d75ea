// Command batch runs an RFdiffusion3 batch file without the web portal and
// writes every generated structure into one zip archive.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	_ "go.uber.org/automaxprocs"

	"bioportal/internal/adapters/backend"
	"bioportal/internal/adapters/batchfile"
	"bioportal/internal/adapters/download"
	"bioportal/internal/config"
	"bioportal/internal/core/domain"
	"bioportal/internal/core/logger"
	"bioportal/internal/core/services"
)

func main() {
	input := flag.String("input", "", "CSV or Excel batch file")
	output := flag.String("output", "rdf3_batch_results.zip", "zip archive to write")
	backendName := flag.String("backend", "", "design backend (defaults to PORTAL_DEFAULT_BACKEND)")
	flag.Parse()

	if *input == "" {
		log.Fatal("-input is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *input, err)
	}
	table, err := batchfile.Parse(filepath.Base(*input), data)
	if err != nil {
		log.Fatalf("%s: %s", *input, batchfile.Message(err))
	}

	registry := backend.NewRegistry(
		backend.NewStub(),
		backend.NewCLI(cfg.CLIBinary, cfg.CLIOutDir),
		backend.NewAPI(cfg.APIURL, cfg.APIKey),
	)
	design := services.NewDesignService(registry, cfg.DefaultBackend, backend.NameCLI, backend.NameAPI)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	batchID := uuid.NewString()
	logger.Info("Batch started", "batch_id", batchID, "file", *input, "rows", len(table.Records))

	outcomes := services.NewBatchService().Process(ctx, table.Records, services.BatchDesignMapping,
		design.RowHandler(*backendName),
		func(p domain.Progress) {
			logger.Info("Batch progress", "batch_id", batchID, "completed", p.Completed, "total", p.Total)
		},
	)

	for _, o := range outcomes {
		if o.Status == domain.RowStatusFailed {
			logger.Warn("Row failed", "row", o.Row, "kind", o.Kind, "error", o.Error)
		}
	}

	summary := domain.Summarize(outcomes)
	arts := domain.CollectArtifacts(outcomes)
	if len(arts) == 0 {
		logger.Error("Batch produced no structures", "failed", summary.Failed)
		os.Exit(1)
	}

	archive, err := download.BuildZip(arts)
	if err != nil {
		log.Fatalf("failed to build archive: %v", err)
	}
	if err := os.WriteFile(*output, archive, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", *output, err)
	}

	logger.Info("Batch finished", "batch_id", batchID, "done", summary.Done, "failed", summary.Failed, "designs", len(arts), "output", *output)
}
