package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/image2radiomics/i2r/pkg/config"
	"github.com/image2radiomics/i2r/pkg/engine"
	"github.com/image2radiomics/i2r/pkg/events"
	"github.com/image2radiomics/i2r/pkg/features"
	"github.com/image2radiomics/i2r/pkg/pipeline"
	"github.com/image2radiomics/i2r/pkg/report"
	"github.com/image2radiomics/i2r/pkg/runner"
)

const configFile = "i2r.yaml"

func main() {
	var (
		pipelineFile = flag.String("c", "", "pipeline configuration file")
		inputFolder  = flag.String("i", "", "input folder substituted for the '.' placeholder")
		verbose      = flag.Bool("v", false, "print worker output to stdout")
		logFile      = flag.String("log", "", "log file (default: stderr)")
		newLog       = flag.Bool("new_log", false, "truncate the log file instead of appending")
	)
	flag.Parse()

	if *pipelineFile == "" {
		fmt.Fprintln(os.Stderr, "usage: i2r -c <pipeline file> [-i <input folder>] [-v] [-log <file> [-new_log]]")
		os.Exit(2)
	}

	setupLog(*logFile, *newLog)

	cfg := config.LoadIfPresent(configFile)

	p, err := pipeline.LoadFromFile(*pipelineFile)
	if err != nil {
		log.Fatalf("[Engine] Error loading pipeline file %s: %v", *pipelineFile, err)
	}
	log.Printf("[Engine] Loaded pipeline %s (%d block(s))", p.Path, len(p.Steps()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, cleanup := buildEngine(&cfg, *verbose)
	defer cleanup()

	manifest, runErr := eng.Run(ctx, &p, *inputFolder)

	manifestPath := *pipelineFile + ".run.json"
	if err := manifest.Write(manifestPath); err != nil {
		log.Printf("[Engine] Error writing run manifest: %v", err)
	}

	uploadResults(ctx, &cfg, *pipelineFile, manifest)

	if runErr != nil {
		log.Fatalf("[Engine] Pipeline failed: %v", runErr)
	}
	log.Printf("[Engine] Pipeline completed: %d block(s)", len(manifest.Blocks))
}

// setupLog redirects the standard logger to a file when -log is given. The
// file is appended to across runs unless -new_log asks for a fresh one.
func setupLog(path string, truncate bool) {
	if path == "" {
		return
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if truncate {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		log.Fatalf("[Engine] Error opening log file %s: %v", path, err)
	}
	log.SetOutput(f)
}

// buildEngine wires the runner and the optional event publisher.
func buildEngine(cfg *config.AppConfig, verbose bool) (*engine.Engine, func()) {
	var output io.Writer
	if verbose {
		output = os.Stdout
	}
	run := runner.New(cfg.Tools, output)

	opts := []engine.Option{engine.WithSummarizer(features.WriteSummary)}
	cleanup := func() {}

	pub, err := events.NewPublisher(cfg.Events)
	if err != nil {
		log.Fatalf("[Events] Error creating publisher: %v", err)
	}
	if pub != nil {
		opts = append(opts, engine.WithEvents(pub))
		cleanup = func() {
			if closeErr := pub.Close(); closeErr != nil {
				log.Printf("[Events] Error closing publisher: %v", closeErr)
			}
		}
	}

	return engine.New(run, opts...), cleanup
}

// uploadResults archives the final output folder to S3 when configured.
func uploadResults(ctx context.Context, cfg *config.AppConfig, pipelineFile string, manifest *report.RunManifest) {
	if !cfg.Results.S3.Enabled {
		return
	}

	folder := finalOutput(manifest)
	if folder == "" {
		log.Printf("[Results] No output folder to archive")
		return
	}

	name := strings.TrimSuffix(filepath.Base(pipelineFile), filepath.Ext(pipelineFile))
	if err := report.UploadArchive(ctx, cfg.Results.S3, name, folder); err != nil {
		log.Printf("[Results] Error uploading archive: %v", err)
	}
}

// finalOutput returns the last resolvable output folder of the run.
func finalOutput(manifest *report.RunManifest) string {
	for i := len(manifest.Blocks) - 1; i >= 0; i-- {
		out := manifest.Blocks[i].OutputFolder
		if out != "" && out != "~/" {
			return out
		}
	}
	return ""
}
