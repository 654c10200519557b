package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/image2radiomics/i2r/pkg/config"
	"github.com/image2radiomics/i2r/pkg/scheduler"
	"github.com/image2radiomics/i2r/pkg/state"
	"github.com/image2radiomics/i2r/pkg/watch"
)

const configFile = "i2r.yaml"

func main() {
	var (
		input        = flag.String("i", "", "drop folder to watch")
		workdir      = flag.String("o", "", "working folder where dataset pools are created")
		minutes      = flag.Int("m", 5, "minutes between scans")
		cdelay       = flag.Int("cdelay", 10, "minimum dataset age in minutes before it is considered")
		tdelay       = flag.Int("tdelay", 60, "seconds the dataset content must stay unchanged")
		remove       = flag.Bool("r", false, "remove the source dataset after submission")
		jobScheduler = flag.String("job_scheduler", "SGE", "job scheduler: SGE, SLURM or None")
		jobScript    = flag.String("j", "", "job script submitted for each dataset pool")
		logFile      = flag.String("log", "", "log file (default: stderr)")
	)
	flag.Parse()

	if *input == "" || *workdir == "" || *jobScript == "" {
		fmt.Fprintln(os.Stderr, "usage: i2r-autowatch -i <drop folder> -o <work folder> -j <job script> [options]")
		os.Exit(2)
	}

	setupLog(*logFile)

	schedType, err := scheduler.Normalize(*jobScheduler)
	if err != nil {
		log.Fatalf("[Watch] %v", err)
	}

	cfg := config.LoadIfPresent(configFile)

	store, err := state.NewStore("autowatch-"+filepath.Base(*input), &cfg)
	if err != nil {
		log.Fatalf("[State] Error opening processed-dataset store: %v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCheckpointing(ctx, &cfg, store)

	w := watch.New(watch.Options{
		Input:          *input,
		Workdir:        *workdir,
		Interval:       time.Duration(*minutes) * time.Minute,
		CreationDelay:  time.Duration(*cdelay) * time.Minute,
		StabilityDelay: time.Duration(*tdelay) * time.Second,
		Remove:         *remove,
		JobScript:      *jobScript,
		Submitter:      scheduler.NewSubmitter(schedType),
	}, store)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[Watch] %v", err)
	}
	log.Printf("[Watch] Shutting down")
}

func setupLog(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("[Watch] Error opening log file %s: %v", path, err)
	}
	log.SetOutput(f)
}

// startCheckpointing snapshots the processed-dataset store to S3 on the
// configured interval.
func startCheckpointing(ctx context.Context, cfg *config.AppConfig, store *state.Store) {
	cp := cfg.State.Badger.Checkpoint
	if !cp.Enabled {
		return
	}

	go func() {
		ticker := time.NewTicker(cp.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := store.CreateCheckpointIfEnabled(ctx); err != nil {
					log.Printf("[Checkpoint] Error creating checkpoint: %v", err)
				}
			}
		}
	}()
}
