// Package scheduler submits pipeline jobs to an HPC batch scheduler, or runs
// them directly when no scheduler is available.
package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// Type selects the batch scheduler.
type Type string

const (
	SGE   Type = "SGE"
	SLURM Type = "SLURM"
	None  Type = "None"
)

// Normalize accepts the historical case variants of the scheduler selector.
func Normalize(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "sge":
		return SGE, nil
	case "slurm":
		return SLURM, nil
	case "none", "":
		return None, nil
	}
	return "", fmt.Errorf("the job scheduler %q is not available", s)
}

// Submitter builds and runs the submission command for one scheduler type.
type Submitter struct {
	Type   Type
	Qsub   string // path to qsub, discovered when empty
	Sbatch string // path to sbatch, discovered when empty
}

// NewSubmitter discovers the scheduler binary on PATH, mirroring the
// historical `which qsub` / `which sbatch` lookup. Discovery failure is not
// fatal: submission will fail later with a clear error if the binary never
// appears.
func NewSubmitter(t Type) *Submitter {
	s := &Submitter{Type: t}
	switch t {
	case SGE:
		if path, err := exec.LookPath("qsub"); err == nil {
			s.Qsub = path
		} else {
			log.Printf("[Scheduler] qsub not found on PATH; set it manually before submitting")
		}
	case SLURM:
		if path, err := exec.LookPath("sbatch"); err == nil {
			s.Sbatch = path
		} else {
			log.Printf("[Scheduler] sbatch not found on PATH; set it manually before submitting")
		}
	}
	return s
}

// Command returns the argv that submits script with the given arguments.
func (s *Submitter) Command(script string, args ...string) ([]string, error) {
	switch s.Type {
	case SGE:
		bin := s.Qsub
		if bin == "" {
			return nil, fmt.Errorf("qsub not available")
		}
		return append([]string{bin, script}, args...), nil
	case SLURM:
		bin := s.Sbatch
		if bin == "" {
			return nil, fmt.Errorf("sbatch not available")
		}
		return append([]string{bin, script}, args...), nil
	case None:
		return append([]string{script}, args...), nil
	}
	return nil, fmt.Errorf("the job scheduler %q is not available", s.Type)
}

// Submit runs the submission command and returns its combined output.
func (s *Submitter) Submit(ctx context.Context, script string, args ...string) ([]byte, error) {
	argv, err := s.Command(script, args...)
	if err != nil {
		return nil, err
	}

	log.Printf("[Scheduler] %s", strings.Join(argv, " "))
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return buf.Bytes(), fmt.Errorf("submitting %s: %w", script, err)
	}
	return buf.Bytes(), nil
}
