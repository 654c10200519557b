package pipeline

import (
	"fmt"
	"path"
	"strings"
)

// Input-folder strategies for testing pipeline generation.
const (
	StrategyAuto   = "auto"   // '.' then PREVIOUS_BLOCK_OUTPUT_FOLDER
	StrategySuffix = "suffix" // '.' first, outputFolderSuffix afterwards
)

// Output-folder suffixes used by the suffix strategy, per module.
var testingSuffixes = map[string]string{
	"REORGANIZE":           "ready",
	"DCM2NII":              "nii",
	"SPATIAL_RESAMPLING":   "resampled",
	"INTENSITY_RESAMPLING": "resampled",
}

// Modules whose input comes from a model/reference run rather than image data.
var modelModules = map[string]bool{
	"F-NORMALIZE": true,
	"F-HARMONIZE": true,
	"PREDICT":     true,
}

// GenerateOptions drives GenerateTesting.
type GenerateOptions struct {
	Strategy    string // StrategyAuto or StrategySuffix
	ModelFolder string // reference run folder holding models and stats
	LogSuffix   string // inserted before the log file extension
	AddPredict  bool   // append a PREDICT block if the source has none
}

// GenerateTesting derives a testing pipeline from a reference (training)
// pipeline: input folders are rewired so the new data flows through the same
// chain, per-run output options are dropped, model folders point at the
// reference run, and log files get a distinguishing suffix.
func GenerateTesting(src Pipeline, opts GenerateOptions) ([]Block, error) {
	if opts.Strategy != StrategyAuto && opts.Strategy != StrategySuffix {
		return nil, fmt.Errorf("unknown input folder strategy %q", opts.Strategy)
	}
	if opts.LogSuffix == "" {
		opts.LogSuffix = "testing"
	}

	out := make([]Block, 0, len(src.Blocks)+1)
	firstInput := true
	hasPredict := false

	for _, b := range src.Blocks {
		nb := Block{Module: b.Module, Params: b.Params.Clone()}

		if nb.Module == "PREDICT" {
			hasPredict = true
		}
		if nb.Module != GlobalParameters {
			rewireBlock(&nb, opts, &firstInput)
		}
		if s, ok := nb.Params["log"].(string); ok && s != "" {
			nb.Params["log"] = suffixedLog(s, opts.LogSuffix)
		}
		out = append(out, nb)
	}

	if opts.AddPredict && !hasPredict {
		out = append(out, predictBlock(opts))
	}
	return out, nil
}

func rewireBlock(b *Block, opts GenerateOptions, firstInput *bool) {
	if modelModules[b.Module] {
		b.Params["modelFolder"] = opts.ModelFolder
		b.Params["mode"] = "External"
	}
	if !b.Params.Has("inputFolder") {
		return
	}

	// CHECK_FOLDER always reads the raw drop folder; it must not consume the
	// chain position, otherwise REORGANIZE would start from
	// PREVIOUS_BLOCK_OUTPUT_FOLDER with no previous block.
	if b.Module == "CHECK_FOLDER" {
		b.Params["inputFolder"] = InputFromCLI
		return
	}

	if *firstInput {
		b.Params["inputFolder"] = InputFromCLI
		*firstInput = false
	} else {
		b.Params["inputFolder"] = PreviousOutputFolder
	}

	delete(b.Params, "outputFolder")
	delete(b.Params, "skip")
	delete(b.Params, "outputFolderSuffix")
	if opts.Strategy == StrategySuffix {
		if sfx, ok := testingSuffixes[b.Module]; ok {
			b.Params["outputFolderSuffix"] = sfx
		}
	}
}

func predictBlock(opts GenerateOptions) Block {
	return Block{
		Module: "PREDICT",
		Params: Params{
			"inputFolder": PreviousOutputFolder,
			"modelFolder": opts.ModelFolder,
			"log":         suffixedLog("predict.log", opts.LogSuffix),
		},
	}
}

func suffixedLog(name, suffix string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + suffix + ext
}
