// Package engine interprets a parsed pipeline file: it merges global options
// into each block, resolves folder chaining, and dispatches every block to
// its worker tool in file order.
package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/image2radiomics/i2r/pkg/events"
	"github.com/image2radiomics/i2r/pkg/modules"
	"github.com/image2radiomics/i2r/pkg/pipeline"
	"github.com/image2radiomics/i2r/pkg/report"
)

// CHECK_FOLDER verdict lines emitted by the structure checker.
const (
	msgReady             = "Folder is correctly structured for the image processing pipeline"
	msgReadyToReorganize = "Folder is correctly structured to be restructed with reorganize.py"
)

// Runner executes one resolved invocation and returns its combined output.
type Runner interface {
	Run(ctx context.Context, inv modules.Invocation) ([]byte, error)
}

// Sink receives run-lifecycle events. events.Publisher satisfies it.
type Sink interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Summarizer writes per-column statistics for a feature table.
type Summarizer func(ctx context.Context, featuresPath, statsPath string) error

// Engine runs the blocks of one pipeline file sequentially.
type Engine struct {
	runner    Runner
	events    Sink       // nil when event publishing is disabled
	summarize Summarizer // nil disables native feature statistics

	globals    pipeline.Params
	structure  modules.Structure
	prevOutput string
}

// Option configures an Engine.
type Option func(*Engine)

// WithEvents attaches a run-lifecycle event sink.
func WithEvents(s Sink) Option {
	return func(e *Engine) { e.events = s }
}

// WithSummarizer attaches the feature-statistics writer used when a
// RADIOMICS block asks for stats over a CSV feature table.
func WithSummarizer(s Summarizer) Option {
	return func(e *Engine) { e.summarize = s }
}

// New creates an engine that dispatches through r.
func New(r Runner, opts ...Option) *Engine {
	e := &Engine{
		runner:    r,
		structure: modules.StructureUnknown,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run interprets the pipeline. inputFolder substitutes the "." sentinel of
// the first consuming block; it may be empty when the pipeline names its
// folders explicitly. The returned manifest covers every block that ran,
// including the failing one.
func (e *Engine) Run(ctx context.Context, p *pipeline.Pipeline, inputFolder string) (*report.RunManifest, error) {
	e.globals = p.Globals()
	e.structure = modules.StructureUnknown
	e.prevOutput = ""

	manifest := &report.RunManifest{
		PipelineFile: p.Path,
		InputFolder:  inputFolder,
		StartedAt:    time.Now(),
	}

	var runErr error
	for _, block := range p.Steps() {
		result := e.runBlock(ctx, p.Path, block, inputFolder)
		manifest.Append(result)
		if result.Status == report.StatusFailed {
			runErr = fmt.Errorf("%s: %s", block.Module, result.Error)
			break
		}
	}
	manifest.FinishedAt = time.Now()
	return manifest, runErr
}

func (e *Engine) runBlock(ctx context.Context, pipelineFile string, block pipeline.Block, cliInput string) report.BlockResult {
	start := time.Now()
	result := report.BlockResult{Module: block.Module, Status: report.StatusOK}

	fail := func(err error) report.BlockResult {
		result.Status = report.StatusFailed
		result.Error = err.Error()
		result.DurationSecs = time.Since(start).Seconds()
		e.emit(ctx, pipelineFile, block.Module, events.StatusFailed, result.InputFolder, result.DurationSecs)
		return result
	}

	spec, ok := modules.Lookup(block.Module)
	if !ok {
		return fail(fmt.Errorf("the module %q does not exist", block.Module))
	}

	params := e.globals.Merge(block.Params)
	if err := spec.Apply(params); err != nil {
		return fail(err)
	}

	input, err := e.resolveInput(spec, params, cliInput)
	if err != nil {
		return fail(err)
	}
	result.InputFolder = input

	if err := resolveOutput(spec, params, input); err != nil {
		return fail(err)
	}
	result.OutputFolder = params.String("outputFolder")

	// A CSV feature table can be summarized in-process, sparing the worker a
	// second pass over the data.
	statsPath, featuresPath := e.nativeStats(spec, params)

	inv, err := spec.Build(params, modules.Context{Structure: e.structure})
	if err != nil {
		return fail(err)
	}
	if inv == nil {
		result.Status = report.StatusSkipped
		result.DurationSecs = time.Since(start).Seconds()
		e.finishBlock(params)
		return result
	}

	log.Printf("[Engine] %s", block.Module)
	e.emit(ctx, pipelineFile, block.Module, events.StatusStarted, input, 0)

	out, err := e.runner.Run(ctx, *inv)
	if err != nil {
		return fail(err)
	}

	if err := e.afterRun(ctx, block.Module, out, statsPath, featuresPath); err != nil {
		return fail(err)
	}

	result.DurationSecs = time.Since(start).Seconds()
	if params.Bool("timer", false) {
		log.Printf("%s - Timer: %.4f seconds", block.Module, result.DurationSecs)
	}
	e.emit(ctx, pipelineFile, block.Module, events.StatusCompleted, input, result.DurationSecs)
	e.finishBlock(params)
	return result
}

// resolveInput substitutes the input-folder sentinels of the block.
func (e *Engine) resolveInput(spec modules.Spec, params pipeline.Params, cliInput string) (string, error) {
	if spec.InputKey == "" {
		return "", nil
	}
	val := params.String(spec.InputKey)
	switch val {
	case pipeline.InputFromCLI:
		if spec.InputKey != "inputFolder" {
			return val, nil
		}
		if cliInput == "" {
			return "", fmt.Errorf("%s: the input folder is %q but no input folder was given on the command line", spec.Name, pipeline.InputFromCLI)
		}
		params[spec.InputKey] = cliInput
		return cliInput, nil
	case pipeline.PreviousOutputFolder:
		if e.prevOutput == "" {
			return "", fmt.Errorf("%s: %s requested but no previous block produced an output folder", spec.Name, pipeline.PreviousOutputFolder)
		}
		params[spec.InputKey] = e.prevOutput
		return e.prevOutput, nil
	}
	return val, nil
}

// resolveOutput fills outputFolder per the module's output rule. The
// outputFolderSuffix shorthand derives the folder from the resolved input.
func resolveOutput(spec modules.Spec, params pipeline.Params, input string) error {
	defer delete(params, "outputFolderSuffix")

	if spec.Output == modules.OutputNone {
		return nil
	}
	if params.Has("outputFolder") && params.String("outputFolder") != "" {
		return nil
	}
	if suffix := params.String("outputFolderSuffix"); suffix != "" {
		params["outputFolder"] = strings.TrimRight(input, "/") + "_" + suffix
		return nil
	}

	switch spec.Output {
	case modules.OutputRequired:
		return fmt.Errorf("%s: no output folder specified", spec.Name)
	case modules.OutputHome:
		params["outputFolder"] = "~/"
	case modules.OutputOptional:
		params["outputFolder"] = ""
	}
	return nil
}

// nativeStats decides whether the RADIOMICS stats pass runs in-process. The
// worker only understands xlsx tables; CSV output is summarized here instead,
// so the stats option is withheld from the worker argv.
func (e *Engine) nativeStats(spec modules.Spec, params pipeline.Params) (statsPath, featuresPath string) {
	if spec.Name != "RADIOMICS" || e.summarize == nil {
		return "", ""
	}
	stats := params.String("stats_filename")
	features := params.String("radiomics_filename")
	if stats == "" || !strings.HasSuffix(features, ".csv") {
		return "", ""
	}
	params["stats_filename"] = ""
	out := params.String("outputFolder")
	return joinFolder(out, stats), joinFolder(out, features)
}

func joinFolder(folder, name string) string {
	if folder == "" {
		return name
	}
	return strings.TrimRight(folder, "/") + "/" + name
}

// afterRun applies the side effects a finished block has on the run state.
func (e *Engine) afterRun(ctx context.Context, module string, out []byte, statsPath, featuresPath string) error {
	switch module {
	case "CHECK_FOLDER":
		text := string(out)
		switch {
		case strings.Contains(text, msgReady):
			e.structure = modules.StructureReady
		case strings.Contains(text, msgReadyToReorganize):
			e.structure = modules.StructureReadyToReorganize
		default:
			e.structure = modules.StructureInvalid
			return fmt.Errorf("the folder is not correctly structured for the image processing pipeline")
		}
	case "SEGMENTATION":
		// Downstream blocks can now rely on masks being present.
		e.globals["with-segmentation"] = true
	case "RADIOMICS":
		if statsPath != "" {
			if err := e.summarize(ctx, featuresPath, statsPath); err != nil {
				return fmt.Errorf("writing feature statistics: %w", err)
			}
		}
	}
	return nil
}

// finishBlock records the block's output folder for PREVIOUS_BLOCK_OUTPUT_FOLDER.
func (e *Engine) finishBlock(params pipeline.Params) {
	if out := params.String("outputFolder"); out != "" {
		e.prevOutput = out
	}
}

func (e *Engine) emit(ctx context.Context, pipelineFile, module, status, folder string, elapsed float64) {
	if e.events == nil {
		return
	}
	err := e.events.Publish(ctx, events.Event{
		Pipeline:    pipelineFile,
		Module:      module,
		Status:      status,
		Folder:      folder,
		ElapsedSecs: elapsed,
	})
	if err != nil {
		log.Printf("[Engine] Error publishing event: %v", err)
	}
}
