// Package modules defines the processing modules a pipeline file can name:
// their worker tools, option defaults, required options and the command line
// each one dispatches.
package modules

import (
	"fmt"

	"github.com/image2radiomics/i2r/pkg/pipeline"
)

// Invocation is a resolved dispatch: a worker tool plus its arguments.
type Invocation struct {
	Tool string
	Args []string
}

// Structure is the folder-structure verdict maintained across blocks. It is
// written by CHECK_FOLDER and consulted by REORGANIZE.
type Structure string

const (
	StructureUnknown           Structure = "Unknown"
	StructureReady             Structure = "Ready"
	StructureReadyToReorganize Structure = "Ready_to_reorganize"
	StructureInvalid           Structure = "Invalid"
)

// Context carries the run state a builder may need besides its own options.
type Context struct {
	Structure Structure
}

// OutputRule says how a module's outputFolder is derived when absent.
type OutputRule int

const (
	// OutputNone: the module has no outputFolder option.
	OutputNone OutputRule = iota
	// OutputOptional: missing outputFolder defaults to "" (after trying
	// outputFolderSuffix derivation).
	OutputOptional
	// OutputRequired: either outputFolder or outputFolderSuffix must be set.
	OutputRequired
	// OutputHome: missing outputFolder defaults to "~/" (RADIOMICS).
	OutputHome
)

// Spec describes one module.
type Spec struct {
	Name     string
	Tool     string     // worker script dispatched by the runner
	InputKey string     // option naming the input folder ("" if none)
	Output   OutputRule //
	// Apply fills option defaults and validates required options. It runs
	// after globals are merged and before folder resolution.
	Apply func(p pipeline.Params) error
	// Build assembles the worker argv from fully resolved options. A nil
	// invocation means the block has nothing to execute.
	Build func(p pipeline.Params, c Context) (*Invocation, error)
}

var registry = map[string]Spec{}

func register(s Spec) {
	registry[s.Name] = s
}

// Lookup returns the spec for a module name.
func Lookup(name string) (Spec, bool) {
	s, ok := registry[name]
	return s, ok
}

// errMissing mirrors the interpreter's historical required-option failures.
func errMissing(module, key string) error {
	return fmt.Errorf("%s: no %s specified", module, key)
}
