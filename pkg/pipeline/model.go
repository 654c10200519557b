package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reserved tokens of the pipeline file format.
const (
	GlobalParameters     = "GLOBAL_PARAMETERS"
	PreviousOutputFolder = "PREVIOUS_BLOCK_OUTPUT_FOLDER"
	InputFromCLI         = "."
)

// Module names accepted in a pipeline file, in documentation order.
var ModuleNames = []string{
	GlobalParameters,
	"CHECK_FOLDER",
	"REORGANIZE",
	"DCM2NII",
	"SPATIAL_RESAMPLING",
	"INTENSITY_RESAMPLING",
	"MERGE_MASKS",
	"MASK_THRESHOLDING",
	"I-WINDOWING",
	"I-HARMONIZE",
	"N4-BIAS-FIELD-CORRECTION",
	"RADIOMICS",
	"SEGMENTATION",
	"F-NORMALIZE",
	"F-HARMONIZE",
	"PREDICT",
	"DELETE",
	"COPY",
}

var knownModules = func() map[string]bool {
	m := make(map[string]bool, len(ModuleNames))
	for _, n := range ModuleNames {
		m[n] = true
	}
	return m
}()

// KnownModule reports whether name is a valid module token.
func KnownModule(name string) bool { return knownModules[name] }

// Params is the flat option mapping of one block, values already coerced by
// ParseScalar (bool, int64, float64, []any or string).
type Params map[string]any

// Block is one named step of a pipeline file.
type Block struct {
	Module string
	Params Params
}

// Pipeline is the ordered block list of one pipeline file.
type Pipeline struct {
	Path   string
	Blocks []Block
}

// Globals merges every GLOBAL_PARAMETERS block in file order.
func (p *Pipeline) Globals() Params {
	g := Params{}
	for _, b := range p.Blocks {
		if b.Module == GlobalParameters {
			for k, v := range b.Params {
				g[k] = v
			}
		}
	}
	return g
}

// Steps returns the processing blocks, skipping GLOBAL_PARAMETERS.
func (p *Pipeline) Steps() []Block {
	steps := make([]Block, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		if b.Module != GlobalParameters {
			steps = append(steps, b)
		}
	}
	return steps
}

// Clone returns a shallow copy with its own Params map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge overlays other on top of p into a new map.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String renders the value under key the way the worker tools expect it on
// the command line. Booleans keep their capitalized spelling.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Bool coerces the value under key; absent or non-boolean values that do not
// spell a boolean fall back to def.
func (p Params) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if t == "True" || t == "true" {
			return true
		}
		if t == "False" || t == "false" {
			return false
		}
	}
	return def
}

// Int coerces the value under key to an int, falling back to def.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return def
}

// Float coerces the value under key to a float64, falling back to def.
func (p Params) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return def
}

// SetDefault stores value under key unless the key is already present.
func (p Params) SetDefault(key string, value any) {
	if _, ok := p[key]; !ok {
		p[key] = value
	}
}

// Keys returns the option names in sorted order, for deterministic output.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a parsed scalar back to its pipeline-file spelling.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = FormatValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
