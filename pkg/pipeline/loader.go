package pipeline

import (
	"fmt"
	"os"
)

// LoadFromFile parses and validates a pipeline file.
func LoadFromFile(path string) (Pipeline, error) {
	var p Pipeline

	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	blocks, err := Parse(f)
	if err != nil {
		return p, err
	}
	if len(blocks) == 0 {
		return p, fmt.Errorf("empty pipeline file")
	}

	p = Pipeline{Path: path, Blocks: blocks}
	if len(p.Steps()) == 0 {
		return p, fmt.Errorf("pipeline file has no processing blocks")
	}
	return p, nil
}
