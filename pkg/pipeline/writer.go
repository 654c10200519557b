package pipeline

import (
	"fmt"
	"io"
	"os"
)

// Write renders blocks back to the pipeline-file format. Option order is
// sorted; comments from the source file are not preserved.
func Write(w io.Writer, header string, blocks []Block) error {
	if header != "" {
		if _, err := fmt.Fprintf(w, "#%s\n\n", header); err != nil {
			return err
		}
	}
	for _, b := range blocks {
		if _, err := fmt.Fprintf(w, "%s:\n{\n", b.Module); err != nil {
			return err
		}
		for _, k := range b.Params.Keys() {
			if _, err := fmt.Fprintf(w, "    %s: %s\n", k, FormatValue(b.Params[k])); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "}\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes blocks to path, refusing to overwrite an existing file.
func WriteFile(path, header string, blocks []Block) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, header, blocks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
