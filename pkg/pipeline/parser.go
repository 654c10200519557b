package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError points at the pipeline-file line that could not be understood.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pipeline file line %d: %s (%q)", e.Line, e.Msg, e.Text)
}

// Parse reads the block format:
//
//	MODULE_NAME:
//	{
//	    option: value   # inline comment
//	}
//
// Full-line comments start with '#'. Option lines have all whitespace
// stripped before splitting on the first colon, so values cannot contain
// colons or significant spaces, matching the historical format.
func Parse(r io.Reader) ([]Block, error) {
	var (
		blocks  []Block
		current *Block
		inBody  bool
		lineNo  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case current == nil:
			name := moduleToken(line)
			if !KnownModule(name) {
				return nil, &ParseError{Line: lineNo, Text: line,
					Msg: fmt.Sprintf("the module %q does not exist", name)}
			}
			current = &Block{Module: name, Params: Params{}}

		case !inBody:
			if !strings.HasPrefix(line, "{") {
				return nil, &ParseError{Line: lineNo, Text: line,
					Msg: "expected '{' after module name"}
			}
			inBody = true

		default:
			if strings.HasPrefix(line, "}") {
				blocks = append(blocks, *current)
				current = nil
				inBody = false
				continue
			}
			key, value, err := splitOption(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Text: line, Msg: err.Error()}
			}
			current.Params[key] = ParseScalar(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		return nil, &ParseError{Line: lineNo, Text: current.Module,
			Msg: "unterminated block"}
	}
	return blocks, nil
}

// moduleToken strips an inline comment and the trailing colon from a block
// header line.
func moduleToken(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSuffix(strings.TrimSpace(line), ":")
	return strings.TrimSpace(line)
}

func splitOption(line string) (key, value string, err error) {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	line = strings.ReplaceAll(line, " ", "")
	line = strings.ReplaceAll(line, "\t", "")

	key, value, ok := strings.Cut(line, ":")
	if !ok || key == "" {
		return "", "", fmt.Errorf("expected 'option: value'")
	}
	return key, value, nil
}
