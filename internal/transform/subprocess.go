package transform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Subprocess runs an external calculator program with the conventional
// -i/-o file arguments. Whatever the program prints to its error stream
// is surfaced verbatim so the caller can classify it.
type Subprocess struct {
	command []string
}

// NewSubprocess builds a subprocess transform from a command line
// (program plus leading arguments).
func NewSubprocess(command []string) *Subprocess {
	return &Subprocess{command: command}
}

func (s *Subprocess) Run(ctx context.Context, inputPath, outputPath string) error {
	if len(s.command) == 0 {
		return errors.New("transform command not configured")
	}

	args := append(append([]string{}, s.command[1:]...), "-i", inputPath, "-o", outputPath)
	cmd := exec.CommandContext(ctx, s.command[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if diag := strings.TrimSpace(stderr.String()); diag != "" {
		return errors.New(diag)
	}
	return runErr
}
