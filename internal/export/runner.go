package export

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
)

// Result is the outcome of a finished process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner abstracts how the converter executable is located and run so
// tests can swap in a fake without a real pandoc on PATH.
//
// Run returns a nil error whenever the process ran to completion, even
// with a non-zero exit code; errors mean the process could not be run.
type Runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string) (Result, error)
}

// BinaryRunner runs executables found on PATH.
type BinaryRunner struct{}

func (BinaryRunner) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (BinaryRunner) Run(ctx context.Context, name string, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("BinaryRunner invoking converter", "cmd", name, "args", args)

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if res.Stderr != "" {
		slog.Debug("converter stderr", "error_output", res.Stderr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if ctx.Err() == nil {
			return res, nil
		}
	}
	return res, err
}
