package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// CommandRunner abstracts child-process execution so that seeding and
// provisioning flows can be tested without git or make on the host.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, int32, error)
}

// ExecRunner executes commands on the local host, blocking until exit.
type ExecRunner struct{}

func (r ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, int32, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), stderr.Bytes(), int32(exitErr.ExitCode()), err
	}

	// Command could not be started at all; 127 mirrors the shell.
	exitCode := int32(1)
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		exitCode = 127
	}
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}
