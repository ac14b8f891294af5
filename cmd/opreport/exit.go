package main

import "errors"

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // report generated
	ExitFailure = 1 // pipeline failure (malformed or empty catalog, unreadable template, unwritable output)
	ExitUsage   = 2 // invalid flags or configuration
)

// ExitError carries the process exit code for an error returned by a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func failure(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitFailure, Err: err}
}

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: ExitUsage, Err: err}
}

// exitCode extracts the exit code from an error, defaulting to ExitFailure.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
