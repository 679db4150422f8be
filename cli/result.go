package cli

// CommandError signals a command failure with a specific exit code.
// Commands return it once all diagnostics are printed, so Execute only
// has to translate it into a CommandResult.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// CommandResult is the outcome of Execute.
type CommandResult struct {
	// ExitCode is the status the process should exit with. Failed
	// assertions and fatal errors both exit with 1.
	ExitCode int

	// Err is the error that ended the run, if any.
	Err error
}

// Success returns a CommandResult indicating successful execution.
func Success() CommandResult {
	return CommandResult{ExitCode: 0}
}

// Failure returns a CommandResult indicating failure with the given error.
func Failure(err error) CommandResult {
	return CommandResult{ExitCode: 1, Err: err}
}
