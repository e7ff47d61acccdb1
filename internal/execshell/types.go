package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// CommandName identifies an executable invoked through the shell executor.
type CommandName string

// CommandGit is the git executable.
const CommandGit CommandName = CommandName("git")

const (
	commandFailedErrorTemplateConstant    = "%s exited with code %d"
	commandFailedStderrTemplateConstant   = "%s exited with code %d: %s"
	commandExecutionErrorTemplateConstant = "%s could not be executed: %v"
	commandArgumentSeparatorConstant      = " "
)

var (
	// ErrLoggerNotConfigured indicates that a shell executor was created without a logger.
	ErrLoggerNotConfigured = errors.New("shell executor requires a logger")
	// ErrCommandRunnerNotConfigured indicates that a shell executor was created without a command runner.
	ErrCommandRunnerNotConfigured = errors.New("shell executor requires a command runner")
)

// CommandDetails describes arguments and the execution environment of a command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand couples an executable with its details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// String renders the command line without the working directory.
func (command ShellCommand) String() string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandArgumentSeparatorConstant)
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands. A process that ran and exited non-zero is reported through ExecutionResult, not as an error.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran and exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the exit code and the trimmed standard error output.
func (failure CommandFailedError) Error() string {
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) == 0 {
		return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command, failure.Result.ExitCode)
	}
	return fmt.Sprintf(commandFailedStderrTemplateConstant, failure.Command, failure.Result.ExitCode, trimmedStandardError)
}

// CommandExecutionError reports a command that could not be started or waited for.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the underlying failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command, failure.Cause)
}

// Unwrap exposes the underlying failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}
