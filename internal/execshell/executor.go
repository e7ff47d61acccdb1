package execshell

import (
	"context"

	"go.uber.org/zap"
)

const (
	commandStartedLogMessageConstant   = "command started"
	commandCompletedLogMessageConstant = "command completed"
	commandFailedLogMessageConstant    = "command exited with non-zero code"
	commandErroredLogMessageConstant   = "command execution failed"
	logFieldCommandConstant            = "command"
	logFieldArgumentsConstant          = "arguments"
	logFieldWorkingDirectoryConstant   = "working_directory"
	logFieldExitCodeConstant           = "exit_code"
	logFieldStandardErrorConstant      = "stderr"
	logFieldDescriptionConstant        = "description"
	gitOptionalLocksVariableConstant   = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant   = "0"
)

// ShellExecutorOption customizes a ShellExecutor.
type ShellExecutorOption func(*ShellExecutor)

// WithCommandEventObserver registers an observer notified about every command.
func WithCommandEventObserver(observer CommandEventObserver) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// ShellExecutor runs commands through a CommandRunner and logs their lifecycle.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ShellExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:   logger,
		runner:   runner,
		observer: noopCommandEventObserver{},
	}
	for _, option := range options {
		option(executor)
	}
	return executor, nil
}

// Execute runs the command. A non-zero exit yields CommandFailedError; a failure to run yields CommandExecutionError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(commandStartedLogMessageConstant, append(commandFields, zap.String(logFieldDescriptionConstant, executor.formatter.BuildStartedMessage(command)))...)
	executor.observer.CommandStarted(command)

	result, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Debug(commandErroredLogMessageConstant, append(commandFields, zap.Error(runError))...)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, result)
	if result.ExitCode != 0 {
		executor.logger.Debug(
			commandFailedLogMessageConstant,
			append(commandFields, zap.Int(logFieldExitCodeConstant, result.ExitCode), zap.String(logFieldStandardErrorConstant, result.StandardError))...,
		)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: result}
	}

	executor.logger.Debug(commandCompletedLogMessageConstant, append(commandFields, zap.Int(logFieldExitCodeConstant, result.ExitCode))...)
	return result, nil
}

// ExecuteGit runs git with GIT_OPTIONAL_LOCKS=0 in its environment.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	environment := make(map[string]string, len(details.EnvironmentVariables)+1)
	for environmentKey, environmentValue := range details.EnvironmentVariables {
		environment[environmentKey] = environmentValue
	}
	environment[gitOptionalLocksVariableConstant] = gitOptionalLocksDisabledConstant
	details.EnvironmentVariables = environment

	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}
