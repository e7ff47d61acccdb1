package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitSymbolicRefSubcommandNameConstant = "symbolic-ref"
	gitRevParseSubcommandNameConstant    = "rev-parse"
	gitAbbrevRefFlagConstant             = "--abbrev-ref"
	gitHeadReferenceConstant             = "HEAD"
	gitStatusSubcommandNameConstant      = "status"
	gitLogSubcommandNameConstant         = "log"
	gitRangeSeparatorConstant            = ".."
)

const (
	gitCurrentBranchStartTemplateConstant            = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant          = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant  = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant          = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant = "Unable to identify current branch in %s: %s"
	gitStatusStartTemplateConstant                   = "Reviewing working tree status in %s"
	gitStatusCleanSuccessTemplateConstant            = "Working tree in %s is clean"
	gitStatusDirtySuccessTemplateConstant            = "Working tree in %s has %d uncommitted change(s)"
	gitStatusFailureTemplateConstant                 = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant        = "Unable to review working tree status in %s: %s"
	gitOutgoingStartTemplateConstant                 = "Counting commits in %s not yet on %s"
	gitOutgoingNoneSuccessTemplateConstant           = "%s has no commits missing from %s"
	gitOutgoingSuccessTemplateConstant               = "%s has %d commit(s) missing from %s"
	gitOutgoingFailureTemplateConstant               = "Could not compare %s with %s (exit code %d%s)"
	gitOutgoingExecutionFailureTemplateConstant      = "Unable to compare %s with %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a command that exited with code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing a command that could not run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	switch strings.TrimSpace(arguments[0]) {
	case gitSymbolicRefSubcommandNameConstant:
		return formatter.describeGitCurrentBranchMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		if containsArgument(arguments, gitAbbrevRefFlagConstant) {
			return formatter.describeGitCurrentBranchMessage(command, result, failure, stage)
		}
	case gitStatusSubcommandNameConstant:
		return formatter.describeGitStatusMessage(command, result, failure, stage)
	case gitLogSubcommandNameConstant:
		if rangeArgument := findRangeArgument(arguments); len(rangeArgument) > 0 {
			return formatter.describeGitOutgoingMessage(command, rangeArgument, result, failure, stage)
		}
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCurrentBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		trimmed := strings.TrimSpace(result.StandardOutput)
		if len(trimmed) == 0 || trimmed == gitHeadReferenceConstant {
			return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmed)
	case messageStageFailure:
		return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitStatusMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		changeCount := countNonEmptyLines(result.StandardOutput)
		if changeCount == 0 {
			return fmt.Sprintf(gitStatusCleanSuccessTemplateConstant, workingDirectory)
		}
		return fmt.Sprintf(gitStatusDirtySuccessTemplateConstant, workingDirectory, changeCount)
	case messageStageFailure:
		return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeGitOutgoingMessage(command ShellCommand, rangeArgument string, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	upstreamReference := formatter.ensureValue(strings.SplitN(rangeArgument, gitRangeSeparatorConstant, 2)[0])
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitOutgoingStartTemplateConstant, workingDirectory, upstreamReference)
	case messageStageSuccess:
		commitCount := countNonEmptyLines(result.StandardOutput)
		if commitCount == 0 {
			return fmt.Sprintf(gitOutgoingNoneSuccessTemplateConstant, workingDirectory, upstreamReference)
		}
		return fmt.Sprintf(gitOutgoingSuccessTemplateConstant, workingDirectory, commitCount, upstreamReference)
	case messageStageFailure:
		return fmt.Sprintf(gitOutgoingFailureTemplateConstant, workingDirectory, upstreamReference, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitOutgoingExecutionFailureTemplateConstant, workingDirectory, upstreamReference, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := command.String() + formatter.formatWorkingDirectorySuffix(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func findRangeArgument(arguments []string) string {
	for _, argument := range arguments {
		if strings.Contains(argument, gitRangeSeparatorConstant) {
			return strings.TrimSpace(argument)
		}
	}
	return emptyStringConstant
}

func countNonEmptyLines(output string) int {
	lineCount := 0
	for _, line := range strings.Split(output, "\n") {
		if len(strings.TrimSpace(line)) > 0 {
			lineCount++
		}
	}
	return lineCount
}
