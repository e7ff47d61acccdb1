package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
)

const (
	environmentAssignmentSeparatorConstant = "="
)

// OSCommandRunner executes commands using os/exec.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command and waits for it to exit. Cancelling the context kills the process.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, string(command.Name), command.Details.Arguments...)
	executable.Dir = command.Details.WorkingDirectory

	if len(command.Details.EnvironmentVariables) > 0 {
		environmentKeys := make([]string, 0, len(command.Details.EnvironmentVariables))
		for environmentKey := range command.Details.EnvironmentVariables {
			environmentKeys = append(environmentKeys, environmentKey)
		}
		sort.Strings(environmentKeys)

		mergedEnvironment := os.Environ()
		for _, environmentKey := range environmentKeys {
			mergedEnvironment = append(mergedEnvironment, environmentKey+environmentAssignmentSeparatorConstant+command.Details.EnvironmentVariables[environmentKey])
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	result := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return result, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) && executionContext.Err() == nil {
		result.ExitCode = exitError.ExitCode()
		return result, nil
	}
	if contextError := executionContext.Err(); contextError != nil {
		return ExecutionResult{}, contextError
	}
	return ExecutionResult{}, runError
}
