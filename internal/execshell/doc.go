// Package execshell runs external commands for devhealth and reports their lifecycle.
//
// ShellExecutor wraps a CommandRunner with zap logging and optional
// CommandEventObserver notifications, OSCommandRunner executes processes via
// os/exec, and CommandMessageFormatter renders readable descriptions of the
// read-only git queries issued during repository inspection.
package execshell
