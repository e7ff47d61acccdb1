// Package cli constructs the devhealth command-line interface. It wires the
// Cobra root command to the configuration loader and the zap logger, and
// registers the check and scan commands with their operation configurations.
package cli
