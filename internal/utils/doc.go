// Package utils exposes the configuration and logging plumbing shared by devhealth commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// DEVHEALTH_* environment variables through Viper; LoggerFactory builds zap
// loggers in structured or console encodings.
package utils
