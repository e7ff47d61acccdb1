package health

import (
	"strings"

	"github.com/temirov/devhealth/internal/deps"
	"github.com/temirov/devhealth/internal/report"
)

const (
	defaultPathConstant = "."
)

// CheckConfiguration stores options for the check command.
type CheckConfiguration struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// DefaultCheckConfiguration returns baseline values for the check command.
func DefaultCheckConfiguration() CheckConfiguration {
	return CheckConfiguration{
		Path:   defaultPathConstant,
		Format: string(report.FormatText),
	}
}

// Sanitize trims configured values and applies defaults to empty ones.
func (configuration CheckConfiguration) Sanitize() CheckConfiguration {
	sanitized := configuration
	sanitized.Path = sanitizePath(configuration.Path)
	sanitized.Format = sanitizeFormat(configuration.Format)
	return sanitized
}

// ScanConfiguration stores options for the scan command.
type ScanConfiguration struct {
	Path                  string   `mapstructure:"path"`
	Format                string   `mapstructure:"format"`
	Git                   bool     `mapstructure:"git"`
	Deps                  bool     `mapstructure:"deps"`
	System                bool     `mapstructure:"system"`
	SkipDirectories       []string `mapstructure:"skip_directories"`
	ListedDependencyLimit int      `mapstructure:"listed_dependency_limit"`
}

// DefaultScanConfiguration returns baseline values for the scan command. No section is enabled by default.
func DefaultScanConfiguration() ScanConfiguration {
	return ScanConfiguration{
		Path:                  defaultPathConstant,
		Format:                string(report.FormatText),
		SkipDirectories:       deps.DefaultSkipDirectories(),
		ListedDependencyLimit: deps.DefaultListedDependencyLimit,
	}
}

// Sanitize trims configured values, drops empty skip entries and applies defaults to unset values.
func (configuration ScanConfiguration) Sanitize() ScanConfiguration {
	sanitized := configuration
	sanitized.Path = sanitizePath(configuration.Path)
	sanitized.Format = sanitizeFormat(configuration.Format)

	if configuration.SkipDirectories == nil {
		sanitized.SkipDirectories = deps.DefaultSkipDirectories()
	} else {
		sanitized.SkipDirectories = make([]string, 0, len(configuration.SkipDirectories))
		for _, directoryName := range configuration.SkipDirectories {
			trimmedName := strings.TrimSpace(directoryName)
			if len(trimmedName) == 0 {
				continue
			}
			sanitized.SkipDirectories = append(sanitized.SkipDirectories, trimmedName)
		}
	}

	if configuration.ListedDependencyLimit <= 0 {
		sanitized.ListedDependencyLimit = deps.DefaultListedDependencyLimit
	}
	return sanitized
}

func sanitizePath(path string) string {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return defaultPathConstant
	}
	return trimmedPath
}

func sanitizeFormat(format string) string {
	trimmedFormat := strings.TrimSpace(format)
	if len(trimmedFormat) == 0 {
		return string(report.FormatText)
	}
	return trimmedFormat
}
