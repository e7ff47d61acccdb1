// Package report renders combined health reports as text, JSON, YAML or Markdown.
package report
