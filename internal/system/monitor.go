// Package system reports host resource status.
package system

const notImplementedMessageConstant = "System monitoring not implemented yet!"

// Status describes the outcome of a system inspection.
type Status struct {
	Implemented bool   `json:"implemented" yaml:"implemented"`
	Message     string `json:"message" yaml:"message"`
}

// Monitor inspects host resources. Resource collection is not available yet, so every
// inspection reports a placeholder status.
type Monitor struct{}

// NewMonitor constructs a Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Inspect returns the current system status.
func (monitor *Monitor) Inspect() Status {
	return Status{Implemented: false, Message: notImplementedMessageConstant}
}
