package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter forwards report output and flushes buffered destinations after every write so progress lines appear immediately.
type FlushingWriter struct {
	destination io.Writer
	mutex       sync.Mutex
}

// NewFlushingWriter wraps destination unless it is already wrapped.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return io.Discard
	}
	if _, alreadyWrapped := destination.(*FlushingWriter); alreadyWrapped {
		return destination
	}
	return &FlushingWriter{destination: destination}
}

// Write delegates to the destination and flushes it when supported.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	bytesWritten, writeError := writer.destination.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushableDestination, supportsFlush := writer.destination.(flusher); supportsFlush {
		if flushError := flushableDestination.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}
