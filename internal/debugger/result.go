package debugger

import (
	"fmt"
	"strings"
)

// ReturnStatus is the outcome of a command.
type ReturnStatus int

const (
	ReturnStatusInvalid ReturnStatus = iota
	ReturnStatusSuccessFinishNoResult
	ReturnStatusSuccessFinishResult
	ReturnStatusFailed
)

func (s ReturnStatus) String() string {
	switch s {
	case ReturnStatusSuccessFinishNoResult:
		return "success-no-result"
	case ReturnStatusSuccessFinishResult:
		return "success"
	case ReturnStatusFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Succeeded reports whether s is one of the success statuses.
func (s ReturnStatus) Succeeded() bool {
	return s == ReturnStatusSuccessFinishNoResult || s == ReturnStatusSuccessFinishResult
}

// ReturnObject collects the status and output of one command.
type ReturnObject struct {
	status ReturnStatus
	out    strings.Builder
	err    strings.Builder
}

func (r *ReturnObject) SetStatus(s ReturnStatus) {
	r.status = s
}

func (r *ReturnObject) Status() ReturnStatus {
	return r.status
}

func (r *ReturnObject) Succeeded() bool {
	return r.status.Succeeded()
}

// Printf appends formatted text to the command output.
func (r *ReturnObject) Printf(format string, args ...any) {
	fmt.Fprintf(&r.out, format, args...)
}

// AppendError records msg as an error line and marks the command failed.
func (r *ReturnObject) AppendError(msg string) {
	r.err.WriteString("error: ")
	r.err.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		r.err.WriteString("\n")
	}
	r.status = ReturnStatusFailed
}

func (r *ReturnObject) Output() string {
	return r.out.String()
}

func (r *ReturnObject) ErrorOutput() string {
	return r.err.String()
}
