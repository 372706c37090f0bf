// Package errors holds the errors emojilog shows to users: a category that
// selects the exit code, the failure message, and the steps that fix it.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a failure. The CLI maps it to an exit code.
type ErrorCategory int

const (
	// Argument covers flags, arguments and stdin input.
	Argument ErrorCategory = iota
	// Configuration covers config files and EMOJILOG_* variables.
	Configuration
	// Prerequisite covers a missing repository or template set.
	Prerequisite
	// Runtime covers failures while reading history or rendering.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is a failure ready to be printed by FprintError.
type CLIError struct {
	Category ErrorCategory
	Message  string
	// Usage is an example invocation, shown for argument errors.
	Usage string
	// Remediation lists the steps printed under "To fix this".
	Remediation []string
	Err         error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Option sets an optional CLIError field.
type Option func(*CLIError)

// WithUsage attaches an example invocation.
func WithUsage(usage string) Option {
	return func(e *CLIError) { e.Usage = usage }
}

// WithRemediation appends fix steps.
func WithRemediation(steps ...string) Option {
	return func(e *CLIError) { e.Remediation = append(e.Remediation, steps...) }
}

// WithCause records the underlying error without changing the message.
func WithCause(err error) Option {
	return func(e *CLIError) { e.Err = err }
}

// New builds a CLIError.
func New(category ErrorCategory, message string, opts ...Option) *CLIError {
	e := &CLIError{Category: category, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Wrap turns err into a CLIError. A non-empty context is prefixed to the
// message as "context: err". Wrap returns nil for a nil err.
func Wrap(err error, category ErrorCategory, context string, opts ...Option) *CLIError {
	if err == nil {
		return nil
	}
	message := err.Error()
	if context != "" {
		message = fmt.Sprintf("%s: %v", context, err)
	}
	return New(category, message, append([]Option{WithCause(err)}, opts...)...)
}

// IsCLIError checks if an error is, or wraps, a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
