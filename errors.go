package gtlang

import (
	"fmt"
	"strings"
)

// ConfigError reports a malformed configuration document or generator
// declaration. Generator is the declaration index, or -1 for the document.
type ConfigError struct {
	Generator int
	Group     string
	Message   string
	Cause     error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config error")
	if e.Generator >= 0 {
		fmt.Fprintf(&b, ": generator #%d", e.Generator)
		if e.Group != "" {
			fmt.Fprintf(&b, " (%s)", e.Group)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// CycleError indicates that a group depends on itself through rules.
type CycleError struct {
	Path []string // groups along the cycle, first and last equal
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("group cycle detected: %s", strings.Join(e.Path, " -> "))
}

// FileError indicates a language or config file could not be read or written.
type FileError struct {
	Op    string // "read" or "write"
	Path  string
	Cause error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates an AI provider failure (API error, rate limit, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a suggestion cache failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// CountMismatchError indicates the provider returned a different number of
// suggestions than texts sent.
type CountMismatchError struct {
	Expected int
	Got      int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("suggestion count mismatch: expected %d, got %d", e.Expected, e.Got)
}
