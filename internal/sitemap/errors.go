package sitemap

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound = errors.New("sitemap file not found")
	ErrParse        = errors.New("sitemap parse error")
)

// ParseError wraps anything that stops a sitemap from being read as
// namespaced XML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("failed to parse sitemap: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

func parseErrorf(format string, args ...any) error {
	return &ParseError{Err: fmt.Errorf(format, args...)}
}
