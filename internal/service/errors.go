package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential means no provider API key was configured. Every
// operation degrades to a documented recoverable behavior instead of
// crashing: Chat answers with a fixed instructional string, the strict
// operations surface this error.
var ErrMissingCredential = errors.New("provider API key is not configured")

// ErrProductNotFound is the legitimate "no data" outcome of a price search.
// It is distinct from a provider failure and maps to 404, not 5xx.
var ErrProductNotFound = errors.New("product not found")

// ProviderError is a network, transport, or auth failure at the provider
// boundary. It is surfaced to the caller as-is and never retried.
type ProviderError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider request failed: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SchemaViolationError means the provider returned text that is not valid
// JSON or JSON that fails the declared response schema. The whole response
// is discarded; nothing is best-effort-parsed out of it.
type SchemaViolationError struct {
	Reasons []string
}

func (e *SchemaViolationError) Error() string {
	return "provider response violates schema: " + strings.Join(e.Reasons, "; ")
}
