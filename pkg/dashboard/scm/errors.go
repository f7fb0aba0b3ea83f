package scm

import "fmt"

// UpstreamError is a normalized provider failure: a non-2xx response or a
// network error reaching the provider. Callers must not retry.
type UpstreamError struct {
	// Status is the HTTP status returned by the provider, 0 on network failure
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream unreachable: %s", e.Message)
	}
	return fmt.Sprintf("upstream returned %d: %s", e.Status, e.Message)
}
