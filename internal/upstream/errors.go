package upstream

import "fmt"

// APIError is a non-2xx response from the content API. Message carries the
// server's own error text when the body provided one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream: HTTP %d", e.Status)
	}
	return fmt.Sprintf("upstream: HTTP %d: %s", e.Status, e.Message)
}

// DecodeError is a 2xx response whose body did not match the endpoint's
// documented shape. Malformed responses fail loudly instead of silently
// defaulting to an empty list.
type DecodeError struct {
	Endpoint string
	Reason   string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream: decode %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("upstream: decode %s: %s", e.Endpoint, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }
