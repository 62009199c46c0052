// Package errors defines the domain error taxonomy. Services return these
// values; the handler layer translates them into HTTP status codes.
package errors

// DomainError is a recoverable, typed outcome of a core operation.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
